package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"

	"rgehrsitz/gact/internal/catalog"
	"rgehrsitz/gact/internal/config"
	"rgehrsitz/gact/internal/i18n"
	"rgehrsitz/gact/internal/logging"
	"rgehrsitz/gact/internal/runtime"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type actionResult struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Group string `json:"group,omitempty"`
}

type rollResult struct {
	Roll    int            `json:"roll"`
	Actions []actionResult `json:"actions"`
}

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "runtime <rolls.json>",
	Short: "List the global actions that apply to rolls",
	Long: `Loads a catalog written by the preprocessor and prints, for every roll of
the input file, the global actions whose selectors match it.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.GetViper(), cfgFile)
		if err != nil {
			return err
		}
		if err := logging.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
			return err
		}
		catalogPath, _ := cmd.Flags().GetString("catalog")
		workers, _ := cmd.Flags().GetInt("workers")

		cat, disabled, err := catalog.ReadFile(catalogPath)
		if err != nil {
			return errors.WithStack(err)
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrap(err, "read rolls")
		}
		rolls, err := runtime.DecodeRolls(data)
		if err != nil {
			return errors.WithStack(err)
		}
		log.Debug().Int("actions", cat.Len()).Int("rolls", len(rolls)).Msg("Evaluating rolls")

		selected, err := runtime.EvaluateBatch(cmd.Context(), cat, disabled, rolls, i18n.Default().Localizer(cfg.Locale), workers)
		if err != nil {
			return errors.WithStack(err)
		}

		out := make([]rollResult, len(selected))
		for i, actions := range selected {
			out[i] = rollResult{Roll: i, Actions: make([]actionResult, 0, len(actions))}
			for _, action := range actions {
				out[i].Actions = append(out[i].Actions, actionResult{ID: action.ID, Name: action.Name, Group: action.Group})
			}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is ./gact.yaml or $HOME/gact.yaml)")
	rootCmd.Flags().StringP("catalog", "c", "catalog.json", "catalog file written by the preprocessor")
	rootCmd.Flags().IntP("workers", "w", 0, "maximum rolls evaluated at once (0 means unlimited)")
	rootCmd.Flags().String("locale", "", "locale used to resolve translated selector values")
	rootCmd.Flags().String("log_level", "", "log level (debug, info, warn, error)")
	if err := viper.BindPFlag(config.KeyLocale, rootCmd.Flags().Lookup("locale")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag(config.KeyLogLevel, rootCmd.Flags().Lookup("log_level")); err != nil {
		panic(err)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Stack().Err(err).Msg("Error evaluating rolls")
		os.Exit(1)
	}
}
