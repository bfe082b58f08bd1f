package main

import (
	"fmt"
	"os"

	"rgehrsitz/gact/internal/catalog"
	"rgehrsitz/gact/internal/preprocessor"
	"rgehrsitz/gact/internal/rules"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build [world_actions.json]",
	Short: "Assemble the catalog file read by the runtime",
	Long: `Merges the built-in actions with the world actions, either read from the
given file or from the settings directory, and writes the catalog together with
the disabled action ids.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		store, err := openStore()
		if err != nil {
			return err
		}

		loadCtx := preprocessor.NewLoadContext()
		var custom []*rules.Action
		if len(args) == 1 {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read world actions: %w", err)
			}
			custom, err = preprocessor.LoadActions(data, loadCtx)
			if err != nil {
				return err
			}
		} else {
			custom, err = store.WorldActions()
			if err != nil {
				return err
			}
			if err := preprocessor.ValidateActions(custom, loadCtx); err != nil {
				return err
			}
			custom = preprocessor.OptimizeActions(custom)
		}

		disabled, err := store.DisabledActions()
		if err != nil {
			return err
		}

		cat := catalog.New(builtins(), custom)
		if err := catalog.WriteFile(out, cat, disabled); err != nil {
			return err
		}
		log.Info().
			Int("actions", cat.Len()).
			Int("disabled", len(disabled)).
			Strs("unknown_selectors", loadCtx.UnknownSelectors).
			Str("out", out).
			Msg("Catalog written")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringP("out", "o", "catalog.json", "catalog file to write")
}
