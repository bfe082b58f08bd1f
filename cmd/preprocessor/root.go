package main

import (
	"fmt"

	"rgehrsitz/gact/internal/catalog"
	"rgehrsitz/gact/internal/config"
	"rgehrsitz/gact/internal/i18n"
	"rgehrsitz/gact/internal/logging"
	"rgehrsitz/gact/internal/rules"
	"rgehrsitz/gact/internal/settings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	cfg     config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "preprocessor",
	Short: "Validate and assemble global action catalogs",
	Long: `Reads the world global actions and the disabled action list from the
settings directory, validates them and writes catalogs for the runtime.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(viper.GetViper(), cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return logging.Configure(cfg.LogLevel, cfg.LogFormat)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./gact.yaml or $HOME/gact.yaml)")
	rootCmd.PersistentFlags().StringP("settings_dir", "s", "", "directory holding the world settings")
	rootCmd.PersistentFlags().String("locale", "", "locale used for translated names and messages")
	rootCmd.PersistentFlags().Bool("builtins", true, "include the built-in system actions")
	rootCmd.PersistentFlags().String("log_level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log_format", "", "log format (console, json)")

	for _, key := range []string{config.KeySettingsDir, config.KeyLocale, config.KeyBuiltins, config.KeyLogLevel, config.KeyLogFormat} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key)); err != nil {
			panic(err)
		}
	}
}

func openStore() (*settings.Store, error) {
	store, err := settings.Open(cfg.SettingsDir)
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	return store, nil
}

func builtins() []*rules.Action {
	if !cfg.Builtins {
		return nil
	}
	return catalog.Builtins()
}

func localizer() i18n.Localizer {
	return i18n.Default().Localizer(cfg.Locale)
}
