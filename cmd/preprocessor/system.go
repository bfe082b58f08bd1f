package main

import (
	"fmt"

	"rgehrsitz/gact/internal/catalog"

	"github.com/spf13/cobra"
)

// systemCmd represents the system command
var systemCmd = &cobra.Command{
	Use:   "system",
	Short: "Show which built-in actions are enabled",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		disabled, err := store.DisabledActions()
		if err != nil {
			return err
		}
		loc := localizer()
		for _, group := range catalog.Groups(catalog.Builtins(), disabled, loc) {
			fmt.Fprintln(cmd.OutOrStdout(), loc.Localize(group.Name))
			for _, entry := range group.Entries {
				mark := " "
				if entry.Enabled {
					mark = "x"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  [%s] %-20s %s\n", mark, entry.ID, entry.Name)
			}
		}
		return nil
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <id>...",
	Short: "Disable actions by id",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(args, false)
	},
}

var enableCmd = &cobra.Command{
	Use:   "enable <id>...",
	Short: "Enable previously disabled actions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(args, true)
	},
}

// setEnabled rewrites the disabled list the way the configuration form does:
// every known id becomes a checkbox.
func setEnabled(ids []string, enabled bool) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	disabled, err := store.DisabledActions()
	if err != nil {
		return err
	}
	form := make(map[string]bool, len(disabled)+len(ids))
	for _, id := range disabled {
		form[id] = false
	}
	for _, id := range ids {
		form[id] = enabled
	}
	return store.SetDisabledActions(catalog.DisabledFromForm(form))
}

func init() {
	rootCmd.AddCommand(systemCmd)
	systemCmd.AddCommand(disableCmd)
	systemCmd.AddCommand(enableCmd)
}
