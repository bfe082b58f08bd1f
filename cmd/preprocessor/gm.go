package main

import (
	"fmt"

	"rgehrsitz/gact/internal/catalog"

	"github.com/spf13/cobra"
)

// gmCmd represents the gm command
var gmCmd = &cobra.Command{
	Use:   "gm",
	Short: "List the GM actions and their toggle state",
	RunE: func(cmd *cobra.Command, args []string) error {
		actions, err := refreshGM()
		if err != nil {
			return err
		}
		for _, group := range catalog.GroupGMActions(actions, localizer()) {
			fmt.Fprintln(cmd.OutOrStdout(), group.Name)
			for _, entry := range group.Entries {
				mark := " "
				if entry.Enabled {
					mark = "x"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  [%s] %s\n", mark, entry.Label)
			}
		}
		return nil
	},
}

var gmToggleCmd = &cobra.Command{
	Use:   "toggle <action name>",
	Short: "Toggle a GM action by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actions, err := refreshGM()
		if err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		toggled, err := catalog.Toggle(actions, args[0])
		if err != nil {
			return err
		}
		return store.SetGMActions(catalog.States(toggled))
	},
}

// refreshGM rebuilds the GM action list from the catalog, keeps the saved
// toggle state and persists the result.
func refreshGM() ([]catalog.GMAction, error) {
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	cat, err := store.Catalog(builtins())
	if err != nil {
		return nil, err
	}
	disabled, err := store.DisabledActions()
	if err != nil {
		return nil, err
	}
	previous, err := store.GMActions()
	if err != nil {
		return nil, err
	}
	actions := catalog.RefreshGMActions(previous, cat.GMActions(disabled))
	if err := store.SetGMActions(catalog.States(actions)); err != nil {
		return nil, err
	}
	return actions, nil
}

func init() {
	rootCmd.AddCommand(gmCmd)
	gmCmd.AddCommand(gmToggleCmd)
}
