package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	pub "rgehrsitz/gact/pkg/preprocessor"

	"github.com/spf13/cobra"
)

var errInvalidAction = errors.New("invalid action")

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <action.json|->",
	Short: "Check one action document the way the action editor does",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		if args[0] == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("read action: %w", err)
		}

		title, ok := pub.CheckJSON(string(data), localizer())
		fmt.Fprintln(cmd.OutOrStdout(), title)
		if !ok {
			return errInvalidAction
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
