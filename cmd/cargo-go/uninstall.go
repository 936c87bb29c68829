package main

import (
	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <name|uuid>",
	Short: "Remove an installed crate's bin/ and lib/ artifacts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		err = a.Uninstall(cmd.Context(), args[0])
		return saveAndReturn(a, err)
	},
}
