package main

import (
	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list [source ...]",
	Short: "List packages across every configured source",
	Long: `list syncs every configured source, then prints every known package.
Given one or more source names, only those sources' packages are
printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		err = a.List(cmd.Context(), cmd.OutOrStdout(), args, listJSON)
		return saveAndReturn(a, err)
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print as JSON instead of a table")
}
