package main

import (
	"github.com/spf13/cobra"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search <query|'*'> [tag ...]",
	Short: "Search packages by name substring and tags",
	Long: `search syncs every configured source, then prints packages whose name
contains query (or every package, if query is "*") and which carry
every tag given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		err = a.Search(cmd.Context(), cmd.OutOrStdout(), args[0], args[1:], searchJSON)
		return saveAndReturn(a, err)
	},
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print as JSON instead of a table")
}
