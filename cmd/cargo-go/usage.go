package main

import (
	"github.com/spf13/cobra"
)

var usageCmd = &cobra.Command{
	Use:   "usage [command]",
	Short: "Print a command's usage page",
	Long: `usage with no arguments prints the top-level usage page; usage
<command> prints that command's own usage page.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"init", "install", "uninstall", "list", "search", "sources"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return rootCmd.Help()
		}
		target, _, err := rootCmd.Find(args)
		if err != nil {
			return rootCmd.Help()
		}
		return target.Help()
	},
}
