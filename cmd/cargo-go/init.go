package main

import (
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Bootstrap sources.json from the well-known catalog",
	Long: `init fetches the well-known sources.json and its detached signature,
verifies the signature against the built-in fingerprint, and writes the
result to sources.json. Every command runs this implicitly on first use
when no sources are configured; init lets you trigger or retry it
explicitly.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		return a.Init(cmd.Context())
	},
}
