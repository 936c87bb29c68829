package main

import (
	"github.com/spf13/cobra"

	"github.com/terassyi/cargo-go/internal/catalog"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage the configured package sources",
	Long: `sources with no subcommand prints a table of every configured source's
name, URL, sync method, and whether it is GPG-signed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		return a.PrintSources(cmd.OutOrStdout())
	},
}

var sourcesAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Add a source, inferring its sync method from the URL",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		return a.SourcesAdd(args[0], args[1])
	},
}

var sourcesRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		return a.SourcesRemove(args[0])
	},
}

var sourcesRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a source",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		return a.SourcesRename(args[0], args[1])
	},
}

var sourcesSetURLCmd = &cobra.Command{
	Use:   "set-url <name> <url>",
	Short: "Change a source's URL",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		return a.SourcesSetURL(args[0], args[1])
	},
}

var sourcesSetMethodCmd = &cobra.Command{
	Use:       "set-method <name> <git|file|curl>",
	Short:     "Change a source's sync method",
	Long:      `An unrecognized method collapses to curl rather than being rejected.`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"git", "file", "curl"},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		return a.SourcesSetMethod(args[0], catalog.Method(args[1]))
	},
}

var sourcesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every configured source",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		return a.SourcesClear()
	},
}

func init() {
	sourcesCmd.AddCommand(
		sourcesAddCmd,
		sourcesRemoveCmd,
		sourcesRenameCmd,
		sourcesSetURLCmd,
		sourcesSetMethodCmd,
		sourcesClearCmd,
	)
}
