package main

import (
	"github.com/spf13/cobra"
)

var installTest bool

var installCmd = &cobra.Command{
	Use:   "install [target] [git-ref]",
	Short: "Install a crate",
	Long: `install with no arguments builds every crate manifest in the current
working directory directly, with no fetch or sync.

install <target> resolves target per the archive-path / git-URL /
tarball-URL / qualified-source / bare-UUID / bare-name dispatch, syncing
every configured source first unless target is itself a direct archive,
git, or tarball URL. When target resolves to a git URL, a second
argument selects the ref to check out after cloning.`,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}

		var target, ref string
		if len(args) > 0 {
			target = args[0]
		}
		if len(args) > 1 {
			ref = args[1]
		}

		err = a.Install(cmd.Context(), target, ref, installTest)
		return saveAndReturn(a, err)
	},
}

func init() {
	installCmd.Flags().BoolVar(&installTest, "test", false, "Build with rustc's --test harness")
}
