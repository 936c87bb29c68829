package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/terassyi/cargo-go/internal/path"
)

// logLevelFlag implements pflag.Value for slog.Level.
type logLevelFlag struct {
	level slog.Level
}

func (f *logLevelFlag) String() string { return strings.ToLower(f.level.String()) }
func (f *logLevelFlag) Type() string   { return "string" }
func (f *logLevelFlag) Set(s string) error {
	switch strings.ToLower(s) {
	case "debug":
		f.level = slog.LevelDebug
	case "info":
		f.level = slog.LevelInfo
	case "warn":
		f.level = slog.LevelWarn
	case "error":
		f.level = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q (valid: debug, info, warn, error)", s)
	}
	return nil
}

func (f *logLevelFlag) Level() slog.Level { return f.level }

var (
	globalLogLevel = &logLevelFlag{level: slog.LevelWarn}
	userMode       bool // -g
	systemMode     bool // -G
)

// modeCommands is the set of subcommands -g/-G are valid for (spec §4.1).
var modeCommands = map[string]bool{"install": true, "uninstall": true}

// resolveMode turns -g/-G into a path.Mode, defaulting to local. It is
// fatal for -g and -G to be supplied together, and for either to be
// supplied on a command other than install/uninstall.
func resolveMode(cmd *cobra.Command) (path.Mode, error) {
	if userMode && systemMode {
		return "", fmt.Errorf("-g and -G cannot be used together")
	}
	if (userMode || systemMode) && !modeCommands[cmd.Name()] {
		return "", fmt.Errorf("-g/-G are only valid for install and uninstall")
	}
	switch {
	case systemMode:
		return path.ModeSystem, nil
	case userMode:
		return path.ModeUser, nil
	default:
		return path.ModeLocal, nil
	}
}

var rootCmd = &cobra.Command{
	Use:   "cargo-go",
	Short: "Source-level package manager",
	Long: `cargo-go resolves, fetches, and builds crates from named package
sources, mirroring the original cargo's source-catalog model: packages
are installed by UUID, qualified name, or source/name pair, built via
rustc, and placed under a prefix chosen by install mode.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: globalLogLevel.Level()})))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Var(globalLogLevel, "log-level", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&userMode, "user", "g", false, "Operate against the user install prefix (install/uninstall only)")
	rootCmd.PersistentFlags().BoolVarP(&systemMode, "system", "G", false, "Operate against the system install prefix (install/uninstall only)")
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(
		initCmd,
		installCmd,
		uninstallCmd,
		listCmd,
		searchCmd,
		sourcesCmd,
		usageCmd,
		completionCmd,
	)
}
