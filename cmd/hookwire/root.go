package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/hookwire/internal/config"
	"github.com/raphi011/hookwire/internal/log"
	"github.com/raphi011/hookwire/internal/output"
)

// Command group IDs for organizing help output
const (
	GroupCore   = "core"
	GroupConfig = "config"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	verbose bool
	quiet   bool
	dir     string
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "hookwire",
		Short: "Generate git hooks from project config",
		Long: `hookwire turns the [hooks] table of .hookwire.toml into git hooks.

Scripts are rendered into .hookwire/hooks and linked into the repository's
hooks directory. Hooks you wrote yourself are never overwritten.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.verbose && flags.quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = log.WithLogger(ctx, log.New(os.Stderr, flags.verbose, flags.quiet))

			if flags.dir != "" {
				abs, err := filepath.Abs(flags.dir)
				if err != nil {
					return fmt.Errorf("resolve --dir: %w", err)
				}
				ctx = config.WithWorkDir(ctx, abs)
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Show external commands being executed")
	cmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "Suppress all log output")
	cmd.PersistentFlags().StringVarP(&flags.dir, "dir", "C", "", "Run as if started in `DIR`")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	cmd.AddCommand(newInstallCmd())
	cmd.AddCommand(newUninstallCmd())
	cmd.AddCommand(newStatusCmd())

	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCompletionCmd())

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "hookwire: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = config.WithWorkDir(ctx, workDir)
	// Primary data goes to stdout, diagnostics to stderr via the logger.
	ctx = output.WithPrinter(ctx, os.Stdout)

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "hookwire:", err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'hookwire -h' for help")
		cancel()
		os.Exit(1)
	}
}
