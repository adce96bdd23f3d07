package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/hookwire/internal/log"
	"github.com/raphi011/hookwire/internal/output"
	"github.com/raphi011/hookwire/internal/ui/prompt"
	"github.com/raphi011/hookwire/internal/ui/static"
)

// isInteractive reports whether stdin is a terminal.
func isInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

func newUninstallCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "uninstall",
		Short:   "Remove generated hooks",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Remove every hook hookwire generated for this checkout, then the
.hookwire directory if nothing else is left in it.

Hooks are found from the generated scripts, not the config, so hooks from an
older config are removed too. Hooks hookwire did not create are kept.`,
		Example: `  hookwire uninstall      # Asks for confirmation on a terminal
  hookwire uninstall -y   # Remove without asking`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, proj, err := openProject(cmd.Context())
			if err != nil {
				return err
			}
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)
			gen := proj.generator()

			if !yes && isInteractive() {
				result, err := prompt.Confirm(fmt.Sprintf("Remove hookwire hooks from %s?", gen.LocalDir()))
				if err != nil {
					return err
				}
				if result.Cancelled || !result.Confirmed {
					l.Println("Cancelled")
					return nil
				}
			}

			report, err := gen.Cleanup(ctx)
			if err != nil {
				return fmt.Errorf("uninstall hooks: %w", err)
			}

			if len(report.Outcomes) == 0 {
				l.Println("No hooks installed")
				return nil
			}

			w := styledWriter(out.Writer())
			for _, o := range report.Outcomes {
				fmt.Fprintln(w, static.FormatAction(o))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}
