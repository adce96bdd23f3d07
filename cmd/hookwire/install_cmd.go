package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/hookwire/internal/log"
	"github.com/raphi011/hookwire/internal/output"
	"github.com/raphi011/hookwire/internal/ui/static"
)

func newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "install",
		Short:   "Generate and link hooks",
		Aliases: []string{"sync"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Generate a script for every configured hook event and link it into
git's hooks directory.

Re-running is safe: unchanged scripts are left alone and events removed
from the config are pruned. A hook that hookwire did not create is never
overwritten; it is reported as skipped instead.`,
		Example: `  hookwire install              # Install hooks for the current repo
  hookwire install -C ../other  # Install hooks for another checkout
  HOOKWIRE_LINK_MODE=copy hookwire install  # Use shims instead of symlinks`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, proj, err := openProject(cmd.Context())
			if err != nil {
				return err
			}
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			warnUnknownEvents(l, proj.cfg.Hooks)

			report, err := proj.generator().Generate(ctx)
			if err != nil {
				return fmt.Errorf("install hooks: %w", err)
			}

			if len(report.Outcomes) == 0 {
				l.Println("No hooks configured")
				return nil
			}

			w := styledWriter(out.Writer())
			for _, o := range report.Outcomes {
				fmt.Fprintln(w, static.FormatAction(o))
			}
			if skipped := report.Skipped(); len(skipped) > 0 {
				l.Printf("%d hook(s) left untouched; remove them or call the scripts in %s yourself\n",
					len(skipped), report.LocalDir)
			}
			return nil
		},
	}

	return cmd
}
