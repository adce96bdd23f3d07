package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/hookwire/internal/hooks"
	"github.com/raphi011/hookwire/internal/log"
	"github.com/raphi011/hookwire/internal/output"
	"github.com/raphi011/hookwire/internal/ui/static"
)

// statusOutput is the JSON shape of hookwire status.
type statusOutput struct {
	Root     string              `json:"root"`
	Worktree string              `json:"worktree,omitempty"`
	Config   string              `json:"config,omitempty"`
	Events   []hooks.EventStatus `json:"events"`
}

func newStatusCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Show installed hooks",
		Aliases: []string{"st"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Show every configured or generated hook event and what occupies its
slot in git's hooks directory:

  installed       linked to this checkout's script
  other-checkout  linked to a script generated in another worktree
  user-owned      a hook hookwire did not create
  missing         nothing installed`,
		Example: `  hookwire status         # Table output
  hookwire status --json  # Machine-readable output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, proj, err := openProject(cmd.Context())
			if err != nil {
				return err
			}
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			statuses, err := proj.generator().Status(ctx)
			if err != nil {
				return fmt.Errorf("hook status: %w", err)
			}

			if jsonOutput {
				if statuses == nil {
					statuses = []hooks.EventStatus{}
				}
				return out.JSON(statusOutput{
					Root:     proj.repo.Root(),
					Worktree: proj.repo.WorktreeRoot(),
					Config:   proj.cfg.Source,
					Events:   statuses,
				})
			}

			warnUnknownEvents(l, proj.cfg.Hooks)

			if len(statuses) == 0 {
				l.Println("No hooks configured")
				return nil
			}
			fmt.Fprint(styledWriter(out.Writer()), static.RenderStatus(statuses))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
