package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/hookwire/internal/config"
	"github.com/raphi011/hookwire/internal/git"
	"github.com/raphi011/hookwire/internal/log"
)

func newInitCmd() *cobra.Command {
	var (
		format string
		force  bool
	)

	cmd := &cobra.Command{
		Use:     "init",
		Short:   "Create a project config file",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Create .hookwire.toml (or .hookwire.yaml) in the root of the current
checkout, or in the working directory outside a repository.`,
		Example: `  hookwire init                # Create .hookwire.toml
  hookwire init --format yaml  # Create .hookwire.yaml
  hookwire init -f             # Overwrite an existing config`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			root := config.WorkDirFromContext(ctx)
			if git.CheckGit() == nil && git.IsInsideRepoPath(ctx, root) {
				repo, err := git.Open(ctx, root)
				if err != nil {
					return err
				}
				root = repo.Checkout()
			}

			path, err := config.Init(root, format, force)
			if errors.Is(err, config.ErrConfigExists) {
				return fmt.Errorf("%w (use -f to overwrite)", err)
			}
			if err != nil {
				return err
			}

			l.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "toml", "Config format: toml or yaml")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{"toml", "yaml"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
