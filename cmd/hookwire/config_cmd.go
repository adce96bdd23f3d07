package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/raphi011/hookwire/internal/config"
	"github.com/raphi011/hookwire/internal/git"
	"github.com/raphi011/hookwire/internal/output"
)

// configOutput is the document printed by hookwire config.
type configOutput struct {
	Hooks    map[string][]string `toml:"hooks" json:"hooks"`
	Settings config.Settings     `toml:"settings" json:"settings"`
}

func newConfigCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Show effective configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Show the effective configuration: global settings, overridden by the
project config, overridden by environment variables.

Global config:  ~/.config/hookwire/config.toml (or $HOOKWIRE_CONFIG)
Project config: .hookwire.toml or .hookwire.yaml in the checkout root`,
		Example: `  hookwire config         # Show as TOML
  hookwire config --json  # Show as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			root := config.WorkDirFromContext(ctx)
			if git.CheckGit() == nil && git.IsInsideRepoPath(ctx, root) {
				repo, err := git.Open(ctx, root)
				if err != nil {
					return err
				}
				root = repo.Checkout()
			}

			cfg, err := config.Load(root)
			if err != nil {
				return err
			}

			doc := configOutput{Hooks: cfg.Hooks, Settings: cfg.Settings}
			if doc.Hooks == nil {
				doc.Hooks = map[string][]string{}
			}

			if jsonOutput {
				return out.JSON(doc)
			}

			if cfg.Source != "" {
				out.Printf("# source: %s\n", cfg.Source)
			} else {
				out.Println("# source: defaults (no project config)")
			}
			if path, err := config.GlobalConfigPath(); err == nil {
				out.Printf("# global: %s\n", path)
			}
			if err := toml.NewEncoder(out.Writer()).Encode(doc); err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
