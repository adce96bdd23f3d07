package main

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"

	"github.com/raphi011/hookwire/internal/config"
	"github.com/raphi011/hookwire/internal/git"
	"github.com/raphi011/hookwire/internal/hooks"
	"github.com/raphi011/hookwire/internal/log"
)

// project is the checkout a command operates on and its effective config.
type project struct {
	repo *git.Repo
	cfg  config.Config
}

// openProject locates the checkout containing the working directory and
// loads its config. The config is also stored in the returned context.
func openProject(ctx context.Context) (context.Context, *project, error) {
	if err := git.CheckGit(); err != nil {
		return ctx, nil, err
	}

	repo, err := git.Open(ctx, config.WorkDirFromContext(ctx))
	if err != nil {
		return ctx, nil, err
	}

	cfg, err := config.Load(repo.Checkout())
	if err != nil {
		return ctx, nil, err
	}

	log.FromContext(ctx).Debug("opened project",
		"root", repo.Root(), "worktree", repo.IsWorktree(), "config", cfg.Source)

	ctx = config.WithConfig(ctx, &cfg)
	return ctx, &project{repo: repo, cfg: cfg}, nil
}

func (p *project) generator() *hooks.Generator {
	return hooks.NewGenerator(p.repo.Root(), p.repo, p.cfg.Hooks,
		hooks.WithLinkMode(p.cfg.Settings.LinkMode))
}

// warnUnknownEvents logs a warning for configured events git never runs.
func warnUnknownEvents(l *log.Logger, hc config.HookConfig) {
	for _, event := range hooks.UnknownEvents(hc.Events()) {
		if suggestion := hooks.SuggestEvent(event); suggestion != "" {
			l.Printf("warning: %q is not a git hook event (did you mean %q?)\n", event, suggestion)
			continue
		}
		l.Printf("warning: %q is not a git hook event; git will not run it\n", event)
	}
}

// styledWriter wraps w so ANSI styling is downsampled to what the terminal
// supports, or stripped when w is not a terminal.
func styledWriter(w io.Writer) io.Writer {
	return colorprofile.NewWriter(w, os.Environ())
}
