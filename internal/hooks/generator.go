package hooks

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	"github.com/raphi011/hookwire/internal/config"
	"github.com/raphi011/hookwire/internal/log"
)

// VCS reports the repository layout hooks are generated for.
type VCS interface {
	// Root returns the main repository root.
	Root() string
	// WorktreeRoot returns the linked worktree root, or "" in the main
	// checkout.
	WorktreeRoot() string
	// HooksDir returns the directory git runs hooks from, with worktree
	// redirects already followed.
	HooksDir(ctx context.Context) (string, error)
}

// Action describes what happened to one event.
type Action string

const (
	ActionLinked    Action = "linked"
	ActionCopied    Action = "copied"
	ActionUnchanged Action = "unchanged"
	ActionSkipped   Action = "skipped"
	ActionRemoved   Action = "removed"
	ActionPruned    Action = "pruned"
	ActionMissing   Action = "missing"
)

// Outcome is the result for one event.
type Outcome struct {
	Event     string `json:"event"`
	LocalPath string `json:"local_path"`
	SlotPath  string `json:"slot_path"`
	Action    Action `json:"action"`

	// ScriptChanged is set by Generate when the stored script was
	// (re)written.
	ScriptChanged bool `json:"script_changed,omitempty"`
}

// Report collects the outcomes of one Generate or Cleanup call.
type Report struct {
	LocalDir string    `json:"local_dir"`
	HooksDir string    `json:"hooks_dir,omitempty"`
	Outcomes []Outcome `json:"outcomes"`
}

// Skipped returns the outcomes whose slot was left to the user.
func (r *Report) Skipped() []Outcome {
	var skipped []Outcome
	for _, o := range r.Outcomes {
		if o.Action == ActionSkipped {
			skipped = append(skipped, o)
		}
	}
	return skipped
}

// Option configures a Generator.
type Option func(*Generator)

// WithPlatform overrides the platform detected from runtime.GOOS.
func WithPlatform(p Platform) Option {
	return func(g *Generator) { g.platform = p }
}

// WithLinkMode sets how hook slots reference stored scripts.
func WithLinkMode(mode config.LinkMode) Option {
	return func(g *Generator) { g.mode = mode }
}

// Generator installs and removes the hooks of one checkout.
type Generator struct {
	root     string
	vcs      VCS
	hooks    config.HookConfig
	platform Platform
	mode     config.LinkMode
}

// NewGenerator returns a generator for the checkout at root.
func NewGenerator(root string, vcs VCS, hooks config.HookConfig, opts ...Option) *Generator {
	g := &Generator{
		root:  root,
		vcs:   vcs,
		hooks: hooks,
		mode:  config.LinkAuto,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.platform == nil {
		g.platform = PlatformFor(runtime.GOOS)
	}
	return g
}

// Platform returns the platform scripts are rendered for.
func (g *Generator) Platform() Platform { return g.platform }

// LocalDir returns the tool-owned directory holding rendered scripts.
func (g *Generator) LocalDir() string { return g.store().Dir() }

// store returns the script store. Linked worktrees keep their own scripts.
func (g *Generator) store() *Store {
	base := g.root
	if wt := g.vcs.WorktreeRoot(); wt != "" {
		base = wt
	}
	return NewStore(base, g.platform.Ext())
}

func (g *Generator) linker(ctx context.Context) (*Linker, error) {
	dir, err := g.vcs.HooksDir(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve git hooks directory: %w", err)
	}
	return NewLinker(dir, g.platform, g.mode), nil
}

// Generate renders, stores and links a script for every event with
// commands. Scripts of events no longer configured are unlinked and
// removed. With nothing configured and nothing stored it does not touch
// the disk. The first I/O error aborts the call; completed events stay.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	l := log.FromContext(ctx)
	store := g.store()
	report := &Report{LocalDir: store.Dir()}

	events := g.hooks.Events()
	stored, err := store.Events()
	if err != nil {
		return report, err
	}
	if len(events) == 0 && len(stored) == 0 {
		l.Debug("no hooks configured", "root", g.root)
		return report, nil
	}

	linker, err := g.linker(ctx)
	if err != nil {
		return report, err
	}
	report.HooksDir = linker.Dir()

	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		rendered := g.platform.Render(event, g.hooks.Commands(event))
		changed, err := store.Write(event, rendered.Script)
		if err != nil {
			return report, fmt.Errorf("event %q: %w", event, err)
		}

		local := store.Path(event)
		action, err := linker.Link(event, local)
		if err != nil {
			return report, fmt.Errorf("event %q: %w", event, err)
		}
		l.Debug("generated hook", "event", event, "action", action, "script", local)

		report.Outcomes = append(report.Outcomes, Outcome{
			Event:         event,
			LocalPath:     local,
			SlotPath:      linker.SlotPath(event),
			Action:        action,
			ScriptChanged: changed,
		})
	}

	for _, event := range stored {
		if slices.Contains(events, event) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}
		outcome, err := g.remove(store, linker, event)
		if err != nil {
			return report, err
		}
		outcome.Action = ActionPruned
		report.Outcomes = append(report.Outcomes, outcome)
	}

	if len(events) == 0 {
		if err := store.RemoveAll(); err != nil {
			return report, err
		}
	}
	return report, nil
}

// Cleanup unlinks and deletes every stored script, then the tool-owned
// directory if it is left empty. Events are taken from the store, not the
// config, so hooks from an older config are removed too. Slots that are not
// ours are kept and reported as skipped.
func (g *Generator) Cleanup(ctx context.Context) (*Report, error) {
	store := g.store()
	report := &Report{LocalDir: store.Dir()}

	stored, err := store.Events()
	if err != nil {
		return report, err
	}
	if len(stored) == 0 {
		return report, store.RemoveAll()
	}

	linker, err := g.linker(ctx)
	if err != nil {
		return report, err
	}
	report.HooksDir = linker.Dir()

	for _, event := range stored {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		outcome, err := g.remove(store, linker, event)
		if err != nil {
			return report, err
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	return report, store.RemoveAll()
}

// remove unlinks event and deletes its script. The outcome's action is
// the unlink result.
func (g *Generator) remove(store *Store, linker *Linker, event string) (Outcome, error) {
	local := store.Path(event)
	action, err := linker.Unlink(event, local)
	if err != nil {
		return Outcome{}, fmt.Errorf("event %q: %w", event, err)
	}
	if err := store.Remove(event); err != nil {
		return Outcome{}, fmt.Errorf("event %q: %w", event, err)
	}
	return Outcome{
		Event:     event,
		LocalPath: local,
		SlotPath:  linker.SlotPath(event),
		Action:    action,
	}, nil
}

// EventStatus describes the installed state of one event.
type EventStatus struct {
	Event      string    `json:"event"`
	Configured bool      `json:"configured"`
	Stored     bool      `json:"stored"`
	LocalPath  string    `json:"local_path"`
	SlotPath   string    `json:"slot_path"`
	Slot       SlotState `json:"slot"`
}

// Status inspects configured and stored events without modifying anything.
func (g *Generator) Status(ctx context.Context) ([]EventStatus, error) {
	store := g.store()
	stored, err := store.Events()
	if err != nil {
		return nil, err
	}

	configured := g.hooks.Events()
	events := slices.Clone(configured)
	for _, event := range stored {
		if !slices.Contains(events, event) {
			events = append(events, event)
		}
	}
	slices.Sort(events)
	if len(events) == 0 {
		return nil, nil
	}

	linker, err := g.linker(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]EventStatus, 0, len(events))
	for _, event := range events {
		local := store.Path(event)
		state, err := linker.State(event, local)
		if err != nil {
			return nil, fmt.Errorf("event %q: %w", event, err)
		}
		statuses = append(statuses, EventStatus{
			Event:      event,
			Configured: slices.Contains(configured, event),
			Stored:     slices.Contains(stored, event),
			LocalPath:  local,
			SlotPath:   linker.SlotPath(event),
			Slot:       state,
		})
	}
	return statuses, nil
}
