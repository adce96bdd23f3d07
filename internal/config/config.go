package config

import (
	"context"
	"os"
	"slices"
	"strings"
)

// File names and environment variables.
const (
	ProjectConfigFileName = ".hookwire.toml"
	GlobalConfigEnv       = "HOOKWIRE_CONFIG"
	LinkModeEnv           = "HOOKWIRE_LINK_MODE"
)

// projectYAMLFileNames are tried in order after the TOML file.
var projectYAMLFileNames = []string{".hookwire.yaml", ".hookwire.yml"}

// LinkMode controls how a git hook slot references the generated script.
type LinkMode string

const (
	LinkAuto    LinkMode = "auto"
	LinkSymlink LinkMode = "symlink"
	LinkCopy    LinkMode = "copy"
)

// HookConfig maps a hook event name to its ordered commands.
type HookConfig map[string][]string

// Commands returns the non-blank commands for event, in order.
func (h HookConfig) Commands(event string) []string {
	var cmds []string
	for _, c := range h[event] {
		if strings.TrimSpace(c) != "" {
			cmds = append(cmds, c)
		}
	}
	return cmds
}

// Events returns the sorted names of events that have at least one command.
func (h HookConfig) Events() []string {
	var events []string
	for event := range h {
		if len(h.Commands(event)) > 0 {
			events = append(events, event)
		}
	}
	slices.Sort(events)
	return events
}

// Settings holds tunables that may come from global or project config.
type Settings struct {
	LinkMode LinkMode `toml:"link_mode" yaml:"link_mode" json:"link_mode"`
}

// Config is the effective configuration for one project root.
type Config struct {
	Hooks    HookConfig `json:"hooks"`
	Settings Settings   `json:"settings"`

	// Source is the project config file that was loaded, "" if none.
	Source string `json:"source,omitempty"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Hooks:    HookConfig{},
		Settings: Settings{LinkMode: LinkAuto},
	}
}

type ctxKey struct{}

type workDirKey struct{}

// WithConfig attaches the effective config to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the config attached to ctx, or nil.
func FromContext(ctx context.Context) *Config {
	cfg, _ := ctx.Value(ctxKey{}).(*Config)
	return cfg
}

// WithWorkDir attaches the working directory to the context.
func WithWorkDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, workDirKey{}, dir)
}

// WorkDirFromContext returns the working directory from ctx, falling back
// to os.Getwd.
func WorkDirFromContext(ctx context.Context) string {
	if dir, ok := ctx.Value(workDirKey{}).(string); ok && dir != "" {
		return dir
	}
	wd, _ := os.Getwd()
	return wd
}
