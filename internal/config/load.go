package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape shared by project and global files.
type fileConfig struct {
	Hooks    map[string][]string `toml:"hooks" yaml:"hooks"`
	Settings Settings            `toml:"settings" yaml:"settings"`
}

// GlobalConfigPath returns the path of the global config file.
// HOOKWIRE_CONFIG overrides the default ~/.config/hookwire/config.toml.
func GlobalConfigPath() (string, error) {
	if path := os.Getenv(GlobalConfigEnv); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "hookwire", "config.toml"), nil
}

// FindProjectConfig returns the project config file under root, or "" if
// there is none. TOML takes precedence over YAML.
func FindProjectConfig(root string) string {
	for _, name := range append([]string{ProjectConfigFileName}, projectYAMLFileNames...) {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

// decodeFile parses a config file, choosing the decoder by extension.
func decodeFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw fileConfig
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	return &raw, nil
}

// LoadProject reads the project config under root.
// Returns nil (no error) if no config file exists.
func LoadProject(root string) (*Config, error) {
	path := FindProjectConfig(root)
	if path == "" {
		return nil, nil
	}

	raw, err := decodeFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := &Config{
		Hooks:    HookConfig(raw.Hooks),
		Settings: raw.Settings,
		Source:   path,
	}
	if cfg.Hooks == nil {
		cfg.Hooks = HookConfig{}
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadGlobal reads global settings. A missing file yields zero Settings.
// Hooks in the global file are ignored.
func LoadGlobal() (Settings, error) {
	path, err := GlobalConfigPath()
	if err != nil {
		return Settings{}, nil
	}

	raw, err := decodeFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("failed to read global config %s: %w", path, err)
	}

	if err := ValidateLinkMode(string(raw.Settings.LinkMode)); err != nil {
		return Settings{}, fmt.Errorf("%w in %s", err, path)
	}
	return raw.Settings, nil
}

// Load returns the effective config for root: defaults, then global
// settings, then the project file, then environment overrides.
func Load(root string) (Config, error) {
	global, err := LoadGlobal()
	if err != nil {
		return Default(), err
	}

	project, err := LoadProject(root)
	if err != nil {
		return Default(), err
	}

	cfg := Merge(global, project)

	if mode := os.Getenv(LinkModeEnv); mode != "" {
		if err := ValidateLinkMode(mode); err != nil {
			return Default(), fmt.Errorf("%s: %w", LinkModeEnv, err)
		}
		cfg.Settings.LinkMode = LinkMode(mode)
	}

	return cfg, nil
}
