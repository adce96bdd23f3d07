package config

import "maps"

// Merge layers project config over global settings and defaults,
// returning a new Config. project may be nil.
func Merge(global Settings, project *Config) Config {
	merged := Default()

	if global.LinkMode != "" {
		merged.Settings.LinkMode = global.LinkMode
	}

	if project == nil {
		return merged
	}

	merged.Source = project.Source
	merged.Hooks = maps.Clone(project.Hooks)
	if merged.Hooks == nil {
		merged.Hooks = HookConfig{}
	}
	if project.Settings.LinkMode != "" {
		merged.Settings.LinkMode = project.Settings.LinkMode
	}
	return merged
}
