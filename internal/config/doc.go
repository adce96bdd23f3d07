// Package config handles loading and validation of hookwire configuration.
//
// Hook definitions live in the project, next to the code they check:
//
//	# .hookwire.toml
//	[hooks]
//	pre-commit = ["go vet ./...", "go test ./..."]
//	post-push = ["notify-send pushed"]
//
//	[settings]
//	link_mode = "auto"
//
// A YAML variant (.hookwire.yaml or .hookwire.yml) with the same keys is
// accepted; when several files exist the TOML file wins.
//
// # Configuration Sources (highest priority first)
//
//   - HOOKWIRE_LINK_MODE env var
//   - Project [settings]
//   - Global ~/.config/hookwire/config.toml [settings] (or $HOOKWIRE_CONFIG)
//   - Default values
//
// Hooks are only read from the project file. An event whose command list
// is empty (or contains only blank strings) is treated as absent.
//
// # Link Modes
//
//   - auto: symlink the git hook to the generated script, fall back to a
//     shim script where symlinks are not permitted
//   - symlink: symlink only; failure is an error
//   - copy: always write a shim script
package config
