package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// defaultProjectTOML is the template for hookwire init
const defaultProjectTOML = `# hookwire project config
# Each key under [hooks] is a git hook event; its commands run in order and
# the hook fails on the first command that fails. Run "hookwire install"
# after editing.

[hooks]
pre-commit = []
# pre-commit = ["go vet ./...", "go test ./..."]
# commit-msg = ["./scripts/check-msg \"$1\""]
# pre-push = ["make lint"]

# [settings]
# link_mode = "auto"  # auto, symlink, or copy
`

// defaultProjectYAML is the YAML flavor of defaultProjectTOML
const defaultProjectYAML = `# hookwire project config
# Each key under hooks is a git hook event; its commands run in order and
# the hook fails on the first command that fails. Run "hookwire install"
# after editing.

hooks:
  pre-commit: []
  # pre-commit:
  #   - go vet ./...
  #   - go test ./...

# settings:
#   link_mode: auto  # auto, symlink, or copy
`

// DefaultProjectConfig returns the project config template for format
// ("toml" or "yaml") and the file name it should be written to.
func DefaultProjectConfig(format string) (name, content string, err error) {
	switch format {
	case "", "toml":
		return ProjectConfigFileName, defaultProjectTOML, nil
	case "yaml", "yml":
		return projectYAMLFileNames[0], defaultProjectYAML, nil
	default:
		return "", "", fmt.Errorf("invalid format %q: must be %s", format, formatOptions([]string{"toml", "yaml"}))
	}
}

// ErrConfigExists is returned by Init when a project config is present.
var ErrConfigExists = errors.New("config file already exists")

// Init writes the project config template into root.
// If force is false an existing project config is an error.
// Returns the path to the created file.
func Init(root, format string, force bool) (string, error) {
	name, content, err := DefaultProjectConfig(format)
	if err != nil {
		return "", err
	}

	if !force {
		if existing := FindProjectConfig(root); existing != "" {
			return "", fmt.Errorf("%w: %s", ErrConfigExists, existing)
		}
	}

	path := filepath.Join(root, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
