package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidLinkModes lists the accepted settings.link_mode values.
var ValidLinkModes = []string{string(LinkAuto), string(LinkSymlink), string(LinkCopy)}

// ValidateLinkMode validates a link mode value against ValidLinkModes.
// Exported for use in CLI flag validation.
func ValidateLinkMode(mode string) error {
	return validateEnum(mode, "settings.link_mode", ValidLinkModes)
}

// ValidateEventName rejects names that cannot be used as a file name in
// the hooks directory. Unknown git events are accepted.
func ValidateEventName(event string) error {
	switch {
	case strings.TrimSpace(event) == "":
		return fmt.Errorf("invalid hook name %q: must not be empty", event)
	case event == "." || event == "..":
		return fmt.Errorf("invalid hook name %q", event)
	case strings.ContainsAny(event, `/\`):
		return fmt.Errorf("invalid hook name %q: must not contain path separators", event)
	}
	return nil
}

// danglingSuffixes continue a shell statement onto the next line.
var danglingSuffixes = []string{`\`, "&&", "||", "|"}

// ValidateCommand rejects commands that would join with the
// exit-status check rendered after them. Blank commands are skipped
// elsewhere and accepted here.
func ValidateCommand(cmd string) error {
	trimmed := strings.TrimRight(cmd, " \t\r\n")
	for _, suffix := range danglingSuffixes {
		if strings.HasSuffix(trimmed, suffix) {
			return fmt.Errorf("invalid command %q: must not end with %q", cmd, suffix)
		}
	}
	return nil
}

// validate checks a loaded config. contextInfo names the source file.
func (c *Config) validate(contextInfo string) error {
	for event, commands := range c.Hooks {
		if err := ValidateEventName(event); err != nil {
			return fmt.Errorf("%w in %s", err, contextInfo)
		}
		for _, cmd := range commands {
			if err := ValidateCommand(cmd); err != nil {
				return fmt.Errorf("hook %s: %w in %s", event, err, contextInfo)
			}
		}
	}
	if err := ValidateLinkMode(string(c.Settings.LinkMode)); err != nil {
		return fmt.Errorf("%w in %s", err, contextInfo)
	}
	return nil
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
