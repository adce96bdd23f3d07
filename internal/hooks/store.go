package hooks

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Tool-owned directory layout under a checkout root.
const (
	ToolDirName  = ".hookwire"
	HooksDirName = "hooks"
)

// headSize bounds how much of a file is read to look for Marker.
const headSize = 4096

// Store manages rendered scripts in <base>/.hookwire/hooks.
// It only ever touches files carrying Marker.
type Store struct {
	base string
	ext  string
}

// NewStore returns a store rooted at base for scripts with extension ext.
// A relative base is made absolute so slot symlinks resolve from any
// directory.
func NewStore(base, ext string) *Store {
	if abs, err := filepath.Abs(base); err == nil {
		base = abs
	}
	return &Store{base: base, ext: ext}
}

// Dir returns the directory holding the scripts.
func (s *Store) Dir() string {
	return filepath.Join(s.base, ToolDirName, HooksDirName)
}

// Path returns the script path for event.
func (s *Store) Path(event string) string {
	return filepath.Join(s.Dir(), event+s.ext)
}

// Write stores script for event, creating the directory as needed.
// Unchanged content is not rewritten. Reports whether the file changed.
func (s *Store) Write(event, script string) (bool, error) {
	if err := os.MkdirAll(s.Dir(), 0755); err != nil {
		return false, fmt.Errorf("create hooks directory: %w", err)
	}

	path := s.Path(event)
	data := []byte(script)

	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, data):
		// Mode is re-asserted in case something stripped the exec bit.
		if err := os.Chmod(path, 0755); err != nil {
			return false, fmt.Errorf("chmod hook script: %w", err)
		}
		return false, nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return false, fmt.Errorf("read hook script: %w", err)
	}

	if err := os.WriteFile(path, data, 0755); err != nil {
		return false, fmt.Errorf("write hook script: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, 0755); err != nil {
		return false, fmt.Errorf("chmod hook script: %w", err)
	}
	return true, nil
}

// Events lists the events with an owned script, sorted by name.
func (s *Store) Events() ([]string, error) {
	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list hooks directory: %w", err)
	}

	var events []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || !strings.HasSuffix(name, s.ext) {
			continue
		}
		event := strings.TrimSuffix(name, s.ext)
		if event == "" {
			continue
		}
		owned, err := s.owns(filepath.Join(s.Dir(), name))
		if err != nil {
			return nil, err
		}
		if owned {
			events = append(events, event)
		}
	}
	return events, nil
}

// Remove deletes the script for event if it is owned.
// A missing script is not an error.
func (s *Store) Remove(event string) error {
	path := s.Path(event)
	owned, err := s.owns(path)
	if err != nil || !owned {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove hook script: %w", err)
	}
	return nil
}

// RemoveAll deletes every owned script, then the hooks directory and the
// tool directory if they are left empty. Calling it on a clean store is a
// no-op.
func (s *Store) RemoveAll() error {
	events, err := s.Events()
	if err != nil {
		return err
	}
	for _, event := range events {
		if err := s.Remove(event); err != nil {
			return err
		}
	}

	if err := removeIfEmpty(s.Dir()); err != nil {
		return err
	}
	return removeIfEmpty(filepath.Join(s.base, ToolDirName))
}

// owns reports whether path is a regular file carrying Marker.
func (s *Store) owns(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("inspect hook script: %w", err)
	}
	if !info.Mode().IsRegular() {
		return false, nil
	}
	head, err := readHead(path)
	if err != nil {
		return false, fmt.Errorf("inspect hook script: %w", err)
	}
	return HasMarker(head), nil
}

// readHead returns up to headSize bytes from the start of path.
func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, headSize))
}

// removeIfEmpty removes dir when it exists and has no entries.
func removeIfEmpty(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("list %s: %w", dir, err)
	}
	if len(entries) > 0 {
		return nil
	}
	if err := os.Remove(dir); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove directory: %w", err)
	}
	return nil
}
