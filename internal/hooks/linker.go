package hooks

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raphi011/hookwire/internal/config"
)

// SlotState classifies what occupies a hook slot.
type SlotState string

const (
	// SlotEmpty means nothing is installed for the event.
	SlotEmpty SlotState = "missing"
	// SlotOurs is a symlink or shim referencing this checkout's script.
	SlotOurs SlotState = "installed"
	// SlotManaged carries hookwire's signature but references another
	// script, typically one generated in a different worktree.
	SlotManaged SlotState = "other-checkout"
	// SlotForeign is a hook hookwire did not create.
	SlotForeign SlotState = "user-owned"
)

// Linker places references to stored scripts in git's hook directory.
type Linker struct {
	hooksDir string
	platform Platform
	mode     config.LinkMode
}

// NewLinker returns a linker for hooksDir.
func NewLinker(hooksDir string, platform Platform, mode config.LinkMode) *Linker {
	if mode == "" {
		mode = config.LinkAuto
	}
	return &Linker{hooksDir: hooksDir, platform: platform, mode: mode}
}

// Dir returns the hook directory.
func (l *Linker) Dir() string { return l.hooksDir }

// SlotPath returns the path git runs for event.
func (l *Linker) SlotPath(event string) string {
	return filepath.Join(l.hooksDir, event)
}

// Link makes the slot for event reference target. A slot holding a hook
// hookwire did not create is left untouched and ActionSkipped returned.
func (l *Linker) Link(event, target string) (Action, error) {
	slot := l.SlotPath(event)

	state, isLink, err := l.inspect(slot, target)
	if err != nil {
		return "", err
	}
	if state == SlotForeign {
		return ActionSkipped, nil
	}

	if err := os.MkdirAll(l.hooksDir, 0755); err != nil {
		return "", fmt.Errorf("create git hooks directory: %w", err)
	}

	if l.wantSymlink() {
		if state == SlotOurs && isLink {
			return ActionUnchanged, nil
		}
		err := replaceWithSymlink(slot, target)
		if err == nil {
			return ActionLinked, nil
		}
		if l.mode == config.LinkSymlink {
			return "", fmt.Errorf("symlink git hook: %w", err)
		}
	}

	shim := []byte(l.platform.Shim(target))
	if state == SlotOurs && !isLink {
		if existing, err := os.ReadFile(slot); err == nil && bytes.Equal(existing, shim) {
			return ActionUnchanged, nil
		}
	}
	if err := replaceWithFile(slot, shim); err != nil {
		return "", fmt.Errorf("write git hook shim: %w", err)
	}
	return ActionCopied, nil
}

// Unlink removes the slot for event if it references target.
// Returns ActionMissing for an empty slot and ActionSkipped for a slot
// that is not ours.
func (l *Linker) Unlink(event, target string) (Action, error) {
	slot := l.SlotPath(event)

	state, _, err := l.inspect(slot, target)
	if err != nil {
		return "", err
	}
	switch state {
	case SlotEmpty:
		return ActionMissing, nil
	case SlotOurs:
		if err := os.Remove(slot); err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("remove git hook: %w", err)
		}
		return ActionRemoved, nil
	default:
		return ActionSkipped, nil
	}
}

// State classifies the slot for event relative to target.
func (l *Linker) State(event, target string) (SlotState, error) {
	state, _, err := l.inspect(l.SlotPath(event), target)
	return state, err
}

func (l *Linker) wantSymlink() bool {
	return l.platform.Symlinks() && l.mode != config.LinkCopy
}

// inspect classifies slot and reports whether it is a symlink.
func (l *Linker) inspect(slot, target string) (SlotState, bool, error) {
	info, err := os.Lstat(slot)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return SlotEmpty, false, nil
		}
		return "", false, fmt.Errorf("inspect git hook: %w", err)
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		dest, err := os.Readlink(slot)
		if err != nil {
			return "", true, fmt.Errorf("inspect git hook: %w", err)
		}
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(slot), dest)
		}
		if samePath(dest, target) {
			return SlotOurs, true, nil
		}
		// Dangling links and links to unreadable files are not provably ours.
		head, err := readHead(dest)
		if err == nil && HasMarker(head) {
			return SlotManaged, true, nil
		}
		return SlotForeign, true, nil

	case info.Mode().IsRegular():
		head, err := readHead(slot)
		if err != nil {
			return "", false, fmt.Errorf("inspect git hook: %w", err)
		}
		if !HasMarker(head) {
			return SlotForeign, false, nil
		}
		if shimReferences(head, target) {
			return SlotOurs, false, nil
		}
		return SlotManaged, false, nil
	}

	return SlotForeign, false, nil
}

// shimReferences reports whether a shim's content names target.
func shimReferences(content []byte, target string) bool {
	for _, p := range []string{target, filepath.ToSlash(target)} {
		if bytes.Contains(content, []byte(shellQuote(p))) {
			return true
		}
	}
	return false
}

// samePath compares two paths, resolving symlinks in their parents when
// both exist.
func samePath(a, b string) bool {
	a, b = filepath.Clean(a), filepath.Clean(b)
	if a == b {
		return true
	}
	ai, errA := os.Stat(a)
	bi, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(ai, bi)
}

// replaceWithSymlink points slot at target, replacing whatever is there.
// The link is created beside slot and renamed over it so the slot is never
// missing.
func replaceWithSymlink(slot, target string) error {
	tmp := slot + ".hookwire-tmp"
	_ = os.Remove(tmp)
	if err := os.Symlink(target, tmp); err != nil {
		return err
	}
	if err := os.Rename(tmp, slot); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// replaceWithFile writes an executable file at slot via rename.
func replaceWithFile(slot string, data []byte) error {
	tmp := slot + ".hookwire-tmp"
	_ = os.Remove(tmp)
	if err := os.WriteFile(tmp, data, 0755); err != nil {
		return err
	}
	if err := os.Chmod(tmp, 0755); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, slot); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
