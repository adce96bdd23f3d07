package hooks

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// fakeVCS is a VCS with fixed paths.
type fakeVCS struct {
	root     string
	worktree string
	hooksDir string
	err      error
}

func (f fakeVCS) Root() string         { return f.root }
func (f fakeVCS) WorktreeRoot() string { return f.worktree }

func (f fakeVCS) HooksDir(context.Context) (string, error) {
	return f.hooksDir, f.err
}

// resolveTempDir creates a temp directory and resolves macOS symlinks.
func resolveTempDir(t *testing.T) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolve temp dir: %v", err)
	}
	return resolved
}

// newTestRepo lays out a checkout with an empty .git/hooks directory.
func newTestRepo(t *testing.T) fakeVCS {
	t.Helper()
	root := resolveTempDir(t)
	hooksDir := filepath.Join(root, ".git", "hooks")
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		t.Fatalf("create hooks dir: %v", err)
	}
	return fakeVCS{root: root, hooksDir: hooksDir}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func assertNotExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); !os.IsNotExist(err) {
		t.Errorf("%s exists, want it removed (err: %v)", path, err)
	}
}

func assertExecutable(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0111 == 0 {
		t.Errorf("%s mode = %v, want executable", path, info.Mode().Perm())
	}
}

// assertSymlinkTo checks that path is a symlink resolving to target.
func assertSymlinkTo(t *testing.T, path, target string) {
	t.Helper()
	dest, err := os.Readlink(path)
	if err != nil {
		t.Fatalf("readlink %s: %v", path, err)
	}
	if dest != target {
		t.Errorf("%s -> %s, want %s", path, dest, target)
	}
}
