package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphi011/hookwire/internal/cmd"
)

// Repo describes the on-disk layout of a git checkout.
type Repo struct {
	checkout  string // top-level of the current checkout
	gitDir    string // .git dir, or .git/worktrees/<name> for linked worktrees
	commonDir string // shared git dir
	linked    bool

	// hooksPathFromGit enables the core.hooksPath lookup in HooksDir.
	hooksPathFromGit bool
}

// Open finds the checkout containing dir using git and loads its layout.
// HooksDir on the returned repo honors core.hooksPath.
func Open(ctx context.Context, dir string) (*Repo, error) {
	out, err := outputGit(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotRepository, dir, err)
	}

	repo, err := Load(strings.TrimSpace(string(out)))
	if err != nil {
		return nil, err
	}
	repo.hooksPathFromGit = true
	return repo, nil
}

// Load reads the layout of the checkout rooted at root from disk,
// following the .git file redirect for linked worktrees.
func Load(root string) (*Repo, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}

	dotGit := filepath.Join(abs, ".git")
	info, err := os.Stat(dotGit)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, abs)
		}
		return nil, fmt.Errorf("stat %s: %w", dotGit, err)
	}

	if info.IsDir() {
		return &Repo{checkout: abs, gitDir: dotGit, commonDir: dotGit}, nil
	}

	gitDir, err := readGitFile(dotGit)
	if err != nil {
		return nil, err
	}
	commonDir, err := readCommonDir(gitDir)
	if err != nil {
		return nil, err
	}

	return &Repo{
		checkout:  abs,
		gitDir:    gitDir,
		commonDir: commonDir,
		linked:    true,
	}, nil
}

// readGitFile parses the "gitdir: <path>" redirect a linked worktree keeps
// in place of a .git directory. Relative paths resolve against the file's
// directory.
func readGitFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	line := strings.TrimSpace(string(data))
	target, ok := strings.CutPrefix(line, "gitdir:")
	if !ok {
		return "", fmt.Errorf("invalid .git file %s: missing gitdir line", path)
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return "", fmt.Errorf("invalid .git file %s: empty gitdir", path)
	}

	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return filepath.Clean(target), nil
}

// readCommonDir follows the commondir file inside a worktree's git dir.
// Without one, the git dir is its own common dir.
func readCommonDir(gitDir string) (string, error) {
	path := filepath.Join(gitDir, "commondir")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return gitDir, nil
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	common := strings.TrimSpace(string(data))
	if common == "" {
		return gitDir, nil
	}
	if !filepath.IsAbs(common) {
		common = filepath.Join(gitDir, common)
	}
	return filepath.Clean(common), nil
}

// Root returns the main repository root: the directory holding the shared
// .git dir. For a bare common dir the common dir itself is returned.
func (r *Repo) Root() string {
	if filepath.Base(r.commonDir) == ".git" {
		return filepath.Dir(r.commonDir)
	}
	return r.commonDir
}

// WorktreeRoot returns the checkout root of a linked worktree, or "" for
// the main checkout.
func (r *Repo) WorktreeRoot() string {
	if !r.linked {
		return ""
	}
	return r.checkout
}

// Checkout returns the top-level directory of the current checkout.
func (r *Repo) Checkout() string { return r.checkout }

// GitDir returns the checkout's own git dir.
func (r *Repo) GitDir() string { return r.gitDir }

// CommonDir returns the git dir shared by all worktrees.
func (r *Repo) CommonDir() string { return r.commonDir }

// IsWorktree reports whether the checkout is a linked worktree.
func (r *Repo) IsWorktree() bool { return r.linked }

// HooksDir returns the directory git consults for hook scripts.
func (r *Repo) HooksDir(ctx context.Context) (string, error) {
	var hooksPath string
	if r.hooksPathFromGit {
		configured, err := r.configuredHooksPath(ctx)
		if err != nil {
			return "", err
		}
		hooksPath = configured
	}
	return ResolveHooksDir(r.checkout, r.commonDir, hooksPath), nil
}

// configuredHooksPath returns core.hooksPath, or "" when unset.
func (r *Repo) configuredHooksPath(ctx context.Context) (string, error) {
	out, err := outputGit(ctx, r.checkout, "config", "--get", "core.hooksPath")
	if err != nil {
		// git config exits 1 when the key is not set
		if code, ok := cmd.ExitCode(err); ok && code == 1 {
			return "", nil
		}
		return "", fmt.Errorf("read core.hooksPath: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// ResolveHooksDir computes the hook directory for a checkout. A configured
// hooksPath wins; relative values resolve against the checkout root, "~/"
// against the home directory. Otherwise hooks live in the common dir.
func ResolveHooksDir(checkout, commonDir, hooksPath string) string {
	if hooksPath == "" {
		return filepath.Join(commonDir, "hooks")
	}
	if rest, ok := strings.CutPrefix(hooksPath, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	if filepath.IsAbs(hooksPath) {
		return filepath.Clean(hooksPath)
	}
	return filepath.Join(checkout, hooksPath)
}
