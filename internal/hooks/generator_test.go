package hooks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/raphi011/hookwire/internal/config"
	"github.com/raphi011/hookwire/internal/git"
)

func sampleHooks() config.HookConfig {
	return config.HookConfig{
		"pre-commit": {"lint", "test"},
		"post-push":  {"notify"},
	}
}

func newPosixGenerator(repo fakeVCS, hooks config.HookConfig, opts ...Option) *Generator {
	opts = append([]Option{WithPlatform(PosixPlatform{})}, opts...)
	return NewGenerator(repo.root, repo, hooks, opts...)
}

func outcomeEvents(report *Report) []string {
	var events []string
	for _, o := range report.Outcomes {
		events = append(events, o.Event)
	}
	return events
}

func TestGenerate_NothingConfigured(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		hooks config.HookConfig
	}{
		{name: "nil config", hooks: nil},
		{name: "empty config", hooks: config.HookConfig{}},
		{name: "events without commands", hooks: config.HookConfig{"pre-commit": {}, "pre-push": {"  "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := newTestRepo(t)
			// A failing hooks dir lookup proves git is never consulted.
			repo.err = errors.New("unexpected lookup")

			report, err := newPosixGenerator(repo, tt.hooks).Generate(context.Background())
			if err != nil {
				t.Fatalf("Generate() = %v", err)
			}
			if len(report.Outcomes) != 0 {
				t.Errorf("Generate() outcomes = %v, want none", report.Outcomes)
			}
			assertNotExist(t, filepath.Join(repo.root, ".hookwire"))

			entries, err := os.ReadDir(repo.hooksDir)
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 0 {
				t.Errorf("hooks dir has %d entries, want 0", len(entries))
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	gen := newPosixGenerator(repo, sampleHooks())

	report, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}

	if want := []string{"post-push", "pre-commit"}; !slices.Equal(outcomeEvents(report), want) {
		t.Errorf("outcome events = %v, want %v", outcomeEvents(report), want)
	}
	if report.LocalDir != filepath.Join(repo.root, ".hookwire", "hooks") {
		t.Errorf("LocalDir = %q", report.LocalDir)
	}
	if report.HooksDir != repo.hooksDir {
		t.Errorf("HooksDir = %q, want %q", report.HooksDir, repo.hooksDir)
	}

	for _, o := range report.Outcomes {
		if o.Action != ActionLinked {
			t.Errorf("%s action = %q, want %q", o.Event, o.Action, ActionLinked)
		}
		if !o.ScriptChanged {
			t.Errorf("%s ScriptChanged = false on first run", o.Event)
		}
		assertExecutable(t, o.LocalPath)
		assertSymlinkTo(t, filepath.Join(repo.hooksDir, o.Event), o.LocalPath)
	}

	script := readTestFile(t, filepath.Join(repo.root, ".hookwire", "hooks", "pre-commit.sh"))
	lint := strings.Index(script, "\nlint\n")
	test := strings.Index(script, "\ntest\n")
	if lint < 0 || test < 0 || lint > test {
		t.Errorf("pre-commit script does not run lint then test:\n%s", script)
	}
	if !HasMarker([]byte(script)) {
		t.Errorf("pre-commit script missing marker:\n%s", script)
	}

	notify := readTestFile(t, filepath.Join(repo.root, ".hookwire", "hooks", "post-push.sh"))
	if !strings.Contains(notify, "\nnotify\n") {
		t.Errorf("post-push script missing command:\n%s", notify)
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	gen := newPosixGenerator(repo, sampleHooks())

	if _, err := gen.Generate(context.Background()); err != nil {
		t.Fatalf("first Generate() = %v", err)
	}
	first := readTestFile(t, filepath.Join(repo.root, ".hookwire", "hooks", "pre-commit.sh"))

	report, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("second Generate() = %v", err)
	}
	for _, o := range report.Outcomes {
		if o.Action != ActionUnchanged || o.ScriptChanged {
			t.Errorf("%s second run = %q (changed %v), want unchanged", o.Event, o.Action, o.ScriptChanged)
		}
	}
	if second := readTestFile(t, filepath.Join(repo.root, ".hookwire", "hooks", "pre-commit.sh")); second != first {
		t.Errorf("script content changed between runs")
	}
}

func TestGenerate_CopyMode(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	report, err := newPosixGenerator(repo, sampleHooks(), WithLinkMode(config.LinkCopy)).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}

	for _, o := range report.Outcomes {
		if o.Action != ActionCopied {
			t.Errorf("%s action = %q, want %q", o.Event, o.Action, ActionCopied)
		}
		info, err := os.Lstat(o.SlotPath)
		if err != nil {
			t.Fatal(err)
		}
		if !info.Mode().IsRegular() {
			t.Errorf("%s slot mode = %v, want regular file", o.Event, info.Mode())
		}
	}
}

func TestGenerate_KeepsForeignHooks(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	userHook := "#!/bin/sh\necho mine\n"
	writeTestFile(t, filepath.Join(repo.hooksDir, "pre-commit"), userHook)

	report, err := newPosixGenerator(repo, sampleHooks()).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}

	skipped := report.Skipped()
	if len(skipped) != 1 || skipped[0].Event != "pre-commit" {
		t.Fatalf("Skipped() = %v, want pre-commit", skipped)
	}
	if got := readTestFile(t, filepath.Join(repo.hooksDir, "pre-commit")); got != userHook {
		t.Errorf("user hook overwritten: %q", got)
	}
	// The script is still stored so the user can call it from their hook.
	if _, err := os.Stat(filepath.Join(repo.root, ".hookwire", "hooks", "pre-commit.sh")); err != nil {
		t.Errorf("script not stored: %v", err)
	}
	assertSymlinkTo(t, filepath.Join(repo.hooksDir, "post-push"), filepath.Join(repo.root, ".hookwire", "hooks", "post-push.sh"))

	if _, err := newPosixGenerator(repo, sampleHooks()).Cleanup(context.Background()); err != nil {
		t.Fatalf("Cleanup() = %v", err)
	}
	if got := readTestFile(t, filepath.Join(repo.hooksDir, "pre-commit")); got != userHook {
		t.Errorf("Cleanup() touched user hook: %q", got)
	}
}

func TestGenerate_PrunesRemovedEvents(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	if _, err := newPosixGenerator(repo, sampleHooks()).Generate(context.Background()); err != nil {
		t.Fatal(err)
	}

	report, err := newPosixGenerator(repo, config.HookConfig{"pre-commit": {"lint"}}).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}

	var pruned *Outcome
	for i, o := range report.Outcomes {
		if o.Event == "post-push" {
			pruned = &report.Outcomes[i]
		}
	}
	if pruned == nil || pruned.Action != ActionPruned {
		t.Fatalf("post-push outcome = %+v, want pruned", pruned)
	}
	assertNotExist(t, filepath.Join(repo.hooksDir, "post-push"))
	assertNotExist(t, filepath.Join(repo.root, ".hookwire", "hooks", "post-push.sh"))

	// Emptying the config removes everything, including the tool directory.
	if _, err := newPosixGenerator(repo, nil).Generate(context.Background()); err != nil {
		t.Fatalf("Generate() with empty config = %v", err)
	}
	assertNotExist(t, filepath.Join(repo.hooksDir, "pre-commit"))
	assertNotExist(t, filepath.Join(repo.root, ".hookwire"))
}

func TestCleanup(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	gen := newPosixGenerator(repo, sampleHooks())
	if _, err := gen.Generate(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Cleanup is driven by what is stored, so an empty config still cleans.
	report, err := newPosixGenerator(repo, nil).Cleanup(context.Background())
	if err != nil {
		t.Fatalf("Cleanup() = %v", err)
	}
	for _, o := range report.Outcomes {
		if o.Action != ActionRemoved {
			t.Errorf("%s action = %q, want %q", o.Event, o.Action, ActionRemoved)
		}
	}
	if want := []string{"post-push", "pre-commit"}; !slices.Equal(outcomeEvents(report), want) {
		t.Errorf("outcome events = %v, want %v", outcomeEvents(report), want)
	}

	assertNotExist(t, filepath.Join(repo.hooksDir, "pre-commit"))
	assertNotExist(t, filepath.Join(repo.hooksDir, "post-push"))
	assertNotExist(t, filepath.Join(repo.root, ".hookwire"))
	if _, err := os.Stat(repo.hooksDir); err != nil {
		t.Errorf("git hooks dir removed: %v", err)
	}

	again, err := gen.Cleanup(context.Background())
	if err != nil {
		t.Fatalf("second Cleanup() = %v", err)
	}
	if len(again.Outcomes) != 0 {
		t.Errorf("second Cleanup() outcomes = %v, want none", again.Outcomes)
	}
}

func TestCleanup_LeavesUnmarkedFiles(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	if _, err := newPosixGenerator(repo, sampleHooks()).Generate(context.Background()); err != nil {
		t.Fatal(err)
	}
	userScript := filepath.Join(repo.root, ".hookwire", "hooks", "helper.sh")
	writeTestFile(t, userScript, "#!/bin/sh\n")

	if _, err := newPosixGenerator(repo, nil).Cleanup(context.Background()); err != nil {
		t.Fatalf("Cleanup() = %v", err)
	}
	if _, err := os.Stat(userScript); err != nil {
		t.Errorf("unmarked script removed: %v", err)
	}
	assertNotExist(t, filepath.Join(repo.root, ".hookwire", "hooks", "pre-commit.sh"))
}

func TestGenerate_Worktree(t *testing.T) {
	t.Parallel()

	base := resolveTempDir(t)
	mainDir := filepath.Join(base, "main")
	tree := filepath.Join(base, "tree")
	gitDir := filepath.Join(mainDir, ".git", "worktrees", "tree")
	writeTestFile(t, filepath.Join(mainDir, ".git", "HEAD"), "ref: refs/heads/main\n")
	writeTestFile(t, filepath.Join(gitDir, "commondir"), "../..\n")
	writeTestFile(t, filepath.Join(tree, ".git"), "gitdir: "+gitDir+"\n")

	repo, err := git.Load(tree)
	if err != nil {
		t.Fatalf("git.Load() = %v", err)
	}

	gen := NewGenerator(repo.Root(), repo, sampleHooks(), WithPlatform(PosixPlatform{}))
	if _, err := gen.Generate(context.Background()); err != nil {
		t.Fatalf("Generate() = %v", err)
	}

	script := filepath.Join(tree, ".hookwire", "hooks", "pre-commit.sh")
	if _, err := os.Stat(script); err != nil {
		t.Errorf("script not stored in worktree: %v", err)
	}
	assertNotExist(t, filepath.Join(mainDir, ".hookwire"))
	assertSymlinkTo(t, filepath.Join(mainDir, ".git", "hooks", "pre-commit"), script)

	// The main checkout takes the shared slot back.
	mainRepo, err := git.Load(mainDir)
	if err != nil {
		t.Fatalf("git.Load(main) = %v", err)
	}
	mainGen := NewGenerator(mainRepo.Root(), mainRepo, sampleHooks(), WithPlatform(PosixPlatform{}))
	statuses, err := mainGen.Status(context.Background())
	if err != nil {
		t.Fatalf("Status() = %v", err)
	}
	for _, s := range statuses {
		if s.Slot != SlotManaged {
			t.Errorf("%s slot = %q before main Generate, want %q", s.Event, s.Slot, SlotManaged)
		}
	}
	if _, err := mainGen.Generate(context.Background()); err != nil {
		t.Fatalf("main Generate() = %v", err)
	}
	assertSymlinkTo(t, filepath.Join(mainDir, ".git", "hooks", "pre-commit"), filepath.Join(mainDir, ".hookwire", "hooks", "pre-commit.sh"))
}

func TestGenerate_CancelledContext(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newPosixGenerator(repo, sampleHooks()).Generate(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Generate() = %v, want context.Canceled", err)
	}
	if len(report.Outcomes) != 0 {
		t.Errorf("outcomes = %v, want none", report.Outcomes)
	}
}

func TestGenerate_HooksDirError(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	repo.err = errors.New("boom")

	if _, err := newPosixGenerator(repo, sampleHooks()).Generate(context.Background()); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("Generate() = %v, want wrapped lookup error", err)
	}
}

func TestGenerate_WriteErrorNamesEvent(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	// A directory in place of the script makes the write fail.
	if err := os.MkdirAll(filepath.Join(repo.root, ".hookwire", "hooks", "post-push.sh"), 0755); err != nil {
		t.Fatal(err)
	}

	_, err := newPosixGenerator(repo, sampleHooks()).Generate(context.Background())
	if err == nil {
		t.Fatal("Generate() = nil, want error")
	}
	if !strings.Contains(err.Error(), `event "post-push"`) {
		t.Errorf("Generate() error = %q, want event name", err)
	}
}

func TestStatus(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	writeTestFile(t, filepath.Join(repo.hooksDir, "post-push"), "#!/bin/sh\n")
	if _, err := newPosixGenerator(repo, config.HookConfig{"commit-msg": {"check"}}).Generate(context.Background()); err != nil {
		t.Fatal(err)
	}

	gen := newPosixGenerator(repo, sampleHooks())
	statuses, err := gen.Status(context.Background())
	if err != nil {
		t.Fatalf("Status() = %v", err)
	}

	want := map[string]struct {
		configured, stored bool
		slot               SlotState
	}{
		"commit-msg": {configured: false, stored: true, slot: SlotOurs},
		"post-push":  {configured: true, stored: false, slot: SlotForeign},
		"pre-commit": {configured: true, stored: false, slot: SlotEmpty},
	}
	if len(statuses) != len(want) {
		t.Fatalf("Status() returned %d entries, want %d: %+v", len(statuses), len(want), statuses)
	}
	for _, s := range statuses {
		w, ok := want[s.Event]
		if !ok {
			t.Errorf("unexpected event %q", s.Event)
			continue
		}
		if s.Configured != w.configured || s.Stored != w.stored || s.Slot != w.slot {
			t.Errorf("%s = {configured %v, stored %v, slot %q}, want {%v, %v, %q}",
				s.Event, s.Configured, s.Stored, s.Slot, w.configured, w.stored, w.slot)
		}
	}
}

func TestStatus_Empty(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	repo.err = errors.New("unexpected lookup")

	statuses, err := newPosixGenerator(repo, nil).Status(context.Background())
	if err != nil || statuses != nil {
		t.Errorf("Status() = %v, %v; want nil, nil", statuses, err)
	}
}

func TestGenerate_RelativeRoot(t *testing.T) {
	repo := newTestRepo(t)
	t.Chdir(filepath.Dir(repo.root))

	rel := filepath.Base(repo.root)
	gen := NewGenerator(rel, fakeVCS{root: rel, hooksDir: repo.hooksDir}, sampleHooks(), WithPlatform(PosixPlatform{}))
	if _, err := gen.Generate(context.Background()); err != nil {
		t.Fatalf("Generate() = %v", err)
	}

	slot := filepath.Join(repo.hooksDir, "pre-commit")
	target, err := os.Readlink(slot)
	if err != nil {
		t.Fatalf("Readlink() = %v", err)
	}
	if want := filepath.Join(repo.root, ".hookwire", "hooks", "pre-commit.sh"); target != want {
		t.Errorf("link target = %q, want %q", target, want)
	}
	if _, err := os.Stat(slot); err != nil {
		t.Errorf("slot does not resolve: %v", err)
	}

	status, err := gen.Status(context.Background())
	if err != nil {
		t.Fatalf("Status() = %v", err)
	}
	for _, s := range status {
		if s.Slot != SlotOurs {
			t.Errorf("%s slot = %q, want %q", s.Event, s.Slot, SlotOurs)
		}
	}

	if _, err := gen.Cleanup(context.Background()); err != nil {
		t.Fatalf("Cleanup() = %v", err)
	}
	assertNotExist(t, slot)
	assertNotExist(t, filepath.Join(repo.hooksDir, "post-push"))
	assertNotExist(t, filepath.Join(repo.root, ".hookwire"))
}
