// Package git resolves the repository layout hookwire needs: the checkout
// root, the linked worktree root, and the directory git consults for hook
// scripts.
//
// Layout resolution reads the .git entry from disk rather than shelling out,
// so it works without a git binary:
//
//   - .git directory: a regular checkout, hooks live in .git/hooks
//   - .git file: a linked worktree whose "gitdir:" line points at
//     .git/worktrees/<name> in the main repository; that directory's
//     commondir file leads back to the shared git dir, whose hooks
//     directory serves every worktree
//
// [Open] additionally asks git for core.hooksPath, which overrides the
// default hook directory when set. Commands are run with [os/exec.Command]
// through the internal cmd package so user configuration (includes,
// conditional config) is honored exactly as git sees it.
package git
