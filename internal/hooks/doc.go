// Package hooks generates git hook scripts from configuration and wires them
// into the repository's hook directory.
//
// Generation has three parts:
//
//   - [Platform] renders a script for the host shell (POSIX sh or
//     PowerShell). Every command runs in order and the first failure aborts
//     the hook with that command's exit status.
//   - [Store] keeps the rendered scripts in the tool-owned directory
//     .hookwire/hooks at the checkout root (the worktree root for linked
//     worktrees).
//   - [Linker] places a reference in git's hook directory: a symlink to the
//     stored script, or a small shim script that execs it where symlinks
//     are unavailable.
//
// [Generator] composes them into Generate and Cleanup.
//
// # Ownership
//
// Every generated file carries [Marker] near the top. Nothing is
// overwritten or deleted unless it is proven to be ours: a symlink must
// point at the expected script (or at a file carrying the marker), a
// regular file must carry the marker. Hooks the user wrote by hand are
// reported as skipped and left alone.
//
// # Worktrees
//
// Linked worktrees share one hook directory with the main checkout. Each
// worktree keeps its own rendered scripts; the shared slot points at the
// scripts of whichever checkout ran Generate last.
package hooks
