// Package cmd provides helpers for executing external commands with proper
// error handling.
//
// Failed commands surface their trimmed stderr as the error message so that
// git diagnostics reach the user verbatim. The original [os/exec.ExitError]
// stays reachable through [errors.As], which callers use to tell "git config
// key not set" (exit status 1, no output) apart from real failures:
//
//	out, err := cmd.OutputContext(ctx, dir, "git", "config", "--get", "core.hooksPath")
//	if code, ok := cmd.ExitCode(err); ok && code == 1 {
//	    // not configured
//	}
//
// Every invocation is traced through the context logger in verbose mode.
package cmd
