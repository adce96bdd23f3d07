package hooks

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Marker identifies files generated by hookwire.
const Marker = "# hookwire:managed"

// markerScanLines bounds how far into a file Marker is searched for.
const markerScanLines = 5

// HasMarker reports whether content carries Marker on one of its first
// markerScanLines lines.
func HasMarker(content []byte) bool {
	sc := bufio.NewScanner(bytes.NewReader(content))
	for i := 0; i < markerScanLines && sc.Scan(); i++ {
		if strings.TrimSpace(sc.Text()) == Marker {
			return true
		}
	}
	return false
}

// RenderedHook is a script ready to be written to the store.
type RenderedHook struct {
	Event  string
	Script string
	Ext    string
}

// Platform renders scripts in the syntax of one host shell.
type Platform interface {
	// Name identifies the platform ("posix" or "windows").
	Name() string
	// Ext is the file extension of stored scripts, including the dot.
	Ext() string
	// Render builds the script for event. commands must not be empty.
	Render(event string, commands []string) RenderedHook
	// Shim builds a hook-slot script that forwards to the stored script
	// at target (an absolute path).
	Shim(target string) string
	// Symlinks reports whether hook slots may be symlinks.
	Symlinks() bool
}

// PosixPlatform renders /bin/sh scripts.
type PosixPlatform struct{}

// WindowsPlatform renders PowerShell scripts. Shell is the PowerShell
// executable invoked by shims ("pwsh" or "powershell").
type WindowsPlatform struct {
	Shell string
}

// PlatformFor returns the platform for goos. On Windows pwsh is preferred
// when it is on PATH.
func PlatformFor(goos string) Platform {
	if goos != "windows" {
		return PosixPlatform{}
	}
	shell := "powershell"
	if _, err := exec.LookPath("pwsh"); err == nil {
		shell = "pwsh"
	}
	return WindowsPlatform{Shell: shell}
}

func (PosixPlatform) Name() string   { return "posix" }
func (PosixPlatform) Ext() string    { return ".sh" }
func (PosixPlatform) Symlinks() bool { return true }

// Render runs each command on its own line followed by an exit-status
// check. Commands must be complete statements; config validation rejects
// ones ending in a continuation such as a backslash or "&&".
func (PosixPlatform) Render(event string, commands []string) RenderedHook {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	writeHeader(&b, event)
	for _, c := range commands {
		b.WriteString("\n")
		b.WriteString(c)
		b.WriteString("\nhookwire_status=$?; [ \"$hookwire_status\" -eq 0 ] || exit \"$hookwire_status\"\n")
	}
	return RenderedHook{Event: event, Script: b.String(), Ext: ".sh"}
}

func (PosixPlatform) Shim(target string) string {
	return shim("exec " + shellQuote(target) + ` "$@"`)
}

func (WindowsPlatform) Name() string   { return "windows" }
func (WindowsPlatform) Ext() string    { return ".ps1" }
func (WindowsPlatform) Symlinks() bool { return false }

func (WindowsPlatform) Render(event string, commands []string) RenderedHook {
	var b strings.Builder
	b.WriteString("#!/usr/bin/env pwsh\n")
	writeHeader(&b, event)
	b.WriteString("$ErrorActionPreference = 'Stop'\n")
	for _, c := range commands {
		b.WriteString("\n")
		b.WriteString(c)
		b.WriteString("\nif (-not $?) { if ($LASTEXITCODE) { exit $LASTEXITCODE } else { exit 1 } }\n")
	}
	b.WriteString("\nexit 0\n")
	return RenderedHook{Event: event, Script: b.String(), Ext: ".ps1"}
}

// Shim is a sh script because git for Windows runs hooks through its
// bundled sh.
func (p WindowsPlatform) Shim(target string) string {
	shell := p.Shell
	if shell == "" {
		shell = "powershell"
	}
	return shim(fmt.Sprintf(`exec %s -NoLogo -NoProfile -ExecutionPolicy Bypass -File %s "$@"`,
		shell, shellQuote(filepath.ToSlash(target))))
}

func writeHeader(b *strings.Builder, event string) {
	b.WriteString(Marker + "\n")
	fmt.Fprintf(b, "# Generated by hookwire for the %q hook. Do not edit.\n", event)
}

func shim(execLine string) string {
	return "#!/bin/sh\n" + Marker + "\n# Forwards to a script generated by hookwire. Do not edit.\n" + execLine + "\n"
}

// shellQuote escapes a string for safe use in shell commands.
// It wraps the value in single quotes and escapes any embedded single quotes.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}
