// Package prompt provides simple interactive prompts.
//
// Prompts render to stderr so stdout stays clean for piping.
package prompt
