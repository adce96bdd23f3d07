package hooks

import (
	"slices"

	"github.com/sahilm/fuzzy"
)

// KnownEvents lists the hook names git documents in githooks(5).
// Other names are still generated; git simply never runs them.
var KnownEvents = []string{
	"applypatch-msg",
	"commit-msg",
	"fsmonitor-watchman",
	"p4-changelist",
	"p4-post-changelist",
	"p4-pre-submit",
	"p4-prepare-changelist",
	"post-applypatch",
	"post-checkout",
	"post-commit",
	"post-index-change",
	"post-merge",
	"post-receive",
	"post-rewrite",
	"post-update",
	"pre-applypatch",
	"pre-auto-gc",
	"pre-commit",
	"pre-merge-commit",
	"pre-push",
	"pre-rebase",
	"pre-receive",
	"prepare-commit-msg",
	"proc-receive",
	"push-to-checkout",
	"reference-transaction",
	"sendemail-validate",
	"update",
}

// IsKnownEvent reports whether git runs hooks named event.
func IsKnownEvent(event string) bool {
	return slices.Contains(KnownEvents, event)
}

// SuggestEvent returns the known event closest to a misspelled name,
// or "" when nothing matches.
func SuggestEvent(event string) string {
	matches := fuzzy.Find(event, KnownEvents)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

// UnknownEvents returns the configured events git does not know about,
// in the order given.
func UnknownEvents(events []string) []string {
	var unknown []string
	for _, e := range events {
		if !IsKnownEvent(e) {
			unknown = append(unknown, e)
		}
	}
	return unknown
}
