// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"strings"

	"github.com/pdiddy/program-extract/pkg/types"
)

// unset reports whether r has no constraints. An unset rule matches nothing,
// so a missing config section never swallows every block.
func unset(r types.Rule) bool {
	return len(r.Prefixes) == 0 && r.Font == "" && r.MinSize == 0 && r.MaxSize == 0
}

// match reports whether b satisfies every constraint of r.
func match(r types.Rule, b types.TextBlock) bool {
	if unset(r) {
		return false
	}
	if r.MinSize > 0 && b.FontSize < r.MinSize {
		return false
	}
	if r.MaxSize > 0 && b.FontSize > r.MaxSize {
		return false
	}
	if r.Font != "" && !strings.Contains(b.Font, r.Font) {
		return false
	}
	if len(r.Prefixes) > 0 && !hasPrefix(b.Text, r.Prefixes) {
		return false
	}
	return true
}

// matchAny reports whether b satisfies at least one of rules.
func matchAny(rules []types.Rule, b types.TextBlock) bool {
	for _, r := range rules {
		if match(r, b) {
			return true
		}
	}
	return false
}

func hasPrefix(text string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(text, p) {
			return true
		}
	}
	return false
}

// stripKeyword removes kw and any following punctuation from text.
func stripKeyword(text, kw string) string {
	rest := strings.TrimPrefix(text, kw)
	return strings.TrimSpace(strings.TrimLeft(rest, " :.-–—"))
}

// normalizeName trims list separators left over from co-author lines such
// as ", Dr. John Smith".
func normalizeName(text string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(text), ",;"))
}

func join(acc, next, sep string) string {
	if acc == "" {
		return next
	}
	if next == "" {
		return acc
	}
	return acc + sep + next
}
