package shared

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FoldTurkish lowercases a string using Turkish casing rules, so searches for
// "IŞIK" and "ışık" meet in the middle. Casers are stateful, hence one per call.
func FoldTurkish(s string) string {
	return cases.Lower(language.Turkish).String(s)
}

// MatchesTurkish reports whether haystack contains needle under Turkish
// case-insensitive comparison. An empty needle matches everything.
func MatchesTurkish(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(FoldTurkish(haystack), FoldTurkish(needle))
}
