package internal

import (
	"regexp"
	"strings"
)

// SentencePrefixLength bounds how much of a sentence ends up in its file
// name.
const SentencePrefixLength = 10

var (
	// Characters that are illegal in file names on at least one platform
	illegalChars = regexp.MustCompile(`[<>:"/\\|?*]`)

	// Whitespace as Python and JavaScript define it, plus ASCII and
	// full-width CJK punctuation
	separatorChars = regexp.MustCompile(`[\s\v\x{1c}-\x{1f}\x{85}\x{feff}\p{Z}.,!?;:，。！？；：]`)

	underscoreRuns = regexp.MustCompile(`_+`)
)

// SanitizeFilename turns arbitrary text into a filesystem-safe identifier.
// Illegal characters are dropped, whitespace and punctuation become a single
// underscore and leading/trailing underscores are trimmed. The result is
// stable across runs and SanitizeFilename(SanitizeFilename(s)) equals
// SanitizeFilename(s).
func SanitizeFilename(s string) string {
	sanitized := illegalChars.ReplaceAllString(s, "")
	sanitized = separatorChars.ReplaceAllString(sanitized, "_")
	sanitized = underscoreRuns.ReplaceAllString(sanitized, "_")
	return strings.Trim(sanitized, "_")
}

// StripIllegal removes only the characters that can not appear in a file
// name. Romanizations go through this so tone marks and spaces survive.
func StripIllegal(s string) string {
	return illegalChars.ReplaceAllString(s, "")
}

// Truncate returns the first n runes of s.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
