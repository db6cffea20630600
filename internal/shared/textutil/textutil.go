package textutil

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxCleanLength is the upper bound for cleaned feed text.
const MaxCleanLength = 300

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// entityReplacer covers the named and numeric entities that show up in
// practice in news feed titles and descriptions.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// Clean strips HTML tags and common entities from raw feed text, trims
// surrounding whitespace and truncates the result to MaxCleanLength.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}
	text := tagPattern.ReplaceAllString(raw, "")
	text = entityReplacer.Replace(text)
	text = strings.TrimSpace(text)
	return Truncate(text, MaxCleanLength)
}

// Truncate cuts s to at most maxLen bytes, backing up to the nearest
// rune boundary so the result is always valid UTF-8.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
