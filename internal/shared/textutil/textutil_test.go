package textutil

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"plain text", "Trump speaks at rally", "Trump speaks at rally"},
		{"strips tags", "<p>Hello <b>world</b></p>", "Hello world"},
		{"decodes entities", "Bonnie &amp; Clyde &quot;on the run&quot;", `Bonnie & Clyde "on the run"`},
		{"nbsp and apostrophe", "it&#39;s&nbsp;done", "it's done"},
		{"trims whitespace", "  padded  ", "padded"},
		{"tag with attributes", `<a href="https://example.com">link</a>`, "link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.raw))
		})
	}
}

func TestCleanTruncates(t *testing.T) {
	long := strings.Repeat("a", 500)
	got := Clean(long)
	assert.Len(t, got, MaxCleanLength)
}

func TestCleanLeavesNoTags(t *testing.T) {
	inputs := []string{
		"<div><span>nested</span> tags</div>",
		"text with <img src='x.png'> inline",
		"<script>alert(1)</script>plain",
	}
	for _, in := range inputs {
		got := Clean(in)
		assert.NotContains(t, got, "<")
		assert.NotContains(t, got, ">")
		assert.LessOrEqual(t, len(got), MaxCleanLength)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "", Truncate("", 10))
}

func TestTruncateRuneBoundary(t *testing.T) {
	// 2-byte runes: a cut landing mid-rune backs up to the boundary.
	accented := strings.Repeat("é", 200)
	got := Truncate(accented, 301)
	assert.True(t, utf8.ValidString(got))
	assert.Len(t, got, 300)

	// 4-byte runes.
	assert.Equal(t, "🔥", Truncate("🔥🔥", 7))
	assert.True(t, utf8.ValidString(Truncate("🔥🔥🔥", 5)))
}

func TestCleanMultibyteStaysValid(t *testing.T) {
	got := Clean(strings.Repeat("ü", 400))
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), MaxCleanLength)
}
