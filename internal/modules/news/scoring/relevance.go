package scoring

import (
	"strings"

	"github.com/samber/lo"
)

// subjectKeywords mark an item as belonging to the tracked subject.
// Substring match on the lower-cased title+description, no stemming.
var subjectKeywords = []string{
	"trump", "donald", "president", "white house", "oval office",
	"maga", "mar-a-lago", "truth social", "greenland", "tariff",
}

// IsRelevant reports whether a news item is about the tracked subject.
func IsRelevant(title, description string) bool {
	text := strings.ToLower(title + " " + description)
	return lo.SomeBy(subjectKeywords, func(kw string) bool {
		return strings.Contains(text, kw)
	})
}
