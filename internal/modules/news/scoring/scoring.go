package scoring

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// rageTiers is the ordered rule table for rage scoring: tiers are checked
// from 5 down to 1 and the first tier containing a matched keyword decides
// the level, bypassing all fallback heuristics.
var rageTiers = []struct {
	level    int
	keywords []string
}{
	{5, []string{
		"insurrection", "impeach", "25th amendment", "unhinged", "unstable",
		"crazy", "bonkers", "invasion", "military action", "locked and loaded",
		"rot in hell", "threat", "attack", "chaos", "crisis", "emergency",
		"unprecedented", "shocking", "explosive", "furious",
	}},
	{4, []string{
		"tariff", "slam", "rage", "demands", "threatens", "blast", "rips",
		"greenland", "conflict", "dispute", "clash", "warns", "escalat",
		"tensions", "controversial",
	}},
	{3, []string{
		"claims", "false", "lie", "misleading", "controversial", "dispute",
		"criticism", "questions", "concerns", "debate",
	}},
	{2, []string{
		"says", "announces", "plans", "considers", "proposes", "suggests",
	}},
	{1, []string{
		"meets", "visits", "speaks", "signs", "travels",
	}},
}

// intenseWords bump the fallback score when no tier keyword matched.
var intenseWords = []string{
	"outrage", "scandal", "bombshell", "shocking", "stunned",
	"slams", "rips", "destroys", "blasts", "fires back", "doubles down",
	"defiant", "refuses", "denies", "accuses", "meltdown", "tirade", "rant",
}

// dramaticSources tend to run more dramatic headlines.
var dramaticSources = []string{
	"daily beast", "daily mail", "ny post", "breitbart", "huffpost",
}

var capsWordPattern = regexp.MustCompile(`\b[A-Z]{3,}\b`)

// RageLevel maps a news item's title and description to a rage level
// between 1 and 5. Tier keywords take precedence; stylistic heuristics
// only apply when no tier keyword matches. Deterministic.
func RageLevel(title, description string) int {
	original := title + " " + description
	text := strings.ToLower(original)

	for _, tier := range rageTiers {
		for _, kw := range tier.keywords {
			if strings.Contains(text, kw) {
				return tier.level
			}
		}
	}

	return fallbackScore(title, original, text)
}

// fallbackScore analyzes tone and style: shouting, punctuation, dramatic
// wording. Starts at 2 (annoyed) and clamps to [1,5].
func fallbackScore(title, original, text string) int {
	score := 2

	capsWords := capsWordPattern.FindAllString(original, -1)
	switch {
	case len(capsWords) >= 3:
		score += 2
	case len(capsWords) >= 1:
		score++
	}

	exclamations := strings.Count(original, "!")
	switch {
	case exclamations >= 3:
		score += 2
	case exclamations >= 1:
		score++
	}

	// Question marks in headlines often indicate controversy.
	if strings.Contains(title, "?") {
		score++
	}

	if lo.SomeBy(intenseWords, func(w string) bool { return strings.Contains(text, w) }) {
		score++
	}

	if lo.SomeBy(dramaticSources, func(s string) bool { return strings.Contains(text, s) }) {
		score++
	}

	// Quotes often indicate drama.
	if strings.ContainsAny(title, `"'`) {
		score++
	}

	if score > 5 {
		return 5
	}
	if score < 1 {
		return 1
	}
	return score
}
