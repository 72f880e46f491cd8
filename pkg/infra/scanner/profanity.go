package scanner

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// Terms are matched as substrings, with no word boundaries.
var defaultDenylist = []string{
	"fuck",
	"shit",
	"bitch",
	"bastard",
	"asshole",
	"cunt",
	"dickhead",
	"motherfucker",
	"slut",
	"whore",
	"faggot",
	"nigger",
	"retard",
	"wanker",
	"twat",
	"bollocks",
	"douchebag",
	"jackass",
}

// DefaultDenylist returns a copy of the built-in profanity terms.
func DefaultDenylist() []string {
	out := make([]string, len(defaultDenylist))
	copy(out, defaultDenylist)
	return out
}

type profanityFilter struct {
	matcher *ahocorasick.Matcher
	empty   bool
}

func newProfanityFilter(terms []string) *profanityFilter {
	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			lowered = append(lowered, t)
		}
	}
	return &profanityFilter{
		matcher: ahocorasick.NewStringMatcher(lowered),
		empty:   len(lowered) == 0,
	}
}

// contains uses MatchThreadSafe: Match keeps per-call state on the matcher.
func (f *profanityFilter) contains(text string) bool {
	if text == "" || f.empty {
		return false
	}
	return len(f.matcher.MatchThreadSafe([]byte(strings.ToLower(text)))) > 0
}
