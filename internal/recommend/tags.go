package recommend

import "strings"

// KnownTags is the Codeforces problem tag vocabulary.
var KnownTags = []string{
	"*special",
	"2-sat",
	"binary search",
	"bitmasks",
	"brute force",
	"chinese remainder theorem",
	"combinatorics",
	"constructive algorithms",
	"data structures",
	"dfs and similar",
	"divide and conquer",
	"dp",
	"dsu",
	"expression parsing",
	"fft",
	"flows",
	"games",
	"geometry",
	"graph matchings",
	"graphs",
	"greedy",
	"hashing",
	"implementation",
	"interactive",
	"math",
	"matrices",
	"meet-in-the-middle",
	"number theory",
	"probabilities",
	"schedules",
	"shortest paths",
	"sortings",
	"string suffix structures",
	"strings",
	"ternary search",
	"trees",
	"two pointers",
}

// ExpandTags maps every query token longer than one character to all known
// tags it prefixes and returns the union in first-seen order. Tokens that
// match nothing contribute nothing.
func ExpandTags(query []string) []string {
	out := make([]string, 0, len(query))
	seen := make(map[string]struct{})
	for _, token := range query {
		token = strings.ToLower(strings.TrimSpace(token))
		if len(token) <= 1 {
			continue
		}
		for _, tag := range KnownTags {
			if !strings.HasPrefix(tag, token) {
				continue
			}
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}
