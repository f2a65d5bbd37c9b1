package storage

import (
	"fmt"
	"strings"
)

// ProblemFilter selects candidate problems for sampling. Unrated problems
// never match, and both rating bounds are inclusive.
type ProblemFilter struct {
	Tags      []string
	Exclude   map[string]struct{}
	MinRating int
	MaxRating int
}

func (f ProblemFilter) Matches(mention string, rating *int, tags []string) bool {
	if rating == nil || *rating < f.MinRating || *rating > f.MaxRating {
		return false
	}
	if _, excluded := f.Exclude[mention]; excluded {
		return false
	}
	return hasAllTags(tags, f.Tags)
}

func (f ProblemFilter) String() string {
	return fmt.Sprintf("tags=[%s] rating=[%d,%d] excluded=%d",
		strings.Join(f.Tags, ","), f.MinRating, f.MaxRating, len(f.Exclude))
}

func hasAllTags(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(have))
	for _, t := range have {
		set[t] = struct{}{}
	}
	for _, t := range want {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	return true
}

type candidate struct {
	mention string
	rating  *int
	tags    []string
}

// pickUniform returns the mention of one matching candidate, each with equal
// probability. intn is rand.Intn or a seeded equivalent.
func pickUniform(cands []candidate, f ProblemFilter, intn func(int) int) (string, bool) {
	matching := make([]string, 0, len(cands))
	for _, c := range cands {
		if f.Matches(c.mention, c.rating, c.tags) {
			matching = append(matching, c.mention)
		}
	}
	if len(matching) == 0 {
		return "", false
	}
	return matching[intn(len(matching))], true
}
