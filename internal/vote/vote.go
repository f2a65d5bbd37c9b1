// Package vote defines the reaction kinds users toggle on problems and the
// set of voters recorded per kind.
package vote

import (
	"errors"
	"fmt"
)

var ErrUnknownCategory = errors.New("unknown vote category")

type Category string

const (
	Good Category = "good"
	Bad  Category = "bad"
	Easy Category = "easy"
	Hard Category = "hard"
)

// Categories lists every category in display order.
var Categories = []Category{Good, Bad, Easy, Hard}

var emojis = map[Category]string{
	Good: "👍",
	Bad:  "👎",
	Easy: "😴",
	Hard: "🔥",
}

func (c Category) Valid() bool {
	_, ok := emojis[c]
	return ok
}

func (c Category) Emoji() string {
	return emojis[c]
}

func ParseCategory(raw string) (Category, error) {
	c := Category(raw)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
	}
	return c, nil
}

// Voters is the set of chat user ids that cast one category on one problem.
type Voters map[int64]struct{}

func NewVoters(ids ...int64) Voters {
	v := make(Voters, len(ids))
	for _, id := range ids {
		v[id] = struct{}{}
	}
	return v
}

func (v Voters) Has(id int64) bool {
	_, ok := v[id]
	return ok
}

func (v Voters) Add(id int64) {
	v[id] = struct{}{}
}

func (v Voters) remove(id int64) {
	delete(v, id)
}

// Toggle adds id when absent and removes it when present. It reports whether
// id is in the set afterwards.
func (v Voters) Toggle(id int64) bool {
	if v.Has(id) {
		v.remove(id)
		return false
	}
	v.Add(id)
	return true
}

func (v Voters) Len() int {
	return len(v)
}

// Counts maps every category to its number of voters; categories nobody
// voted for report zero.
func Counts(sets map[Category]Voters) map[Category]int {
	out := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		out[c] = sets[c].Len()
	}
	return out
}
