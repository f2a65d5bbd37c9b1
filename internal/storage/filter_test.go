package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestProblemFilterMatches(t *testing.T) {
	f := ProblemFilter{
		Tags:      []string{"dp", "greedy"},
		Exclude:   map[string]struct{}{"100A": {}},
		MinRating: 1400,
		MaxRating: 1800,
	}

	tests := []struct {
		name    string
		mention string
		rating  *int
		tags    []string
		want    bool
	}{
		{name: "all constraints hold", mention: "1B", rating: intPtr(1500), tags: []string{"greedy", "math", "dp"}, want: true},
		{name: "lower bound inclusive", mention: "1B", rating: intPtr(1400), tags: []string{"dp", "greedy"}, want: true},
		{name: "upper bound inclusive", mention: "1B", rating: intPtr(1800), tags: []string{"dp", "greedy"}, want: true},
		{name: "below band", mention: "1B", rating: intPtr(1300), tags: []string{"dp", "greedy"}},
		{name: "above band", mention: "1B", rating: intPtr(1900), tags: []string{"dp", "greedy"}},
		{name: "unrated", mention: "1B", tags: []string{"dp", "greedy"}},
		{name: "excluded", mention: "100A", rating: intPtr(1500), tags: []string{"dp", "greedy"}},
		{name: "missing one tag", mention: "1B", rating: intPtr(1500), tags: []string{"dp"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, f.Matches(tc.mention, tc.rating, tc.tags))
		})
	}
}

func TestEmptyTagFilterMatchesAnyTags(t *testing.T) {
	f := ProblemFilter{MinRating: 0, MaxRating: 1800}
	assert.True(t, f.Matches("1A", intPtr(800), nil))
	assert.True(t, f.Matches("1A", intPtr(0), []string{"math"}))
}

func TestPickUniformExactBand(t *testing.T) {
	cands := []candidate{
		{mention: "1A", rating: intPtr(1900)},
		{mention: "2A", rating: intPtr(2000)},
		{mention: "3A", rating: intPtr(2100)},
		{mention: "4A", rating: intPtr(2000)},
		{mention: "5A"},
	}
	f := ProblemFilter{MinRating: 2000, MaxRating: 2000}

	for i := 0; i < 2; i++ {
		got, ok := pickUniform(cands, f, func(int) int { return i })
		assert.True(t, ok)
		assert.Contains(t, []string{"2A", "4A"}, got)
	}

	_, ok := pickUniform(cands, ProblemFilter{MinRating: 2050, MaxRating: 2050}, func(int) int { return 0 })
	assert.False(t, ok)
}

func TestPickUniformCoversEveryMatch(t *testing.T) {
	cands := []candidate{
		{mention: "1A", rating: intPtr(1000)},
		{mention: "2A", rating: intPtr(1100)},
		{mention: "3A", rating: intPtr(5000)},
		{mention: "4A", rating: intPtr(1200)},
	}
	f := ProblemFilter{MinRating: 0, MaxRating: 1800}

	var sizes []int
	picked := map[string]int{}
	for i := 0; i < 3; i++ {
		got, ok := pickUniform(cands, f, func(n int) int {
			sizes = append(sizes, n)
			return i
		})
		assert.True(t, ok)
		picked[got]++
	}

	assert.Equal(t, []int{3, 3, 3}, sizes, "the draw ranges over the whole matching set")
	assert.Equal(t, map[string]int{"1A": 1, "2A": 1, "4A": 1}, picked)
}
