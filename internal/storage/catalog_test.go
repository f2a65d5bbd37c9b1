package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-codeforces-bot/internal/codeforces"
)

func problem(contestID int, index, name string, tags ...string) codeforces.Problem {
	return codeforces.Problem{
		ContestID: codeforces.Ptr(contestID),
		Index:     index,
		Name:      name,
		Type:      codeforces.ProblemProgramming,
		Tags:      tags,
	}
}

func mentions(problems []codeforces.Problem) []string {
	out := make([]string, 0, len(problems))
	for _, p := range problems {
		out = append(out, p.Mention())
	}
	return out
}

func sampleCatalog() []codeforces.Problem {
	return []codeforces.Problem{
		problem(1497, "A", "Meximization", "brute force", "greedy"),
		problem(1497, "B", "M-arrays", "constructive algorithms", "greedy", "math"),
		problem(4, "A", "Watermelon", "brute force", "math"),
		problem(158, "A", "Next Round", "implementation"),
		problem(1520, "C1", "Guess the Maximum", "implementation"),
	}
}

func TestSearchExactMentionFirst(t *testing.T) {
	idx := newProblemIndex(sampleCatalog())

	got := idx.search("4a", 10)
	require.NotEmpty(t, got)
	assert.Equal(t, "4A", got[0].Mention())

	got = idx.search("1520c1", 1)
	assert.Equal(t, []string{"1520C1"}, mentions(got))
}

func TestSearchFuzzyByNameAndTags(t *testing.T) {
	idx := newProblemIndex(sampleCatalog())

	got := idx.search("watermelon", 10)
	require.NotEmpty(t, got)
	assert.Equal(t, "4A", got[0].Mention())

	got = idx.search("implementation", 10)
	assert.ElementsMatch(t, []string{"158A", "1520C1"}, mentions(got))
}

func TestSearchCapsAndEmpty(t *testing.T) {
	idx := newProblemIndex(sampleCatalog())

	assert.Len(t, idx.search("a", 2), 2)
	assert.Empty(t, idx.search("", 10))
	assert.Empty(t, idx.search("   ", 10))
	assert.Empty(t, idx.search("meximization", 0))
	assert.Empty(t, idx.search("qqqqqqqq", 10))
}

func TestSearchDoesNotRepeatExactMatch(t *testing.T) {
	idx := newProblemIndex([]codeforces.Problem{
		problem(1, "A", "1A fan club"),
		problem(2, "B", "other"),
	})

	got := idx.search("1A", 10)
	assert.Equal(t, []string{"1A"}, mentions(got))
}

func TestCatalogReloadsAfterTTLAndInvalidate(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := newCatalog(time.Minute)
	c.now = func() time.Time { return now }

	loads := 0
	load := func(context.Context) ([]codeforces.Problem, error) {
		loads++
		return sampleCatalog(), nil
	}

	ctx := context.Background()
	_, err := c.get(ctx, load)
	require.NoError(t, err)
	_, err = c.get(ctx, load)
	require.NoError(t, err)
	assert.Equal(t, 1, loads)

	now = now.Add(2 * time.Minute)
	_, err = c.get(ctx, load)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)

	c.invalidate()
	_, err = c.get(ctx, load)
	require.NoError(t, err)
	assert.Equal(t, 3, loads)
}

func TestCatalogLoadError(t *testing.T) {
	c := newCatalog(time.Minute)
	boom := errors.New("boom")

	_, err := c.get(context.Background(), func(context.Context) ([]codeforces.Problem, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
}

func TestCatalogDropsLoadOverlappingInvalidate(t *testing.T) {
	c := newCatalog(time.Hour)
	ctx := context.Background()

	loads := 0
	load := func(context.Context) ([]codeforces.Problem, error) {
		loads++
		if loads == 1 {
			// an ingestion finishes while the first read is in flight
			c.invalidate()
			return nil, nil
		}
		return sampleCatalog(), nil
	}

	idx, err := c.get(ctx, load)
	require.NoError(t, err)
	assert.Empty(t, idx.search("watermelon", 10))

	idx, err = c.get(ctx, load)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
	assert.Equal(t, []string{"4A"}, mentions(idx.search("4a", 1)))
}
