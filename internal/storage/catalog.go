package storage

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sahilm/fuzzy"

	"telegram-codeforces-bot/internal/codeforces"
)

// problemIndex is an immutable search view over every stored problem.
type problemIndex struct {
	problems  []codeforces.Problem
	haystack  haystack
	byMention map[string]int
}

// haystack is the text each problem is fuzzy matched against.
type haystack []string

func (h haystack) String(i int) string { return h[i] }
func (h haystack) Len() int            { return len(h) }

func newProblemIndex(problems []codeforces.Problem) *problemIndex {
	idx := &problemIndex{
		problems:  problems,
		haystack:  make(haystack, len(problems)),
		byMention: make(map[string]int, len(problems)),
	}
	for i, p := range problems {
		idx.haystack[i] = p.Name + " " + strings.Join(p.Tags, " ")
		idx.byMention[strings.ToUpper(p.Mention())] = i
	}
	return idx
}

// search returns the problem whose mention equals text (ignoring case) first,
// then fuzzy matches over name and tags, best score first.
func (idx *problemIndex) search(text string, maxCount int) []codeforces.Problem {
	text = strings.TrimSpace(text)
	if text == "" || maxCount <= 0 {
		return nil
	}

	out := make([]codeforces.Problem, 0, maxCount)
	exact, hasExact := idx.byMention[strings.ToUpper(text)]
	if hasExact {
		out = append(out, idx.problems[exact])
	}

	for _, m := range fuzzy.FindFrom(text, idx.haystack) {
		if len(out) >= maxCount {
			break
		}
		if hasExact && m.Index == exact {
			continue
		}
		out = append(out, idx.problems[m.Index])
	}
	return out
}

type catalog struct {
	ttl time.Duration
	now func() time.Time

	mu         sync.RWMutex
	loadedAt   time.Time
	index      *problemIndex
	generation uint64
}

func newCatalog(ttl time.Duration) *catalog {
	return &catalog{ttl: ttl, now: time.Now}
}

// get returns the cached index, reloading it through load once it expired or
// was invalidated. A load that overlaps an invalidate is returned to its
// caller but not kept.
func (c *catalog) get(ctx context.Context, load func(context.Context) ([]codeforces.Problem, error)) (*problemIndex, error) {
	c.mu.RLock()
	if c.index != nil && c.now().Sub(c.loadedAt) < c.ttl {
		idx := c.index
		c.mu.RUnlock()
		return idx, nil
	}
	gen := c.generation
	c.mu.RUnlock()

	problems, err := load(ctx)
	if err != nil {
		return nil, err
	}
	idx := newProblemIndex(problems)

	c.mu.Lock()
	if c.generation == gen {
		c.index = idx
		c.loadedAt = c.now()
	}
	c.mu.Unlock()
	return idx, nil
}

func (c *catalog) invalidate() {
	c.mu.Lock()
	c.index = nil
	c.generation++
	c.mu.Unlock()
}
