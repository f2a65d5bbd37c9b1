// Package cache keeps short-lived copies of per-handle solved sets in Redis
// so repeated /gimme calls do not refetch a user's whole submission history.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "tgcfbot:solved:"

	// sentinel marks a set written by Put. It tells an empty solved set
	// apart from a missing key and is never a valid problem mention.
	sentinel = "."
)

// SolvedCache stores each handle's solved mentions as a native Redis set.
type SolvedCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSolvedCache(rdb *redis.Client, ttl time.Duration) *SolvedCache {
	return &SolvedCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached solved mentions of handle. ok is false on a miss.
func (c *SolvedCache) Get(ctx context.Context, handle string) (map[string]struct{}, bool, error) {
	raw, err := c.rdb.SMembers(ctx, key(handle)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("get solved set: %w", err)
	}
	solved, ok := fromMembers(raw)
	return solved, ok, nil
}

// Put replaces the cached set of handle and restarts its TTL.
func (c *SolvedCache) Put(ctx context.Context, handle string, solved map[string]struct{}) error {
	k := key(handle)
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, k)
		pipe.SAdd(ctx, k, members(solved, true)...)
		pipe.Expire(ctx, k, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("put solved set: %w", err)
	}
	return nil
}

// Add merges mentions into the cached set of handle without touching its
// TTL. A set that expired in the meantime comes back without the sentinel
// and keeps reading as a miss until the next Put.
func (c *SolvedCache) Add(ctx context.Context, handle string, solved map[string]struct{}) error {
	if len(solved) == 0 {
		return nil
	}
	k := key(handle)
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, k, members(solved, false)...)
		pipe.ExpireNX(ctx, k, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("add to solved set: %w", err)
	}
	return nil
}

func members(solved map[string]struct{}, withSentinel bool) []any {
	out := make([]any, 0, len(solved)+1)
	if withSentinel {
		out = append(out, sentinel)
	}
	for m := range solved {
		out = append(out, m)
	}
	return out
}

func fromMembers(raw []string) (map[string]struct{}, bool) {
	solved := make(map[string]struct{}, len(raw))
	complete := false
	for _, m := range raw {
		if m == sentinel {
			complete = true
			continue
		}
		solved[m] = struct{}{}
	}
	if !complete {
		return nil, false
	}
	return solved, true
}

// Handles are case-insensitive on Codeforces.
func key(handle string) string {
	return keyPrefix + strings.ToLower(handle)
}
