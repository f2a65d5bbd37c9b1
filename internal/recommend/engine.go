// Package recommend turns a tag query and a user's history into a sampling
// filter and asks storage for one matching problem.
package recommend

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"telegram-codeforces-bot/internal/codeforces"
	"telegram-codeforces-bot/internal/storage"
)

const (
	// ArchiveContestThreshold separates regular contests from gym and other
	// archival contests, whose solves are not counted.
	ArchiveContestThreshold = 100000

	DefaultMinRating = 0
	DefaultMaxRating = 1800
	bandBelow        = 100
	bandAbove        = 300

	// recentSubmissions is how many of the latest submissions are fetched to
	// top up a cached solved set.
	recentSubmissions = 100
)

type Store interface {
	GetProfile(ctx context.Context, chatUserID int64) (codeforces.User, bool, error)
	SampleProblem(ctx context.Context, f storage.ProblemFilter) (codeforces.Problem, bool, error)
}

type Archive interface {
	UserStatus(ctx context.Context, handle string, p codeforces.StatusParams) ([]codeforces.Submission, error)
}

type SolvedCache interface {
	Get(ctx context.Context, handle string) (map[string]struct{}, bool, error)
	Put(ctx context.Context, handle string, solved map[string]struct{}) error
	Add(ctx context.Context, handle string, solved map[string]struct{}) error
}

type Engine struct {
	store   Store
	archive Archive
	solved  SolvedCache
	logger  *zap.SugaredLogger
}

// NewEngine builds an Engine. solved may be nil.
func NewEngine(store Store, archive Archive, solved SolvedCache, logger *zap.SugaredLogger) *Engine {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Engine{store: store, archive: archive, solved: solved, logger: logger}
}

type Result struct {
	Problem codeforces.Problem
	Found   bool
	Filter  storage.ProblemFilter
}

// RatingBand is [rating-100, rating+300] for rated users and the default
// band otherwise.
func RatingBand(rating *int) (int, int) {
	if rating == nil {
		return DefaultMinRating, DefaultMaxRating
	}
	return *rating - bandBelow, *rating + bandAbove
}

// SolvedMentions collects the mentions with an accepted submission, ignoring
// archival contests.
func SolvedMentions(subs []codeforces.Submission) map[string]struct{} {
	out := make(map[string]struct{})
	for _, sub := range subs {
		if !sub.Accepted() {
			continue
		}
		cid := sub.Problem.ContestID
		if cid == nil || *cid >= ArchiveContestThreshold {
			continue
		}
		out[sub.Problem.Mention()] = struct{}{}
	}
	return out
}

func (e *Engine) BuildFilter(ctx context.Context, chatUserID int64, query []string) (storage.ProblemFilter, error) {
	f := storage.ProblemFilter{
		Tags:      ExpandTags(query),
		MinRating: DefaultMinRating,
		MaxRating: DefaultMaxRating,
	}

	profile, ok, err := e.store.GetProfile(ctx, chatUserID)
	if err != nil {
		return storage.ProblemFilter{}, fmt.Errorf("load profile: %w", err)
	}
	if !ok {
		return f, nil
	}

	solved, err := e.solvedSet(ctx, profile.Handle)
	if err != nil {
		return storage.ProblemFilter{}, err
	}
	f.Exclude = solved
	f.MinRating, f.MaxRating = RatingBand(profile.Rating)
	return f, nil
}

func (e *Engine) Recommend(ctx context.Context, chatUserID int64, query []string) (Result, error) {
	f, err := e.BuildFilter(ctx, chatUserID, query)
	if err != nil {
		return Result{}, err
	}

	p, ok, err := e.store.SampleProblem(ctx, f)
	if err != nil {
		return Result{}, fmt.Errorf("sample problem: %w", err)
	}
	if !ok {
		e.logger.Infow("no problem matches", "chat_user_id", chatUserID, "filter", f.String())
	}
	return Result{Problem: p, Found: ok, Filter: f}, nil
}

func (e *Engine) solvedSet(ctx context.Context, handle string) (map[string]struct{}, error) {
	if e.solved != nil {
		cached, hit, err := e.solved.Get(ctx, handle)
		if err != nil {
			e.logger.Warnw("solved cache read failed", "handle", handle, "error", err)
		} else if hit {
			return e.topUp(ctx, handle, cached)
		}
	}

	subs, err := e.archive.UserStatus(ctx, handle, codeforces.StatusParams{})
	if err != nil {
		return nil, fmt.Errorf("fetch submissions of %s: %w", handle, err)
	}
	solved := SolvedMentions(subs)

	if e.solved != nil {
		if err := e.solved.Put(ctx, handle, solved); err != nil {
			e.logger.Warnw("solved cache write failed", "handle", handle, "error", err)
		}
	}
	return solved, nil
}

// topUp merges the user's latest accepted submissions into a cached set so
// problems solved since the cache was filled are excluded too.
func (e *Engine) topUp(ctx context.Context, handle string, cached map[string]struct{}) (map[string]struct{}, error) {
	recent, err := e.archive.UserStatus(ctx, handle, codeforces.StatusParams{
		From:  codeforces.Ptr(1),
		Count: codeforces.Ptr(recentSubmissions),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch recent submissions of %s: %w", handle, err)
	}

	fresh := make(map[string]struct{})
	for m := range SolvedMentions(recent) {
		if _, ok := cached[m]; !ok {
			fresh[m] = struct{}{}
		}
	}
	if len(fresh) == 0 {
		return cached, nil
	}

	solved := make(map[string]struct{}, len(cached)+len(fresh))
	for m := range cached {
		solved[m] = struct{}{}
	}
	for m := range fresh {
		solved[m] = struct{}{}
	}
	if err := e.solved.Add(ctx, handle, fresh); err != nil {
		e.logger.Warnw("solved cache write failed", "handle", handle, "error", err)
	}
	return solved, nil
}
