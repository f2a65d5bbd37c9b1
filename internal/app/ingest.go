package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"telegram-codeforces-bot/internal/codeforces"
)

type problemSource interface {
	ProblemsetProblems(ctx context.Context, p codeforces.ProblemsetParams) (codeforces.Problemset, error)
}

type problemSink interface {
	IngestProblems(ctx context.Context, problems []codeforces.Problem, forceReplace bool) (int, error)
}

// Ingest fetches the full problemset and stores the problems that are new.
// With force the stored problems are replaced first; votes are kept.
func (rt *Runtime) Ingest(ctx context.Context, force bool) (int, error) {
	return refreshProblemset(ctx, rt.archive, rt.store, force, rt.logger)
}

func refreshProblemset(ctx context.Context, src problemSource, dst problemSink, force bool, logger *zap.SugaredLogger) (int, error) {
	set, err := src.ProblemsetProblems(ctx, codeforces.ProblemsetParams{})
	if err != nil {
		return 0, fmt.Errorf("fetch problemset: %w", err)
	}
	inserted, err := dst.IngestProblems(ctx, set.Problems, force)
	if err != nil {
		return 0, fmt.Errorf("ingest problemset: %w", err)
	}
	logger.Infow("problemset ingested", "fetched", len(set.Problems), "inserted", inserted, "force", force)
	return inserted, nil
}
