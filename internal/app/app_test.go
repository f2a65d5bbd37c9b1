package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"telegram-codeforces-bot/internal/codeforces"
)

type fakeSource struct {
	set codeforces.Problemset
	err error
}

func (f fakeSource) ProblemsetProblems(context.Context, codeforces.ProblemsetParams) (codeforces.Problemset, error) {
	return f.set, f.err
}

type fakeSink struct {
	got   []codeforces.Problem
	force bool
	err   error
}

func (f *fakeSink) IngestProblems(_ context.Context, problems []codeforces.Problem, force bool) (int, error) {
	f.got = problems
	f.force = force
	return len(problems), f.err
}

func TestRefreshProblemset(t *testing.T) {
	problems := []codeforces.Problem{
		{ContestID: codeforces.Ptr(1), Index: "A", Name: "One"},
		{ContestID: codeforces.Ptr(1), Index: "B", Name: "Two"},
	}
	sink := &fakeSink{}

	n, err := refreshProblemset(context.Background(), fakeSource{set: codeforces.Problemset{Problems: problems}}, sink, true, zap.NewNop().Sugar())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, sink.force)
	assert.Len(t, sink.got, 2)
}

func TestRefreshProblemsetErrors(t *testing.T) {
	apiErr := &codeforces.APIError{Method: "problemset.problems", Comment: "down"}
	_, err := refreshProblemset(context.Background(), fakeSource{err: apiErr}, &fakeSink{}, false, zap.NewNop().Sugar())
	require.ErrorIs(t, err, codeforces.ErrAPI)

	boom := errors.New("firestore down")
	_, err = refreshProblemset(context.Background(), fakeSource{}, &fakeSink{err: boom}, false, zap.NewNop().Sugar())
	require.ErrorIs(t, err, boom)
}

func TestNewLogger(t *testing.T) {
	for _, mode := range []string{"production", "development"} {
		logger, err := NewLogger(mode)
		require.NoError(t, err, mode)
		require.NotNil(t, logger)
	}
}
