package storage

import (
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-codeforces-bot/internal/codec"
	"telegram-codeforces-bot/internal/vote"
)

func TestPlanToggleCreatesMissingScores(t *testing.T) {
	w, err := planToggle(nil, false, vote.Easy, 9)
	require.NoError(t, err)

	assert.True(t, w.cast)
	assert.Nil(t, w.update)
	assert.Equal(t, map[string]any{
		"good": []any{},
		"bad":  []any{},
		"easy": []any{int64(9)},
		"hard": []any{},
	}, w.create)
}

func TestPlanToggleIsInvolutive(t *testing.T) {
	data := emptyScores()

	w, err := planToggle(data, true, vote.Good, 5)
	require.NoError(t, err)
	assert.True(t, w.cast)
	assert.Nil(t, w.create)
	assert.Equal(t, []firestore.Update{{Path: "good", Value: firestore.ArrayUnion(int64(5))}}, w.update)

	// state after the union above is applied
	data["good"] = []any{int64(5)}

	w, err = planToggle(data, true, vote.Good, 5)
	require.NoError(t, err)
	assert.False(t, w.cast)
	assert.Equal(t, []firestore.Update{{Path: "good", Value: firestore.ArrayRemove(int64(5))}}, w.update)
}

func TestPlanToggleOnlyTouchesItsCategory(t *testing.T) {
	data := map[string]any{"good": []any{int64(5)}, "bad": []any{}}

	w, err := planToggle(data, true, vote.Hard, 5)
	require.NoError(t, err)
	assert.True(t, w.cast)
	require.Len(t, w.update, 1)
	assert.Equal(t, "hard", w.update[0].Path)
}

func TestPlanToggleRejectsCorruptVoters(t *testing.T) {
	_, err := planToggle(map[string]any{"good": "nope"}, true, vote.Good, 5)
	require.ErrorIs(t, err, codec.ErrSchemaMismatch)

	_, err = planToggle(map[string]any{"good": []any{"x"}}, true, vote.Good, 5)
	require.ErrorIs(t, err, codec.ErrSchemaMismatch)
}

func TestScoreSetsCountMissingCategoriesAsEmpty(t *testing.T) {
	sets, err := scoreSets(map[string]any{"bad": []any{int64(1), int64(2)}})
	require.NoError(t, err)

	counts := vote.Counts(sets)
	assert.Equal(t, map[vote.Category]int{vote.Good: 0, vote.Bad: 2, vote.Easy: 0, vote.Hard: 0}, counts)
}
