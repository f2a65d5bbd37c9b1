package vote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		got, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
		assert.NotEmpty(t, got.Emoji())
	}

	_, err := ParseCategory("meh")
	require.ErrorIs(t, err, ErrUnknownCategory)
	_, err = ParseCategory("")
	require.ErrorIs(t, err, ErrUnknownCategory)
}

func TestEmoji(t *testing.T) {
	assert.Equal(t, "👍", Good.Emoji())
	assert.Equal(t, "👎", Bad.Emoji())
	assert.Equal(t, "😴", Easy.Emoji())
	assert.Equal(t, "🔥", Hard.Emoji())
	assert.Empty(t, Category("meh").Emoji())
}

func TestVotersToggleIsInvolutive(t *testing.T) {
	v := NewVoters(1, 2)

	assert.True(t, v.Toggle(3))
	assert.Equal(t, 3, v.Len())
	assert.False(t, v.Toggle(3))
	assert.Equal(t, 2, v.Len())

	assert.False(t, v.Toggle(1))
	assert.True(t, v.Toggle(1))
	assert.Equal(t, NewVoters(1, 2), v)
}

func TestVotersNoDuplicates(t *testing.T) {
	v := NewVoters(5, 5, 5)
	v.Add(5)
	assert.Equal(t, 1, v.Len())
	v.remove(42)
	assert.Equal(t, 1, v.Len())
}

func TestCountsReportsEveryCategory(t *testing.T) {
	counts := Counts(map[Category]Voters{Hard: NewVoters(1, 2)})

	require.Len(t, counts, len(Categories))
	assert.Equal(t, 0, counts[Good])
	assert.Equal(t, 0, counts[Bad])
	assert.Equal(t, 0, counts[Easy])
	assert.Equal(t, 2, counts[Hard])

	counts = Counts(nil)
	for _, c := range Categories {
		assert.Equal(t, 0, counts[c])
	}
}
