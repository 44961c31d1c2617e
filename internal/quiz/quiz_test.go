package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVibeFromScoreBoundaries(t *testing.T) {
	tests := []struct {
		score int
		vibe  string
	}{
		{50, "Absolutely Radiant"},
		{35, "Absolutely Radiant"},
		{34, "Super Positive"},
		{25, "Super Positive"},
		{24, "Pretty Good"},
		{15, "Pretty Good"},
		{14, "Decent"},
		{5, "Decent"},
		{4, "Neutral"},
		{0, "Neutral"},
		{-5, "Neutral"},
		{-6, "Meh"},
		{-15, "Meh"},
		{-16, "Not Great"},
		{-25, "Not Great"},
		{-26, "Pretty Low"},
		{-35, "Pretty Low"},
		{-36, "Rock Bottom"},
		{-50, "Rock Bottom"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.vibe, VibeFromScore(tt.score).Vibe, "score %d", tt.score)
	}
}

// bandIndex returns the position of a label in best-to-worst order.
func bandIndex(t *testing.T, label string) int {
	t.Helper()
	for i, l := range Labels() {
		if l == label {
			return i
		}
	}
	t.Fatalf("unknown vibe label %q", label)
	return -1
}

func TestVibeFromScoreTotalAndMonotonic(t *testing.T) {
	prev := bandIndex(t, VibeFromScore(-60).Vibe)
	for s := -59; s <= 60; s++ {
		v := VibeFromScore(s)
		require.NotEmpty(t, v.Vibe, "score %d has no band", s)
		require.NotEmpty(t, v.Emoji)
		require.NotEmpty(t, v.Color)

		idx := bandIndex(t, v.Vibe)
		assert.LessOrEqual(t, idx, prev, "band worsened as score rose at %d", s)
		prev = idx
	}
}

func TestQuestionsShape(t *testing.T) {
	require.Len(t, Questions, 10)

	minTotal, maxTotal := 0, 0
	for _, q := range Questions {
		require.Len(t, q.Options, 5, "question %d", q.ID)
		lo, hi := q.Options[0].Points, q.Options[0].Points
		for _, o := range q.Options {
			if o.Points < lo {
				lo = o.Points
			}
			if o.Points > hi {
				hi = o.Points
			}
		}
		minTotal += lo
		maxTotal += hi
	}

	// Extremes must reach the outermost bands.
	assert.Equal(t, "Absolutely Radiant", VibeFromScore(maxTotal).Vibe)
	assert.Equal(t, "Rock Bottom", VibeFromScore(minTotal).Vibe)
}
