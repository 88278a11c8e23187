package fit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitScoreNormalized(t *testing.T) {
	scorer := NewScorer(CanonicalScale, ModeNormalizedPercent)

	tests := []struct {
		name     string
		task     Vector
		profile  Vector
		expected float64
	}{
		{
			name:     "identical vectors score 100",
			task:     Vector{5, 5, 5, 5},
			profile:  Vector{5, 5, 5, 5},
			expected: 100.0,
		},
		{
			name:     "opposite extremes score 0",
			task:     Vector{1, 1, 1},
			profile:  Vector{10, 10, 10},
			expected: 0.0,
		},
		{
			name:     "midpoint task against authored Human profile",
			task:     Vector{5, 5, 5, 5, 5, 5, 5, 5, 5, 5},
			profile:  Vector{9, 4, 3, 2, 1, 5, 8, 7, 7, 1},
			expected: 100.0 - 25.0/90.0*100.0, // D=25, max_diff=90 ≈ 72.2
		},
		{
			name:     "single dimension one step off",
			task:     Vector{5},
			profile:  Vector{6},
			expected: 100.0 - 1.0/9.0*100.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := scorer.FitScore(tt.task, tt.profile)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, score, 1e-9)
		})
	}
}

func TestFitScoreLinearUnbounded(t *testing.T) {
	scorer := NewScorer(CanonicalScale, ModeLinearUnbounded)

	tests := []struct {
		name     string
		task     Vector
		profile  Vector
		expected float64
	}{
		{
			name:     "identical vectors score max_diff",
			task:     Vector{5, 5, 5},
			profile:  Vector{5, 5, 5},
			expected: 27.0, // 9*3 - 0
		},
		{
			name:     "opposite extremes score 0",
			task:     Vector{1, 1},
			profile:  Vector{10, 10},
			expected: 0.0,
		},
		{
			name:     "midpoint task against Human profile",
			task:     Vector{5, 5, 5, 5, 5, 5, 5, 5, 5, 5},
			profile:  Vector{9, 4, 3, 2, 1, 5, 8, 7, 7, 1},
			expected: 65.0, // 90 - 25
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := scorer.FitScore(tt.task, tt.profile)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, score, 1e-9)
		})
	}
}

func TestFitScoreShapeError(t *testing.T) {
	scorer := NewScorer(CanonicalScale, ModeNormalizedPercent)

	_, err := scorer.FitScore(Vector{5, 5, 5}, Vector{5, 5})
	require.Error(t, err)

	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, 2, shapeErr.Want)
	assert.Equal(t, 3, shapeErr.Got)
}

func TestFitScoreSymmetric(t *testing.T) {
	scorer := NewScorer(CanonicalScale, ModeNormalizedPercent)
	a := Vector{1, 4, 7, 10, 3}
	b := Vector{10, 2, 7, 1, 8}

	ab, err := scorer.FitScore(a, b)
	require.NoError(t, err)
	ba, err := scorer.FitScore(b, a)
	require.NoError(t, err)

	assert.Equal(t, ab, ba)
}

func TestFitScoreMonotoneInDistance(t *testing.T) {
	scorer := NewScorer(CanonicalScale, ModeNormalizedPercent)
	profile := Vector{5, 5, 5, 5}

	// Walk one component away from the profile; the score must never rise.
	prev := 101.0
	for v := 5; v <= 10; v++ {
		task := Vector{v, 5, 5, 5}
		score, err := scorer.FitScore(task, profile)
		require.NoError(t, err)
		assert.LessOrEqual(t, score, prev, "score rose while moving away from the profile at %d", v)
		prev = score
	}
}

func TestFitScoreCollapsedScale(t *testing.T) {
	// A zero-width scale is a defined special case, not a fault: every
	// comparison is a trivially perfect match.
	scorer := NewScorer(Scale{Min: 5, Max: 5}, ModeNormalizedPercent)

	score, err := scorer.FitScore(Vector{5, 5, 5}, Vector{5, 5, 5})
	require.NoError(t, err)
	assert.Equal(t, 100.0, score)

	score, err = scorer.FitScore(Vector{}, Vector{})
	require.NoError(t, err)
	assert.Equal(t, 100.0, score)
}

func TestScoreAll(t *testing.T) {
	reg, err := NewRegistry(DefaultDimensions(), CanonicalScale, DefaultRawProfiles())
	require.NoError(t, err)

	scorer := NewScorer(CanonicalScale, ModeNormalizedPercent)
	task := DefaultTask(CanonicalScale, reg.NumDimensions())

	results, err := scorer.ScoreAll(task, reg)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Registry order is preserved before ranking.
	assert.Equal(t, "Human", results[0].Profile)
	assert.Equal(t, "System", results[1].Profile)
	assert.Equal(t, "AI", results[2].Profile)

	assert.InDelta(t, 100.0-25.0/90.0*100.0, results[0].Score, 1e-9)

	for _, r := range results {
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 100.0)
	}
}

func TestScoreAllRejectsBadTask(t *testing.T) {
	reg, err := NewRegistry(DefaultDimensions(), CanonicalScale, DefaultRawProfiles())
	require.NoError(t, err)

	scorer := NewScorer(CanonicalScale, ModeNormalizedPercent)

	t.Run("wrong length", func(t *testing.T) {
		_, err := scorer.ScoreAll(Vector{5, 5}, reg)
		var shapeErr *ShapeError
		assert.ErrorAs(t, err, &shapeErr)
	})

	t.Run("out of range component", func(t *testing.T) {
		task := DefaultTask(CanonicalScale, reg.NumDimensions())
		task[3] = 11
		_, err := scorer.ScoreAll(task, reg)
		var rangeErr *RangeError
		assert.ErrorAs(t, err, &rangeErr)
	})
}
