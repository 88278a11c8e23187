package fit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank(t *testing.T) {
	results := []FitResult{
		{Profile: "Human", Score: 80},
		{Profile: "System", Score: 30},
		{Profile: "AI", Score: 55},
	}

	ranked := Rank(results)

	require.Len(t, ranked, 3)
	assert.Equal(t, FitResult{Profile: "Human", Score: 80, Rank: 1}, ranked[0])
	assert.Equal(t, FitResult{Profile: "AI", Score: 55, Rank: 2}, ranked[1])
	assert.Equal(t, FitResult{Profile: "System", Score: 30, Rank: 3}, ranked[2])

	// Input order untouched.
	assert.Equal(t, "System", results[1].Profile)
	assert.Zero(t, results[1].Rank)
}

func TestRankStableOnTies(t *testing.T) {
	results := []FitResult{
		{Profile: "Human", Score: 60},
		{Profile: "System", Score: 60},
		{Profile: "AI", Score: 60},
	}

	ranked := Rank(results)

	// Ties keep insertion order, so output is deterministic.
	assert.Equal(t, "Human", ranked[0].Profile)
	assert.Equal(t, "System", ranked[1].Profile)
	assert.Equal(t, "AI", ranked[2].Profile)
}

func TestBest(t *testing.T) {
	best, err := Best([]FitResult{
		{Profile: "System", Score: 30},
		{Profile: "Human", Score: 80},
	})
	require.NoError(t, err)

	assert.Equal(t, "Human", best.Profile)
	assert.Equal(t, 1, best.Rank)
}

func TestBestEmpty(t *testing.T) {
	_, err := Best(nil)
	require.Error(t, err)

	var shapeErr *ShapeError
	assert.ErrorAs(t, err, &shapeErr)
}
