package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DSchneidersAH/ai-fit-tool/internal/database"
	"github.com/DSchneidersAH/ai-fit-tool/internal/fit"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := database.NewDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewService(database.NewRepository(db), time.Minute)
}

func rankedResults(t *testing.T, scores map[string]float64) []fit.FitResult {
	t.Helper()

	results := make([]fit.FitResult, 0, len(scores))
	for name, score := range scores {
		results = append(results, fit.FitResult{Profile: name, Score: score})
	}
	return fit.Rank(results)
}

func TestSaveAndRecent(t *testing.T) {
	svc := newTestService(t)

	task := fit.Vector{5, 5, 5, 5, 5, 5, 5, 5, 5, 5}
	results := rankedResults(t, map[string]float64{
		"Human":  72.2,
		"System": 41.1,
		"AI":     88.9,
	})

	err := svc.SaveAssessment(task, results, "127.0.0.1", "test-agent", true)
	require.NoError(t, err)

	recent, err := svc.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent.Entries, 1)

	entry := recent.Entries[0]
	assert.Equal(t, task, entry.TaskVector)
	assert.Equal(t, "AI", entry.BestFit)
	assert.InDelta(t, 88.9, entry.BestScore, 1e-9)
	assert.InDelta(t, 72.2, entry.Scores["Human"], 1e-9)
	assert.NotEmpty(t, entry.ID)
}

func TestSaveDeduplicatesIdenticalTasks(t *testing.T) {
	svc := newTestService(t)

	task := fit.Vector{1, 2, 3}
	results := rankedResults(t, map[string]float64{"Human": 60, "AI": 40})

	require.NoError(t, svc.SaveAssessment(task, results, "10.0.0.1", "a", true))
	require.NoError(t, svc.SaveAssessment(task, results, "10.0.0.2", "b", true))

	recent, err := svc.Recent(10)
	require.NoError(t, err)
	assert.Len(t, recent.Entries, 1)
}

func TestRecentExcludesPrivateAssessments(t *testing.T) {
	svc := newTestService(t)

	results := rankedResults(t, map[string]float64{"Human": 50, "AI": 70})

	require.NoError(t, svc.SaveAssessment(fit.Vector{1, 1, 1}, results, "127.0.0.1", "a", false))
	require.NoError(t, svc.SaveAssessment(fit.Vector{9, 9, 9}, results, "127.0.0.1", "a", true))

	recent, err := svc.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent.Entries, 1)
	assert.Equal(t, fit.Vector{9, 9, 9}, recent.Entries[0].TaskVector)
}

func TestSummaryGroupsByBestFit(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.SaveAssessment(fit.Vector{1, 1, 1},
		rankedResults(t, map[string]float64{"Human": 90, "AI": 10}), "127.0.0.1", "a", true))
	require.NoError(t, svc.SaveAssessment(fit.Vector{2, 2, 2},
		rankedResults(t, map[string]float64{"Human": 80, "AI": 20}), "127.0.0.1", "a", true))
	require.NoError(t, svc.SaveAssessment(fit.Vector{9, 9, 9},
		rankedResults(t, map[string]float64{"Human": 10, "AI": 95}), "127.0.0.1", "a", false))

	stats, err := svc.Summary()
	require.NoError(t, err)

	// Summary covers all stored rows, public or not
	assert.EqualValues(t, 3, stats["total_assessments"])

	byBestFit, ok := stats["by_best_fit"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, byBestFit, "Human")
	assert.Contains(t, byBestFit, "AI")
}

func TestPurgeOlderThan(t *testing.T) {
	svc := newTestService(t)

	results := rankedResults(t, map[string]float64{"Human": 50, "AI": 70})
	require.NoError(t, svc.SaveAssessment(fit.Vector{3, 3, 3}, results, "127.0.0.1", "a", true))

	// Zero retention treats everything already stored as expired
	purged, err := svc.PurgeOlderThan(0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)

	recent, err := svc.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, recent.Entries)
}
