package main

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DSchneidersAH/ai-fit-tool/internal/types"
)

// TestAssessLatency exercises the full assess path end to end and checks
// that scoring plus chart construction stays well under the request budget.
func TestAssessLatency(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping performance test in short mode")
	}

	r := setupRouter(t)

	body := types.AssessRequest{
		Values: []int{9, 4, 3, 2, 1, 5, 8, 7, 7, 1},
	}

	// Warm up: first request pays for prepared statement and cache setup
	for i := 0; i < 5; i++ {
		w := postAssess(t, r, body)
		require.Equal(t, http.StatusOK, w.Code)
	}

	const iterations = 100
	start := time.Now()
	for i := 0; i < iterations; i++ {
		w := postAssess(t, r, body)
		require.Equal(t, http.StatusOK, w.Code)
	}
	avg := time.Since(start) / iterations

	t.Logf("average assess latency: %v", avg)
	assert.Less(t, avg, 50*time.Millisecond, "assess requests should be fast")
}
