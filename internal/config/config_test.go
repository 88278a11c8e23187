package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DSchneidersAH/ai-fit-tool/internal/fit"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, fit.CanonicalScale, cfg.Scale)
	assert.Equal(t, fit.ModeNormalizedPercent, cfg.Scoring.Mode)
	assert.Len(t, cfg.Dimensions, 10)
	assert.Len(t, cfg.Profiles, 3)
	assert.True(t, cfg.Chart.Clockwise)

	reg, err := cfg.BuildRegistry()
	require.NoError(t, err)
	assert.Equal(t, 10, reg.NumDimensions())
}

func TestLoadFromFile(t *testing.T) {
	yaml := `
server:
  port: "9090"
scale:
  min: 1
  max: 5
scoring:
  mode: linear_unbounded
dimensions:
  - name: Pace
    question: How fast?
    low: Slow
    high: Fast
  - name: Cost
    question: How costly?
    low: Cheap
    high: Expensive
profiles:
  - name: Human
    scores: [1, 5]
    scale: {min: 1, max: 5}
  - name: AI
    scores: [5, 1]
    scale: {min: 1, max: 5}
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, fit.Scale{Min: 1, Max: 5}, cfg.Scale)
	assert.Equal(t, fit.ModeLinearUnbounded, cfg.Scoring.Mode)
	assert.Len(t, cfg.Dimensions, 2)

	reg, err := cfg.BuildRegistry()
	require.NoError(t, err)
	p, ok := reg.Profile("AI")
	require.True(t, ok)
	assert.Equal(t, fit.Vector{5, 1}, p.Vector)
}

func TestLoadRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "unknown scoring mode",
			yaml: "scoring:\n  mode: exponential\n",
		},
		{
			name: "profile shape mismatch",
			yaml: "profiles:\n  - name: Short\n    scores: [1, 2]\n    scale: {min: 1, max: 10}\n",
		},
		{
			name: "authored score out of range",
			yaml: "profiles:\n  - name: Bad\n    scores: [11, 5, 5, 5, 5, 5, 5, 5, 5, 5]\n    scale: {min: 1, max: 10}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("SCORING_MODE", "linear_unbounded")
	t.Setenv("IP_LIMIT_PER_MIN", "120")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, fit.ModeLinearUnbounded, cfg.Scoring.Mode)
	assert.Equal(t, 120, cfg.RateLimit.IPLimitPerMin)
}
