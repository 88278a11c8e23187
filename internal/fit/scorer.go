package fit

import "math"

// ScoringMode selects the fit-score formula.
type ScoringMode string

const (
	// ModeNormalizedPercent maps total per-dimension distance into [0,100],
	// scale-invariant. The canonical mode.
	ModeNormalizedPercent ScoringMode = "normalized_percent"
	// ModeLinearUnbounded is the simpler legacy variant: max_diff - D, no
	// normalization, no clamp.
	ModeLinearUnbounded ScoringMode = "linear_unbounded"
)

// Valid reports whether the mode is one of the known formulas.
func (m ScoringMode) Valid() bool {
	return m == ModeNormalizedPercent || m == ModeLinearUnbounded
}

// FitResult is the similarity of a task vector to one profile. Recomputed in
// full on every task change, never persisted as live state.
type FitResult struct {
	Profile string  `json:"profile"`
	Score   float64 `json:"score"`
	Rank    int     `json:"rank,omitempty"`
}

// Scorer computes fit scores between vectors expressed on a single scale.
type Scorer struct {
	scale Scale
	mode  ScoringMode
}

// NewScorer creates a scorer. An empty mode falls back to the canonical
// normalized-percent formula.
func NewScorer(scale Scale, mode ScoringMode) *Scorer {
	if mode == "" {
		mode = ModeNormalizedPercent
	}
	return &Scorer{scale: scale, mode: mode}
}

// FitScore returns the similarity between task and profile. In the
// normalized mode the score is 100 iff the vectors match exactly and 0 iff
// every dimension sits at opposite extremes; a collapsed scale or empty
// vectors score 100 by convention. The score is symmetric in its arguments
// and non-increasing in total distance.
func (s *Scorer) FitScore(task, profile Vector) (float64, error) {
	if len(task) != len(profile) {
		return 0, &ShapeError{Want: len(profile), Got: len(task)}
	}

	totalDiff := 0
	for i := range task {
		d := task[i] - profile[i]
		if d < 0 {
			d = -d
		}
		totalDiff += d
	}
	maxDiff := s.scale.Width() * len(task)

	if s.mode == ModeLinearUnbounded {
		return float64(maxDiff - totalDiff), nil
	}

	if maxDiff == 0 {
		return 100.0, nil
	}
	score := 100.0 - float64(totalDiff)/float64(maxDiff)*100.0
	// D never exceeds maxDiff; the clamp only guards float rounding.
	return math.Max(0.0, score), nil
}

// ScoreAll scores the task against every registry profile, in registry
// order. The task must already be validated against the registry shape.
func (s *Scorer) ScoreAll(task Vector, reg *Registry) ([]FitResult, error) {
	if err := task.Validate(s.scale, reg.NumDimensions()); err != nil {
		return nil, err
	}

	results := make([]FitResult, 0, len(reg.profiles))
	for _, p := range reg.profiles {
		score, err := s.FitScore(task, p.Vector)
		if err != nil {
			return nil, err
		}
		results = append(results, FitResult{Profile: p.Name, Score: score})
	}
	return results, nil
}
