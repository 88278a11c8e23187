package fit

import "sort"

// Rank returns the results sorted by score descending with 1-based ranks
// assigned. The sort is stable, so ties keep their original insertion order
// and the output is deterministic for a deterministic profile order.
func Rank(results []FitResult) []FitResult {
	ranked := make([]FitResult, len(results))
	copy(ranked, results)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// Best returns the top-ranked result. An empty result set is a wiring bug
// (zero profiles configured) and yields a ShapeError.
func Best(results []FitResult) (FitResult, error) {
	if len(results) == 0 {
		return FitResult{}, &ShapeError{Want: 1, Got: 0}
	}
	return Rank(results)[0], nil
}
