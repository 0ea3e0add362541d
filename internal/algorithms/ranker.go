package algorithms

import "sort"

// Candidate is one scored (team, problem) pair entering ranking. RowOrder
// is the problem's position in the source upload and serves as the
// deterministic tiebreak for equal scores.
type Candidate struct {
	ProblemID string
	RowOrder  int
	Score     float64
	Evidence  Evidence
}

// Rank filters candidates below minScore, sorts the rest by score
// descending with original upload order breaking ties, and truncates to
// limit. An empty result is valid, not an error. Ranks over the returned
// slice are the indices + 1.
func Rank(candidates []Candidate, minScore float64, limit int) []Candidate {
	qualified := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Score >= minScore {
			qualified = append(qualified, c)
		}
	}

	// Sort by score descending. For equal scores the earlier source row
	// wins, never an identifier or hash.
	sort.SliceStable(qualified, func(i, j int) bool {
		if qualified[i].Score != qualified[j].Score {
			return qualified[i].Score > qualified[j].Score
		}
		return qualified[i].RowOrder < qualified[j].RowOrder
	})

	if limit > 0 && len(qualified) > limit {
		qualified = qualified[:limit]
	}

	return qualified
}
