package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankFiltersBelowMinScore(t *testing.T) {
	candidates := []Candidate{
		{ProblemID: "a", RowOrder: 0, Score: 0.9},
		{ProblemID: "b", RowOrder: 1, Score: 0.4},
		{ProblemID: "c", RowOrder: 2, Score: 0.5},
	}

	ranked := Rank(candidates, 0.5, 10)
	assert.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].ProblemID)
	assert.Equal(t, "c", ranked[1].ProblemID)
}

func TestRankDescendingWithRowOrderTiebreak(t *testing.T) {
	candidates := []Candidate{
		{ProblemID: "late", RowOrder: 5, Score: 0.7},
		{ProblemID: "early", RowOrder: 1, Score: 0.7},
		{ProblemID: "top", RowOrder: 9, Score: 0.95},
	}

	ranked := Rank(candidates, 0.0, 10)
	assert.Equal(t, []string{"top", "early", "late"},
		[]string{ranked[0].ProblemID, ranked[1].ProblemID, ranked[2].ProblemID})
}

func TestRankLimitTruncates(t *testing.T) {
	candidates := []Candidate{
		{ProblemID: "a", Score: 0.9},
		{ProblemID: "b", Score: 0.8},
		{ProblemID: "c", Score: 0.7},
	}

	ranked := Rank(candidates, 0.0, 2)
	assert.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].ProblemID)
	assert.Equal(t, "b", ranked[1].ProblemID)
}

func TestRankEmptyInput(t *testing.T) {
	ranked := Rank(nil, 0.5, 10)
	assert.Empty(t, ranked)
}

func TestRankDoesNotMutateInput(t *testing.T) {
	candidates := []Candidate{
		{ProblemID: "b", RowOrder: 1, Score: 0.6},
		{ProblemID: "a", RowOrder: 0, Score: 0.9},
	}

	_ = Rank(candidates, 0.0, 10)
	assert.Equal(t, "b", candidates[0].ProblemID)
}
