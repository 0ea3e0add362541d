package dto

// CategoryStat - problem count per category
type CategoryStat struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// CategoryStatsResponse - category distribution over stored problems
type CategoryStatsResponse struct {
	Categories []CategoryStat `json:"categories"`
	Total      int64          `json:"total"`
}

// MatchingStats - aggregate matching activity
type MatchingStats struct {
	TotalProblems   int64   `json:"total_problems"`
	TotalBatches    int64   `json:"total_batches"`
	TotalTeams      int64   `json:"total_teams"`
	MatchBatches    int64   `json:"match_batches"`
	MatchesComputed int64   `json:"matches_computed"`
	AverageScore    float64 `json:"average_score"`
}
