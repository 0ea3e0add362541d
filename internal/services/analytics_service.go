package services

import (
	"context"
	"sync"

	"psfinder_backend/internal/cache"
	"psfinder_backend/internal/metrics"
	"psfinder_backend/internal/repositories"
	"psfinder_backend/internal/services/dto"
	"psfinder_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	cacheKeyCategories    = "analytics:categories"
	cacheKeyMatchingStats = "analytics:matching-stats"
)

// MatchStats accumulates matching activity since process start. The
// matching service records into it, the analytics service reports it.
type MatchStats struct {
	mu       sync.Mutex
	batches  int64
	matches  int64
	scoreSum float64
}

func NewMatchStats() *MatchStats {
	return &MatchStats{}
}

func (s *MatchStats) RecordBatch(results []dto.MatchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.batches++
	s.matches += int64(len(results))
	for _, r := range results {
		s.scoreSum += r.SimilarityScore
	}
}

func (s *MatchStats) snapshot() (batches, matches int64, avg float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.matches > 0 {
		avg = s.scoreSum / float64(s.matches)
	}
	return s.batches, s.matches, avg
}

type AnalyticsService interface {
	CategoryStats(ctx context.Context, db *gorm.DB) (*dto.CategoryStatsResponse, error)
	MatchingStats(ctx context.Context, db *gorm.DB) (*dto.MatchingStats, error)
}

type analyticsService struct {
	analyticsRepo repositories.AnalyticsRepository
	problemRepo   repositories.ProblemRepository
	teamRepo      repositories.TeamRepository
	cache         *cache.Cache
	stats         *MatchStats
}

func NewAnalyticsService(
	analyticsRepo repositories.AnalyticsRepository,
	problemRepo repositories.ProblemRepository,
	teamRepo repositories.TeamRepository,
	c *cache.Cache,
	stats *MatchStats,
) AnalyticsService {
	return &analyticsService{
		analyticsRepo: analyticsRepo,
		problemRepo:   problemRepo,
		teamRepo:      teamRepo,
		cache:         c,
		stats:         stats,
	}
}

// CategoryStats returns the category distribution of the stored corpus,
// cached until the next upload invalidates it.
func (s *analyticsService) CategoryStats(ctx context.Context, db *gorm.DB) (*dto.CategoryStatsResponse, error) {
	var cached dto.CategoryStatsResponse
	if s.cache.Get(ctx, cacheKeyCategories, &cached) {
		metrics.CacheHits.WithLabelValues("analytics").Inc()
		return &cached, nil
	}
	metrics.CacheMisses.WithLabelValues("analytics").Inc()

	counts, err := s.analyticsRepo.CategoryCounts(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.CategoryStatsResponse{Categories: []dto.CategoryStat{}}
	for _, c := range counts {
		resp.Categories = append(resp.Categories, dto.CategoryStat{Category: c.Category, Count: c.Count})
		resp.Total += c.Count
	}

	s.cache.Set(ctx, cacheKeyCategories, resp)
	return resp, nil
}

// corpusCounts is the cacheable, DB-derived part of the matching stats.
// Match activity counters are per-process and always read live.
type corpusCounts struct {
	TotalProblems int64 `json:"total_problems"`
	TotalBatches  int64 `json:"total_batches"`
	TotalTeams    int64 `json:"total_teams"`
}

func (s *analyticsService) MatchingStats(ctx context.Context, db *gorm.DB) (*dto.MatchingStats, error) {
	var counts corpusCounts
	if s.cache.Get(ctx, cacheKeyMatchingStats, &counts) {
		metrics.CacheHits.WithLabelValues("analytics").Inc()
	} else {
		metrics.CacheMisses.WithLabelValues("analytics").Inc()

		var err error
		if counts.TotalProblems, err = s.problemRepo.CountAll(db); err != nil {
			return nil, apperrors.InternalError(err)
		}
		if counts.TotalBatches, err = s.problemRepo.CountBatches(db); err != nil {
			return nil, apperrors.InternalError(err)
		}
		if counts.TotalTeams, err = s.teamRepo.CountAll(db); err != nil {
			return nil, apperrors.InternalError(err)
		}
		s.cache.Set(ctx, cacheKeyMatchingStats, &counts)
	}

	batches, matches, avg := s.stats.snapshot()

	return &dto.MatchingStats{
		TotalProblems:   counts.TotalProblems,
		TotalBatches:    counts.TotalBatches,
		TotalTeams:      counts.TotalTeams,
		MatchBatches:    batches,
		MatchesComputed: matches,
		AverageScore:    avg,
	}, nil
}
