package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"psfinder_backend/internal/algorithms"
	"psfinder_backend/internal/config"
	"psfinder_backend/internal/logger"
	"psfinder_backend/internal/metrics"
	"psfinder_backend/internal/models"
	"psfinder_backend/internal/narrative"
	"psfinder_backend/internal/repositories"
	"psfinder_backend/internal/services/dto"
	"psfinder_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// MatchItem pairs one problem with the identifier reported back to the
// caller. Stored problems use their database id, inline problems whatever
// id the caller supplied.
type MatchItem struct {
	ID      string
	Problem *models.ProblemRecord
}

type MatchingService interface {
	Match(ctx context.Context, db *gorm.DB, ownerID string, req *dto.MatchRequest) (*dto.MatchResponse, error)
	MatchItems(ctx context.Context, team *models.TeamProfile, items []MatchItem, minScore float64, limit int) ([]dto.MatchResult, error)
}

type matchingService struct {
	teamRepo    repositories.TeamRepository
	problemRepo repositories.ProblemRepository
	matcher     *algorithms.Matcher
	annotator   *narrative.Annotator
	stats       *MatchStats
	params      config.MatchingConfig
	narrWorkers int
}

func NewMatchingService(
	teamRepo repositories.TeamRepository,
	problemRepo repositories.ProblemRepository,
	annotator *narrative.Annotator,
	stats *MatchStats,
	params config.MatchingConfig,
	narrativeWorkers int,
) MatchingService {
	if narrativeWorkers <= 0 {
		narrativeWorkers = 1
	}
	return &matchingService{
		teamRepo:    teamRepo,
		problemRepo: problemRepo,
		matcher:     algorithms.NewMatcher(params),
		annotator:   annotator,
		stats:       stats,
		params:      params,
		narrWorkers: narrativeWorkers,
	}
}

// Match resolves the team and the problem set from the request and runs
// the scoring pipeline. Inline problems take precedence over the stored
// corpus; without a batch id the most recent upload is used.
func (s *matchingService) Match(ctx context.Context, db *gorm.DB, ownerID string, req *dto.MatchRequest) (*dto.MatchResponse, error) {
	team, err := s.resolveTeam(db, ownerID, req)
	if err != nil {
		return nil, err
	}

	items, err := s.resolveProblems(db, req)
	if err != nil {
		return nil, err
	}

	minScore := s.params.DefaultMinScore
	if req.MinScore != nil {
		minScore = *req.MinScore
	}
	limit := s.params.DefaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	matches, err := s.MatchItems(ctx, team, items, minScore, limit)
	if err != nil {
		return nil, err
	}

	return &dto.MatchResponse{
		Status:  "success",
		Matches: matches,
		Total:   len(matches),
	}, nil
}

// MatchItems scores every (team, problem) pair concurrently, ranks the
// results and annotates the survivors with narrative text. A canceled
// context stops the pipeline between stages; a single bad candidate never
// fails the batch.
func (s *matchingService) MatchItems(ctx context.Context, team *models.TeamProfile, items []MatchItem, minScore float64, limit int) ([]dto.MatchResult, error) {
	started := time.Now()
	defer func() {
		metrics.MatchDuration.Observe(time.Since(started).Seconds())
	}()
	metrics.MatchBatches.Inc()

	candidates := s.scoreAll(ctx, team, items)
	if err := ctx.Err(); err != nil {
		return nil, apperrors.InternalError(err)
	}

	ranked := algorithms.Rank(candidates, minScore, limit)

	byID := make(map[string]*models.ProblemRecord, len(items))
	for _, item := range items {
		byID[item.ID] = item.Problem
	}

	results := make([]dto.MatchResult, 0, len(ranked))
	for i, c := range ranked {
		results = append(results, buildMatchResult(c, i+1, byID[c.ProblemID]))
	}

	s.annotate(ctx, team, results)

	if s.stats != nil {
		s.stats.RecordBatch(results)
	}
	logger.BatchLog(team.Name, len(items), len(results), 0, time.Since(started))
	return results, nil
}

func (s *matchingService) resolveTeam(db *gorm.DB, ownerID string, req *dto.MatchRequest) (*models.TeamProfile, error) {
	if req.TeamProfile != nil {
		p := req.TeamProfile
		team := &models.TeamProfile{
			Name:            p.Name,
			TeamSize:        p.TeamSize,
			ExperienceLevel: p.ExperienceLevel,
		}
		team.SetSkills(dto.SkillsToModel(p.Skills))
		team.SetPreferredDomains(p.PreferredDomains)
		return team, nil
	}

	if req.TeamID != "" {
		team, err := s.teamRepo.FindByID(db, req.TeamID)
		if err != nil {
			if err == repositories.ErrTeamNotFound {
				return nil, apperrors.ErrTeamNotFound
			}
			return nil, apperrors.InternalError(err)
		}
		if team.OwnerID != ownerID {
			return nil, apperrors.ErrTeamNotFound
		}
		return team, nil
	}

	return nil, apperrors.NewBadRequestError("Either team_profile or team_id is required")
}

func (s *matchingService) resolveProblems(db *gorm.DB, req *dto.MatchRequest) ([]MatchItem, error) {
	if len(req.Problems) > 0 {
		items := make([]MatchItem, 0, len(req.Problems))
		for i, p := range req.Problems {
			items = append(items, inlineProblemToItem(i, p))
		}
		return items, nil
	}

	batchID := req.BatchID
	if batchID == "" {
		var err error
		batchID, err = s.problemRepo.LatestBatchID(db)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if batchID == "" {
			// Nothing uploaded yet, an empty match set is a valid answer.
			return nil, nil
		}
	}

	problems, err := s.problemRepo.FindByBatch(db, batchID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]MatchItem, 0, len(problems))
	for i := range problems {
		items = append(items, MatchItem{ID: problems[i].ID, Problem: &problems[i]})
	}
	return items, nil
}

func inlineProblemToItem(idx int, p dto.ProblemInput) MatchItem {
	id := p.ID
	if id == "" {
		id = fmt.Sprintf("problem-%d", idx+1)
	}

	rec := &models.ProblemRecord{
		RowIndex:               idx + 1,
		Title:                  p.Title,
		Description:            p.Description,
		Category:               p.Category,
		MinTeamSize:            p.MinTeamSize,
		MaxTeamSize:            p.MaxTeamSize,
		EstimatedDurationWeeks: p.EstimatedDurationWeeks,
		DifficultyLevel:        p.Complexity,
	}
	if rec.Title == "" {
		rec.Title = id
	}
	rec.SetRequiredSkills(normalizeSkillNames(p.RequiredSkills))
	return MatchItem{ID: id, Problem: rec}
}

// scoreAll fans the scoring work out over a fixed pool. Workers drain the
// job channel; cancellation stops feeding it.
func (s *matchingService) scoreAll(ctx context.Context, team *models.TeamProfile, items []MatchItem) []algorithms.Candidate {
	if len(items) == 0 {
		return nil
	}

	workers := s.params.ScoringWorkers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	jobs := make(chan int)
	out := make(chan algorithms.Candidate, len(items))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				s.scoreOne(ctx, team, idx, items[idx], out)
			}
		}()
	}

feed:
	for i := range items {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	close(out)

	candidates := make([]algorithms.Candidate, 0, len(items))
	for c := range out {
		candidates = append(candidates, c)
	}
	return candidates
}

// scoreOne scores a single pair. A panic in scoring drops that candidate
// with a logged reason and the batch continues.
func (s *matchingService) scoreOne(ctx context.Context, team *models.TeamProfile, idx int, item MatchItem, out chan<- algorithms.Candidate) {
	defer func() {
		if r := recover(); r != nil {
			err := apperrors.ErrScoring(fmt.Errorf("%v", r), item.ID)
			logger.CtxError(ctx, "dropping candidate after scoring fault",
				"problem_id", item.ID, "error", err)
		}
	}()

	score, evidence := s.matcher.Score(team, item.Problem)
	metrics.MatchPairsScored.Inc()

	out <- algorithms.Candidate{
		ProblemID: item.ID,
		RowOrder:  idx,
		Score:     score,
		Evidence:  evidence,
	}
}

// annotate fills in recommendation and skill-gap text over a bounded pool.
// Any failure leaves the narrative fields null; scores are never touched.
func (s *matchingService) annotate(ctx context.Context, team *models.TeamProfile, results []dto.MatchResult) {
	if !s.annotator.Enabled() || len(results) == 0 {
		return
	}

	teamCtx := teamToNarrativeContext(team)
	sem := make(chan struct{}, s.narrWorkers)
	var wg sync.WaitGroup

	for i := range results {
		if ctx.Err() != nil {
			break
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			r := &results[i]
			problemCtx := narrative.ProblemContext{
				Description:    r.ProblemDetails.Description,
				RequiredSkills: r.ProblemDetails.RequiredSkills,
				MissingSkills:  r.MissingSkills,
				Score:          r.SimilarityScore,
			}

			if text, err := s.annotator.Recommendation(ctx, teamCtx, problemCtx); err != nil {
				s.logNarrativeFailure(ctx, "recommendation", r.ProblemID, err)
			} else {
				r.Recommendation = &text
			}

			if text, err := s.annotator.SkillGap(ctx, teamCtx, problemCtx); err != nil {
				s.logNarrativeFailure(ctx, "skill_gap", r.ProblemID, err)
			} else {
				r.SkillGapAnalysis = &text
			}
		}(i)
	}

	wg.Wait()
}

func (s *matchingService) logNarrativeFailure(ctx context.Context, kind, problemID string, err error) {
	metrics.NarrativeFailures.WithLabelValues(kind).Inc()
	logger.CtxWarn(ctx, "narrative generation failed, returning match without text",
		"kind", kind, "problem_id", problemID, "error", err)
}

func buildMatchResult(c algorithms.Candidate, rank int, rec *models.ProblemRecord) dto.MatchResult {
	details := dto.ProblemDetails{
		RequiredSkills: []string{},
	}
	title := c.ProblemID

	if rec != nil {
		title = rec.Title
		details.Description = rec.Description
		details.Category = rec.Category
		details.Complexity = rec.DifficultyLevel
		details.Deadline = rec.EstimatedDurationWeeks
		details.MinTeamSize = rec.MinTeamSize
		details.MaxTeamSize = rec.MaxTeamSize
		if skills := rec.GetRequiredSkills(); skills != nil {
			details.RequiredSkills = skills
		}
	}

	return dto.MatchResult{
		ProblemID:       c.ProblemID,
		Title:           title,
		SimilarityScore: roundScore(c.Score),
		Rank:            rank,
		MatchedSkills:   c.Evidence.MatchedSkills,
		MissingSkills:   c.Evidence.MissingSkills,
		ProblemDetails:  details,
	}
}

func teamToNarrativeContext(team *models.TeamProfile) narrative.TeamContext {
	skills := []string{}
	for _, s := range team.GetSkills() {
		skills = append(skills, s.Name)
	}

	ctx := narrative.TeamContext{
		Size:       team.TeamSize,
		Experience: team.ExperienceLevel,
		Skills:     skills,
	}
	if team.Deadline != nil {
		days := int(math.Ceil(time.Until(*team.Deadline).Hours() / 24))
		if days < 0 {
			days = 0
		}
		ctx.DeadlineDays = &days
	}
	return ctx
}

// roundScore trims float noise so equal-quality matches compare equal in
// responses.
func roundScore(score float64) float64 {
	return math.Round(score*10000) / 10000
}

func normalizeSkillNames(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		name := strings.ToLower(strings.TrimSpace(s))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
