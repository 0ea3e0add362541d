package services

import (
	"context"
	"io"

	"psfinder_backend/internal/cache"
	"psfinder_backend/internal/loader"
	"psfinder_backend/internal/logger"
	"psfinder_backend/internal/metrics"
	"psfinder_backend/internal/models"
	"psfinder_backend/internal/repositories"
	"psfinder_backend/internal/services/dto"
	"psfinder_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProblemService interface {
	Upload(ctx context.Context, db *gorm.DB, ownerID, teamID, filename string, file io.Reader) (*dto.MatchResponse, error)
	GetByID(db *gorm.DB, id string) (*dto.ProblemResponse, error)
	List(db *gorm.DB, page, pageSize int) (*dto.ProblemListResponse, error)
}

type problemService struct {
	problemRepo repositories.ProblemRepository
	teamRepo    repositories.TeamRepository
	loader      *loader.Loader
	matching    MatchingService
	cache       *cache.Cache
}

func NewProblemService(
	problemRepo repositories.ProblemRepository,
	teamRepo repositories.TeamRepository,
	l *loader.Loader,
	matching MatchingService,
	c *cache.Cache,
) ProblemService {
	return &problemService{
		problemRepo: problemRepo,
		teamRepo:    teamRepo,
		loader:      l,
		matching:    matching,
		cache:       c,
	}
}

// Upload parses the spreadsheet, stores the batch and, when a team is
// given, immediately matches it against the new problems. Rows that could
// not be parsed come back as warnings next to the results.
func (s *problemService) Upload(ctx context.Context, db *gorm.DB, ownerID, teamID, filename string, file io.Reader) (*dto.MatchResponse, error) {
	parsed, err := s.loader.Parse(filename, file)
	if err != nil {
		metrics.UploadsProcessed.WithLabelValues("rejected").Inc()
		return nil, err
	}

	batchID := uuid.NewString()
	records := make([]*models.ProblemRecord, 0, len(parsed.Records))
	for _, rec := range parsed.Records {
		records = append(records, recordToModel(batchID, filename, rec))
	}

	if err := s.problemRepo.CreateBatch(db, records); err != nil {
		metrics.UploadsProcessed.WithLabelValues("failed").Inc()
		return nil, apperrors.InternalError(err)
	}

	metrics.UploadsProcessed.WithLabelValues("success").Inc()
	metrics.UploadRowsSkipped.Add(float64(len(parsed.Warnings)))
	s.cache.ClearPattern(ctx, "analytics:*")

	logger.CtxInfo(ctx, "stored problem batch",
		"batch_id", batchID, "source_file", filename,
		"problems", len(records), "skipped_rows", len(parsed.Warnings))

	warnings := make([]dto.RowWarning, 0, len(parsed.Warnings))
	for _, w := range parsed.Warnings {
		warnings = append(warnings, dto.RowWarning{Row: w.Row, Message: w.Message})
	}

	resp := &dto.MatchResponse{
		Status:   "success",
		BatchID:  batchID,
		Warnings: warnings,
	}

	if teamID == "" {
		// No team given: return the parsed problems unscored, in source
		// order.
		resp.Matches = unscoredResults(records)
		resp.Total = len(resp.Matches)
		return resp, nil
	}

	team, err := s.teamRepo.FindByID(db, teamID)
	if err != nil {
		if err == repositories.ErrTeamNotFound {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if team.OwnerID != ownerID {
		return nil, apperrors.ErrTeamNotFound
	}

	items := make([]MatchItem, 0, len(records))
	for _, rec := range records {
		items = append(items, MatchItem{ID: rec.ID, Problem: rec})
	}

	matches, err := s.matching.MatchItems(ctx, team, items, 0, 0)
	if err != nil {
		return nil, err
	}

	resp.Matches = matches
	resp.Total = len(matches)
	return resp, nil
}

func (s *problemService) GetByID(db *gorm.DB, id string) (*dto.ProblemResponse, error) {
	problem, err := s.problemRepo.FindByID(db, id)
	if err != nil {
		if err == repositories.ErrProblemNotFound {
			return nil, apperrors.ErrProblemNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.ProblemToResponse(problem), nil
}

func (s *problemService) List(db *gorm.DB, page, pageSize int) (*dto.ProblemListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	total, err := s.problemRepo.CountAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	problems, err := s.problemRepo.FindAll(db, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.ProblemResponse, 0, len(problems))
	for i := range problems {
		out = append(out, *dto.ProblemToResponse(&problems[i]))
	}

	return &dto.ProblemListResponse{
		Problems: out,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func recordToModel(batchID, filename string, rec loader.Record) *models.ProblemRecord {
	m := &models.ProblemRecord{
		BatchID:                batchID,
		RowIndex:               rec.RowIndex,
		Title:                  rec.Title,
		Description:            rec.Description,
		Category:               rec.Category,
		MinTeamSize:            rec.MinTeamSize,
		MaxTeamSize:            rec.MaxTeamSize,
		EstimatedDurationWeeks: rec.EstimatedDurationWeeks,
		DifficultyLevel:        rec.DifficultyLevel,
		SourceFile:             filename,
	}
	m.ID = uuid.NewString()
	m.SetRequiredSkills(rec.RequiredSkills)
	return m
}

func unscoredResults(records []*models.ProblemRecord) []dto.MatchResult {
	results := make([]dto.MatchResult, 0, len(records))
	for i, rec := range records {
		skills := rec.GetRequiredSkills()
		if skills == nil {
			skills = []string{}
		}
		results = append(results, dto.MatchResult{
			ProblemID:       rec.ID,
			Title:           rec.Title,
			SimilarityScore: 0,
			Rank:            i + 1,
			MatchedSkills:   []string{},
			MissingSkills:   skills,
			ProblemDetails: dto.ProblemDetails{
				Description:    rec.Description,
				Category:       rec.Category,
				RequiredSkills: skills,
				Complexity:     rec.DifficultyLevel,
				Deadline:       rec.EstimatedDurationWeeks,
				MinTeamSize:    rec.MinTeamSize,
				MaxTeamSize:    rec.MaxTeamSize,
			},
		})
	}
	return results
}
