package dto

import (
	"time"

	"psfinder_backend/internal/models"
)

// RowWarning - a source row that was skipped during upload, 1-based
type RowWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// UploadResponse - result of a spreadsheet upload
type UploadResponse struct {
	Status       string       `json:"status"`
	BatchID      string       `json:"batch_id"`
	ProblemCount int          `json:"problem_count"`
	Warnings     []RowWarning `json:"warnings"`
}

// ProblemResponse - stored problem statement view
type ProblemResponse struct {
	ID                     string    `json:"id"`
	BatchID                string    `json:"batch_id"`
	Title                  string    `json:"title"`
	Description            string    `json:"description"`
	Category               string    `json:"category,omitempty"`
	RequiredSkills         []string  `json:"required_skills"`
	MinTeamSize            *int      `json:"min_team_size,omitempty"`
	MaxTeamSize            *int      `json:"max_team_size,omitempty"`
	EstimatedDurationWeeks *int      `json:"estimated_duration_weeks,omitempty"`
	DifficultyLevel        string    `json:"difficulty_level,omitempty"`
	SourceFile             string    `json:"source_file,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
}

// ProblemListResponse - paginated problem listing
type ProblemListResponse struct {
	Problems []ProblemResponse `json:"problems"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

func ProblemToResponse(p *models.ProblemRecord) *ProblemResponse {
	skills := p.GetRequiredSkills()
	if skills == nil {
		skills = []string{}
	}

	return &ProblemResponse{
		ID:                     p.ID,
		BatchID:                p.BatchID,
		Title:                  p.Title,
		Description:            p.Description,
		Category:               p.Category,
		RequiredSkills:         skills,
		MinTeamSize:            p.MinTeamSize,
		MaxTeamSize:            p.MaxTeamSize,
		EstimatedDurationWeeks: p.EstimatedDurationWeeks,
		DifficultyLevel:        p.DifficultyLevel,
		SourceFile:             p.SourceFile,
		CreatedAt:              p.CreatedAt,
	}
}
