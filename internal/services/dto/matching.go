package dto

// ========================
// Matching DTOs
// ========================

// TeamProfileInput - ad-hoc team profile submitted with a match request.
// Callers may also reference a stored team by id instead.
type TeamProfileInput struct {
	Name             string           `json:"name" validate:"omitempty,max=120"`
	TeamSize         int              `json:"team_size" validate:"required,min=1,max=100"`
	Skills           []TeamSkillInput `json:"tech_skills" validate:"required,min=1,dive"`
	PreferredDomains []string         `json:"preferred_domains" validate:"omitempty,dive,min=1"`
	ExperienceLevel  string           `json:"experience_level" validate:"omitempty,experience-level"`
}

// ProblemInput - ad-hoc problem submitted with a match request
type ProblemInput struct {
	ID                     string   `json:"id"`
	Title                  string   `json:"title" validate:"omitempty,max=200"`
	Description            string   `json:"description" validate:"required"`
	Category               string   `json:"category"`
	RequiredSkills         []string `json:"required_skills" validate:"omitempty,dive,min=1"`
	Complexity             string   `json:"complexity"`
	MinTeamSize            *int     `json:"min_team_size" validate:"omitempty,min=1"`
	MaxTeamSize            *int     `json:"max_team_size" validate:"omitempty,min=1"`
	EstimatedDurationWeeks *int     `json:"estimated_duration_weeks" validate:"omitempty,min=0"`
}

// MatchRequest - match a team against inline problems or the stored
// corpus. Either team_profile or team_id must be present.
type MatchRequest struct {
	TeamID      string            `json:"team_id" validate:"omitempty,uuid"`
	TeamProfile *TeamProfileInput `json:"team_profile" validate:"omitempty"`
	Problems    []ProblemInput    `json:"problems" validate:"omitempty,dive"`
	BatchID     string            `json:"batch_id" validate:"omitempty,uuid"`
	MinScore    *float64          `json:"min_score" validate:"omitempty,min=0,max=1"`
	Limit       *int              `json:"limit" validate:"omitempty,min=1,max=100"`
}

// ProblemDetails - problem attributes echoed back with each match
type ProblemDetails struct {
	Description    string   `json:"description"`
	Category       string   `json:"category,omitempty"`
	RequiredSkills []string `json:"required_skills"`
	Complexity     string   `json:"complexity,omitempty"`
	Deadline       *int     `json:"deadline,omitempty"`
	MinTeamSize    *int     `json:"min_team_size,omitempty"`
	MaxTeamSize    *int     `json:"max_team_size,omitempty"`
}

// MatchResult - one ranked match. Narrative fields are null when the
// generator is unavailable; the numeric result stands on its own.
type MatchResult struct {
	ProblemID        string         `json:"problem_id"`
	Title            string         `json:"title"`
	SimilarityScore  float64        `json:"similarity_score"`
	Rank             int            `json:"rank"`
	MatchedSkills    []string       `json:"matched_skills"`
	MissingSkills    []string       `json:"missing_skills"`
	Recommendation   *string        `json:"recommendation"`
	SkillGapAnalysis *string        `json:"skill_gap_analysis"`
	ProblemDetails   ProblemDetails `json:"problem_details"`
}

// MatchResponse - full matching response. BatchID is set when the match
// was produced by an upload.
type MatchResponse struct {
	Status   string        `json:"status"`
	BatchID  string        `json:"batch_id,omitempty"`
	Matches  []MatchResult `json:"matches"`
	Total    int           `json:"total"`
	Warnings []RowWarning  `json:"warnings,omitempty"`
}
