package dto

import (
	"time"

	"psfinder_backend/internal/models"
)

// TeamSkillInput - one skill with its proficiency
type TeamSkillInput struct {
	Name        string `json:"name" validate:"required,min=1,max=80"`
	Proficiency string `json:"proficiency" validate:"required,proficiency"`
}

// CreateTeamRequest - new team profile payload
type CreateTeamRequest struct {
	Name             string           `json:"name" validate:"required,min=2,max=120"`
	TeamSize         int              `json:"team_size" validate:"required,min=1,max=100"`
	Skills           []TeamSkillInput `json:"tech_skills" validate:"omitempty,dive"`
	PreferredDomains []string         `json:"preferred_domains" validate:"omitempty,dive,min=1"`
	ExperienceLevel  string           `json:"experience_level" validate:"omitempty,experience-level"`
	Deadline         *time.Time       `json:"deadline"`
}

// UpdateTeamRequest - partial update, nil fields stay unchanged
type UpdateTeamRequest struct {
	Name             *string          `json:"name" validate:"omitempty,min=2,max=120"`
	TeamSize         *int             `json:"team_size" validate:"omitempty,min=1,max=100"`
	Skills           []TeamSkillInput `json:"tech_skills" validate:"omitempty,dive"`
	PreferredDomains []string         `json:"preferred_domains" validate:"omitempty,dive,min=1"`
	ExperienceLevel  *string          `json:"experience_level" validate:"omitempty,experience-level"`
	Deadline         *time.Time       `json:"deadline"`
}

// TeamResponse - full team profile view
type TeamResponse struct {
	ID               string           `json:"id"`
	OwnerID          string           `json:"owner_id"`
	Name             string           `json:"name"`
	TeamSize         int              `json:"team_size"`
	Skills           []TeamSkillInput `json:"tech_skills"`
	PreferredDomains []string         `json:"preferred_domains"`
	ExperienceLevel  string           `json:"experience_level"`
	Deadline         *time.Time       `json:"deadline,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func TeamToResponse(team *models.TeamProfile) *TeamResponse {
	skills := make([]TeamSkillInput, 0)
	for _, s := range team.GetSkills() {
		skills = append(skills, TeamSkillInput{Name: s.Name, Proficiency: string(s.Proficiency)})
	}

	domains := team.GetPreferredDomains()
	if domains == nil {
		domains = []string{}
	}

	return &TeamResponse{
		ID:               team.ID,
		OwnerID:          team.OwnerID,
		Name:             team.Name,
		TeamSize:         team.TeamSize,
		Skills:           skills,
		PreferredDomains: domains,
		ExperienceLevel:  team.ExperienceLevel,
		Deadline:         team.Deadline,
		CreatedAt:        team.CreatedAt,
		UpdatedAt:        team.UpdatedAt,
	}
}

// SkillsToModel converts skill inputs to the model representation.
func SkillsToModel(skills []TeamSkillInput) []models.TeamSkill {
	out := make([]models.TeamSkill, 0, len(skills))
	for _, s := range skills {
		out = append(out, models.TeamSkill{
			Name:        s.Name,
			Proficiency: models.Proficiency(s.Proficiency),
		})
	}
	return out
}
