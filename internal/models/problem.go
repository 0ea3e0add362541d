package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// ProblemRecord is one parsed problem statement. Records are created by
// parsing a spreadsheet row, are immutable afterwards, and belong to the
// upload batch that produced them. RowIndex preserves the original source
// order, which the ranker uses as tiebreak.
type ProblemRecord struct {
	BaseModel
	BatchID                string         `gorm:"not null;index" json:"batch_id"`
	RowIndex               int            `gorm:"not null" json:"row_index"`
	Title                  string         `gorm:"not null" json:"title"`
	Description            string         `gorm:"not null" json:"description"`
	Category               string         `json:"category"`
	RequiredSkills         datatypes.JSON `gorm:"type:jsonb" json:"required_skills"` // ["python","react"]
	MinTeamSize            *int           `json:"min_team_size"`
	MaxTeamSize            *int           `json:"max_team_size"`
	EstimatedDurationWeeks *int           `json:"estimated_duration_weeks"`
	DifficultyLevel        string         `json:"difficulty_level"`
	SourceFile             string         `gorm:"not null" json:"source_file"`
}

// GetRequiredSkills returns the required skill names (already lower-cased
// by the loader).
func (p *ProblemRecord) GetRequiredSkills() []string {
	var skills []string
	if len(p.RequiredSkills) > 0 {
		_ = json.Unmarshal(p.RequiredSkills, &skills)
	}
	return skills
}

// SetRequiredSkills stores the required skill names.
func (p *ProblemRecord) SetRequiredSkills(skills []string) {
	data, _ := json.Marshal(skills)
	p.RequiredSkills = datatypes.JSON(data)
}
