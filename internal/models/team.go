package models

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Proficiency is the team's self-reported strength in one skill.
type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "Beginner"
	ProficiencyIntermediate Proficiency = "Intermediate"
	ProficiencyExpert       Proficiency = "Expert"
)

// TeamSkill is one (skill name, proficiency) pair of a team profile.
type TeamSkill struct {
	Name        string      `json:"name"`
	Proficiency Proficiency `json:"proficiency"`
}

type TeamProfile struct {
	BaseModel
	OwnerID          string         `gorm:"not null;index" json:"owner_id"`
	Name             string         `gorm:"not null" json:"name"`
	TeamSize         int            `gorm:"not null" json:"team_size"`
	Skills           datatypes.JSON `gorm:"type:jsonb" json:"tech_skills"`       // [{"name":"python","proficiency":"Expert"}]
	PreferredDomains datatypes.JSON `gorm:"type:jsonb" json:"preferred_domains"` // ["healthcare","fintech"]
	ExperienceLevel  string         `gorm:"not null" json:"experience_level"`
	Deadline         *time.Time     `json:"deadline,omitempty"`
}

// GetSkills returns the team's skills as a slice.
func (t *TeamProfile) GetSkills() []TeamSkill {
	var skills []TeamSkill
	if len(t.Skills) > 0 {
		_ = json.Unmarshal(t.Skills, &skills)
	}
	return skills
}

// SetSkills stores the skills, lower-casing names.
func (t *TeamProfile) SetSkills(skills []TeamSkill) {
	for i := range skills {
		skills[i].Name = strings.ToLower(strings.TrimSpace(skills[i].Name))
	}
	data, _ := json.Marshal(skills)
	t.Skills = datatypes.JSON(data)
}

// GetPreferredDomains returns the preferred domain tags as a slice.
func (t *TeamProfile) GetPreferredDomains() []string {
	var domains []string
	if len(t.PreferredDomains) > 0 {
		_ = json.Unmarshal(t.PreferredDomains, &domains)
	}
	return domains
}

// SetPreferredDomains stores the preferred domain tags.
func (t *TeamProfile) SetPreferredDomains(domains []string) {
	data, _ := json.Marshal(domains)
	t.PreferredDomains = datatypes.JSON(data)
}
