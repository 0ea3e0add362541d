package algorithms

import (
	"strings"
	"time"

	"psfinder_backend/internal/config"
	"psfinder_backend/internal/models"
)

// Evidence is the supporting data behind one score: which required skills
// the team covers and which are missing.
type Evidence struct {
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
}

// Matcher scores a problem against a team profile. All scoring parameters
// come from configuration; the defaults implement proficiency-weighted
// skill overlap with a team-size penalty and a preferred-domain bonus.
type Matcher struct {
	params config.MatchingConfig
}

func NewMatcher(params config.MatchingConfig) *Matcher {
	return &Matcher{params: params}
}

// Score returns a similarity score in [0,1] and the skill evidence for one
// (team, problem) pair. Scoring is pure: the same inputs always produce the
// same score.
func (m *Matcher) Score(team *models.TeamProfile, problem *models.ProblemRecord) (float64, Evidence) {
	required := problem.GetRequiredSkills()

	score, evidence := m.skillScore(team.GetSkills(), required)

	// Optional deadline feasibility component, disabled by default.
	if m.params.DeadlineWeight > 0 {
		timeScore := m.timeFeasibility(team.Deadline, problem.EstimatedDurationWeeks)
		score = score*(1-m.params.DeadlineWeight) + timeScore*m.params.DeadlineWeight
	}

	// Team-size fit is a penalty, not a disqualifier.
	if problem.MinTeamSize != nil && problem.MaxTeamSize != nil {
		if team.TeamSize < *problem.MinTeamSize || team.TeamSize > *problem.MaxTeamSize {
			score *= m.params.TeamSizePenalty
		}
	}

	// Small bonus when the problem's category is among the team's
	// preferred domains.
	if problem.Category != "" && m.hasPreferredDomain(team, problem.Category) {
		score += m.params.DomainBonus
		if score > 1.0 {
			score = 1.0
		}
	}

	return score, evidence
}

// skillScore computes the proficiency-weighted overlap between the team's
// skills and the problem's required skills. A problem with no required
// skills is trivially satisfied and scores 1.0.
func (m *Matcher) skillScore(teamSkills []models.TeamSkill, required []string) (float64, Evidence) {
	evidence := Evidence{
		MatchedSkills: []string{},
		MissingSkills: []string{},
	}

	if len(required) == 0 {
		return 1.0, evidence
	}

	byName := make(map[string]models.Proficiency, len(teamSkills))
	for _, s := range teamSkills {
		byName[strings.ToLower(s.Name)] = s.Proficiency
	}

	total := 0.0
	for _, req := range required {
		name := strings.ToLower(req)
		prof, ok := byName[name]
		if !ok {
			evidence.MissingSkills = append(evidence.MissingSkills, name)
			continue
		}
		evidence.MatchedSkills = append(evidence.MatchedSkills, name)
		total += m.proficiencyWeight(prof)
	}

	return total / float64(len(required)), evidence
}

func (m *Matcher) proficiencyWeight(p models.Proficiency) float64 {
	switch p {
	case models.ProficiencyExpert:
		return m.params.ExpertWeight
	case models.ProficiencyIntermediate:
		return m.params.IntermediateWeight
	case models.ProficiencyBeginner:
		return m.params.BeginnerWeight
	default:
		// Unknown proficiency counts as beginner rather than dropping
		// the skill entirely.
		return m.params.BeginnerWeight
	}
}

// timeFeasibility scores whether the problem fits into the team's deadline.
func (m *Matcher) timeFeasibility(deadline *time.Time, durationWeeks *int) float64 {
	if deadline == nil || durationWeeks == nil {
		return 1.0
	}

	availableWeeks := time.Until(*deadline).Hours() / (24 * 7)
	if availableWeeks <= 0 {
		return 0.0
	}

	estimated := float64(*durationWeeks)
	if estimated <= availableWeeks {
		return 1.0
	}

	return availableWeeks / estimated
}

func (m *Matcher) hasPreferredDomain(team *models.TeamProfile, category string) bool {
	for _, d := range team.GetPreferredDomains() {
		if strings.EqualFold(d, category) {
			return true
		}
	}
	return false
}
