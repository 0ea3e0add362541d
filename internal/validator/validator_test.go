package validator

import (
	"testing"

	"psfinder_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSignupRequest(t *testing.T) {
	v := New()

	valid := dto.SignupRequest{
		Email:    "user@test.com",
		Password: "password123",
		FullName: "Test User",
	}
	assert.NoError(t, v.Validate(valid))

	invalid := dto.SignupRequest{
		Email:    "not-an-email",
		Password: "short",
		FullName: "",
	}
	err := v.Validate(invalid)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	// Field names come from the JSON tags.
	assert.Contains(t, ve.Errors, "email")
	assert.Contains(t, ve.Errors, "password")
	assert.Contains(t, ve.Errors, "full_name")
	assert.Equal(t, "Must be a valid email address", ve.Errors["email"])
}

func TestValidateProficiencyTag(t *testing.T) {
	v := New()

	req := dto.CreateTeamRequest{
		Name:     "Team",
		TeamSize: 3,
		Skills: []dto.TeamSkillInput{
			{Name: "go", Proficiency: "Expert"},
		},
		ExperienceLevel: "Intermediate",
	}
	assert.NoError(t, v.Validate(req))

	req.Skills[0].Proficiency = "Wizard"
	err := v.Validate(req)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Must be one of: Beginner, Intermediate, Expert", ve.Errors["proficiency"])
}

func TestValidateExperienceLevelTag(t *testing.T) {
	v := New()

	req := dto.CreateTeamRequest{
		Name:     "Team",
		TeamSize: 3,
		Skills: []dto.TeamSkillInput{
			{Name: "go", Proficiency: "Beginner"},
		},
		ExperienceLevel: "Grandmaster",
	}
	err := v.Validate(req)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Errors, "experience_level")
}

func TestValidateMatchRequestBounds(t *testing.T) {
	v := New()

	minScore := 1.5
	req := dto.MatchRequest{
		TeamProfile: &dto.TeamProfileInput{
			TeamSize: 3,
			Skills:   []dto.TeamSkillInput{{Name: "go", Proficiency: "Expert"}},
		},
		MinScore: &minScore,
	}
	err := v.Validate(req)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Errors, "min_score")

	ok := 0.5
	req.MinScore = &ok
	assert.NoError(t, v.Validate(req))
}
