package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"psfinder_backend/internal/models"
	"psfinder_backend/test/helpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeams(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	token, _ := helpers.CreateAndLoginUser(t, ts)
	otherToken, _ := helpers.CreateAndLoginUser(t, ts)

	createBody := gin.H{
		"name":      "Backend Crew",
		"team_size": 4,
		"tech_skills": []gin.H{
			{"name": "Python", "proficiency": "Expert"},
			{"name": "PostgreSQL", "proficiency": "Intermediate"},
		},
		"preferred_domains": []string{"fintech"},
		"experience_level":  "Intermediate",
	}

	var teamID string

	t.Run("Create", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/teams", token, createBody)
		assert.Equal(t, http.StatusCreated, res.StatusCode, "create should succeed, body: "+bodyStr)

		var created struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))
		require.NotEmpty(t, created.ID)
		teamID = created.ID

		// Skill names are stored lower-cased
		assert.Contains(t, bodyStr, `"python"`)

		// Duplicate skill names rejected
		res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/teams", token, gin.H{
			"name":      "Dup Skills",
			"team_size": 3,
			"tech_skills": []gin.H{
				{"name": "go", "proficiency": "Expert"},
				{"name": "Go", "proficiency": "Beginner"},
			},
			"experience_level": "Beginner",
		})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, "duplicate skills should fail, body: "+bodyStr)

		// Unknown proficiency rejected by validation
		res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/teams", token, gin.H{
			"name":      "Bad Proficiency",
			"team_size": 3,
			"tech_skills": []gin.H{
				{"name": "go", "proficiency": "Wizard"},
			},
			"experience_level": "Beginner",
		})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)

		// Unauthenticated
		res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/teams", "", createBody)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("Get and List", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/teams/"+teamID, token, nil)
		assert.Equal(t, http.StatusOK, res.StatusCode, "get should succeed, body: "+bodyStr)
		assert.Contains(t, bodyStr, "Backend Crew")

		res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/teams", token, nil)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, bodyStr, `"teams":`)
		assert.Contains(t, bodyStr, teamID)

		// Another owner cannot see or probe the team
		res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/teams/"+teamID, otherToken, nil)
		assert.Equal(t, http.StatusNotFound, res.StatusCode, "foreign team must look like it does not exist")

		res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/teams", otherToken, nil)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.NotContains(t, bodyStr, teamID, "listing must be owner-scoped")
	})

	t.Run("Update", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodPut, "/api/v1/teams/"+teamID, token, gin.H{
			"name":      "Backend Crew v2",
			"team_size": 5,
		})
		assert.Equal(t, http.StatusOK, res.StatusCode, "update should succeed, body: "+bodyStr)
		assert.Contains(t, bodyStr, "Backend Crew v2")
		assert.Contains(t, bodyStr, `"team_size":5`)
		// Untouched fields survive a partial update
		assert.Contains(t, bodyStr, `"python"`)

		res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/teams/"+teamID, otherToken, gin.H{"name": "Hijacked"})
		assert.Equal(t, http.StatusNotFound, res.StatusCode, "foreign update must 404")
	})

	t.Run("Delete", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodDelete, "/api/v1/teams/"+teamID, otherToken, nil)
		assert.Equal(t, http.StatusNotFound, res.StatusCode, "foreign delete must 404")

		res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/teams/"+teamID, token, nil)
		assert.Equal(t, http.StatusNoContent, res.StatusCode)

		var count int64
		ts.DB.Model(&models.TeamProfile{}).Where("id = ?", teamID).Count(&count)
		assert.Zero(t, count, "team row should be gone")
	})
}
