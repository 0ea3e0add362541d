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

func TestMatchProblems(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	token, user := helpers.CreateAndLoginUser(t, ts)
	otherToken, _ := helpers.CreateAndLoginUser(t, ts)

	team := helpers.CreateTeam(t, ts.DB, user.ID, "Match Team", []models.TeamSkill{
		{Name: "python", Proficiency: models.ProficiencyExpert},
		{Name: "react", Proficiency: models.ProficiencyIntermediate},
	})

	inlineProblems := []gin.H{
		{
			"id":              "strong-fit",
			"title":           "Patient portal",
			"description":     "Build a patient portal.",
			"category":        "healthcare",
			"required_skills": []string{"python", "react"},
		},
		{
			"id":              "weak-fit",
			"title":           "Firmware update",
			"description":     "Embedded firmware work.",
			"required_skills": []string{"c", "rust"},
		},
	}

	t.Run("Inline team and inline problems", func(t *testing.T) {
		body := gin.H{
			"team_profile": gin.H{
				"name":      "Ad-hoc Team",
				"team_size": 3,
				"tech_skills": []gin.H{
					{"name": "Python", "proficiency": "Expert"},
				},
				"preferred_domains": []string{"healthcare"},
			},
			"problems":  inlineProblems,
			"min_score": 0.1,
		}
		res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/match-problems", token, body)
		assert.Equal(t, http.StatusOK, res.StatusCode, "match should succeed, body: "+bodyStr)

		var resp struct {
			Status  string `json:"status"`
			Matches []struct {
				ProblemID       string   `json:"problem_id"`
				SimilarityScore float64  `json:"similarity_score"`
				Rank            int      `json:"rank"`
				MatchedSkills   []string `json:"matched_skills"`
				MissingSkills   []string `json:"missing_skills"`
			} `json:"matches"`
			Total int `json:"total"`
		}
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))

		// Only the python problem clears min_score 0.1.
		require.Len(t, resp.Matches, 1)
		assert.Equal(t, "strong-fit", resp.Matches[0].ProblemID)
		assert.Equal(t, 1, resp.Matches[0].Rank)
		assert.Contains(t, resp.Matches[0].MatchedSkills, "python")
		assert.Contains(t, resp.Matches[0].MissingSkills, "react")
		assert.Equal(t, 1, resp.Total)
	})

	t.Run("Stored team against inline problems", func(t *testing.T) {
		body := gin.H{
			"team_id":   team.ID,
			"problems":  inlineProblems,
			"min_score": 0.0,
		}
		res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/match-problems", token, body)
		assert.Equal(t, http.StatusOK, res.StatusCode, "body: "+bodyStr)

		var resp struct {
			Matches []struct {
				ProblemID string `json:"problem_id"`
				Rank      int    `json:"rank"`
			} `json:"matches"`
		}
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
		require.NotEmpty(t, resp.Matches)
		assert.Equal(t, "strong-fit", resp.Matches[0].ProblemID)
	})

	t.Run("Stored team against stored batch", func(t *testing.T) {
		res, uploadBody := ts.UploadFile(t, "/api/v1/problems/upload", token, "problems.csv", []byte(uploadCSV))
		require.Equal(t, http.StatusOK, res.StatusCode, "upload should succeed, body: "+uploadBody)

		var upload struct {
			BatchID string `json:"batch_id"`
		}
		require.NoError(t, json.Unmarshal([]byte(uploadBody), &upload))

		body := gin.H{
			"team_id":   team.ID,
			"batch_id":  upload.BatchID,
			"min_score": 0.0,
			"limit":     2,
		}
		res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/match-problems", token, body)
		assert.Equal(t, http.StatusOK, res.StatusCode, "body: "+bodyStr)

		var resp struct {
			Matches []struct {
				Title string `json:"title"`
			} `json:"matches"`
			Total int `json:"total"`
		}
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
		assert.LessOrEqual(t, len(resp.Matches), 2, "limit must cap the result set")
		require.NotEmpty(t, resp.Matches)
		assert.Equal(t, "Clinic scheduler", resp.Matches[0].Title)
	})

	t.Run("Validation and authorization", func(t *testing.T) {
		// Neither team_id nor team_profile.
		res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/match-problems", token, gin.H{
			"problems": inlineProblems,
		})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, "body: "+bodyStr)

		// Another user's team must not be usable.
		res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/match-problems", otherToken, gin.H{
			"team_id":  team.ID,
			"problems": inlineProblems,
		})
		assert.Equal(t, http.StatusNotFound, res.StatusCode, "foreign team must look absent")

		// No token.
		res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/match-problems", "", gin.H{})
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

		// min_score outside [0,1].
		res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/match-problems", token, gin.H{
			"team_id":   team.ID,
			"problems":  inlineProblems,
			"min_score": 1.5,
		})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})
}
