package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"psfinder_backend/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser inserts a user, hashing the raw password.
func CreateUser(t *testing.T, db *gorm.DB, email, password, fullName string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err, "failed to hash test password")

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error, "failed to create test user")
	return user
}

// CreateAndLoginUser creates a user with a unique email and logs in through
// the API, returning the bearer token.
func CreateAndLoginUser(t *testing.T, ts *TestServer) (string, *models.User) {
	email := fmt.Sprintf("user_%d@test.com", time.Now().UnixNano())
	password := "password123"
	user := CreateUser(t, ts.DB, email, password, "Test User")

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	res, bodyStr := ts.SendForm(t, http.MethodPost, "/api/v1/auth/login", form)
	require.Equal(t, http.StatusOK, res.StatusCode, "login should succeed, body: "+bodyStr)

	var loginResponse struct {
		Token string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &loginResponse))
	require.NotEmpty(t, loginResponse.Token, "token should not be empty")

	return loginResponse.Token, user
}

// CreateTeam inserts a team profile directly into the database.
func CreateTeam(t *testing.T, db *gorm.DB, ownerID, name string, skills []models.TeamSkill) *models.TeamProfile {
	team := &models.TeamProfile{
		OwnerID:         ownerID,
		Name:            name,
		TeamSize:        4,
		ExperienceLevel: "Intermediate",
	}
	team.SetSkills(skills)
	team.SetPreferredDomains([]string{"healthcare"})
	require.NoError(t, db.Create(team).Error, "failed to create test team")
	return team
}
