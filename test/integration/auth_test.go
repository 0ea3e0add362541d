package integration_test

import (
	"net/http"
	"net/url"
	"testing"

	"psfinder_backend/test/helpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAuth(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	t.Run("Signup", func(t *testing.T) {
		body := gin.H{
			"email":     "signup@test.com",
			"password":  "password123",
			"full_name": "Signup User",
		}
		res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/signup", "", body)
		assert.Equal(t, http.StatusCreated, res.StatusCode, "signup should succeed, body: "+bodyStr)
		assert.Contains(t, bodyStr, `"email":"signup@test.com"`)
		assert.NotContains(t, bodyStr, "password", "password must never appear in responses")

		// Duplicate email
		res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/signup", "", body)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, "duplicate email should fail, body: "+bodyStr)
		assert.Contains(t, bodyStr, "ALREADY_EXISTS")

		// Weak password
		res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
			"email":     "weak@test.com",
			"password":  "short",
			"full_name": "Weak Password",
		})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, "weak password should fail, body: "+bodyStr)
	})

	t.Run("Login", func(t *testing.T) {
		helpers.CreateUser(t, ts.DB, "login@test.com", "password123", "Login User")

		form := url.Values{}
		form.Set("username", "login@test.com")
		form.Set("password", "password123")
		res, bodyStr := ts.SendForm(t, http.MethodPost, "/api/v1/auth/login", form)
		assert.Equal(t, http.StatusOK, res.StatusCode, "login should succeed, body: "+bodyStr)
		assert.Contains(t, bodyStr, `"access_token"`)
		assert.Contains(t, bodyStr, `"token_type":"bearer"`)

		form.Set("password", "wrong-password")
		res, bodyStr = ts.SendForm(t, http.MethodPost, "/api/v1/auth/login", form)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, "wrong password should fail, body: "+bodyStr)

		form.Set("username", "nobody@test.com")
		res, _ = ts.SendForm(t, http.MethodPost, "/api/v1/auth/login", form)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, "unknown email should fail")
	})

	t.Run("Me", func(t *testing.T) {
		token, user := helpers.CreateAndLoginUser(t, ts)

		res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", token, nil)
		assert.Equal(t, http.StatusOK, res.StatusCode, "me should succeed, body: "+bodyStr)
		assert.Contains(t, bodyStr, user.Email)

		res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, "me should require a token")

		res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, "garbage token should be rejected")
	})
}
