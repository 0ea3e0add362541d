package handlers

import (
	"net/http"

	"psfinder_backend/internal/config"

	"github.com/gin-gonic/gin"
)

const appVersion = "1.0.0"

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"version":     appVersion,
		"environment": config.GetConfig().Server.Env,
	})
}
