package routes

import (
	"psfinder_backend/internal/handlers"
	"psfinder_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes wires every HTTP route. Auth-protected groups sit behind
// the bearer-token middleware; health and metrics stay open.
func RegisterRoutes(router *gin.Engine, h *handlers.HandlerContainer) {
	router.GET("/health", h.Health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/me", middleware.AuthMiddleware(), h.Auth.Me)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		teams := protected.Group("/teams")
		{
			teams.POST("", h.Teams.Create)
			teams.GET("", h.Teams.List)
			teams.GET("/:id", h.Teams.Get)
			teams.PUT("/:id", h.Teams.Update)
			teams.DELETE("/:id", h.Teams.Delete)
		}

		problems := protected.Group("/problems")
		{
			problems.POST("/upload", h.Problems.Upload)
			problems.GET("", h.Problems.List)
			problems.GET("/:id", h.Problems.Get)
		}

		protected.POST("/match-problems", h.Matching.Match)

		analytics := protected.Group("/analytics")
		{
			analytics.GET("/categories", h.Analytics.Categories)
			analytics.GET("/matching-stats", h.Analytics.MatchingStats)
		}
	}
}
