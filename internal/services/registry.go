package services

import (
	"psfinder_backend/internal/cache"
	"psfinder_backend/internal/config"
	"psfinder_backend/internal/loader"
	"psfinder_backend/internal/narrative"
	"psfinder_backend/internal/repositories"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	AuthService      AuthService
	TeamService      TeamService
	ProblemService   ProblemService
	MatchingService  MatchingService
	AnalyticsService AnalyticsService
}

// NewServiceContainer wires repositories and services together. The
// annotator may be backed by a nil generator, which disables narrative
// text without disabling matching.
func NewServiceContainer(cfg *config.Config, annotator *narrative.Annotator, c *cache.Cache) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	teamRepo := repositories.NewTeamRepository()
	problemRepo := repositories.NewProblemRepository()
	analyticsRepo := repositories.NewAnalyticsRepository()

	stats := NewMatchStats()
	matching := NewMatchingService(teamRepo, problemRepo, annotator, stats, cfg.Matching, cfg.Narrative.Concurrency)
	problems := NewProblemService(problemRepo, teamRepo, loader.New(cfg.Upload.SkillDelimiter, cfg.Upload.AllowedExtensions...), matching, c)

	return &ServiceContainer{
		AuthService:      NewAuthService(userRepo),
		TeamService:      NewTeamService(teamRepo),
		ProblemService:   problems,
		MatchingService:  matching,
		AnalyticsService: NewAnalyticsService(analyticsRepo, problemRepo, teamRepo, c, stats),
	}
}
