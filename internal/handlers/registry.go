package handlers

import (
	"psfinder_backend/internal/services"
	"psfinder_backend/internal/validator"
)

// HandlerContainer holds all HTTP handlers.
type HandlerContainer struct {
	Auth      *AuthHandler
	Teams     *TeamHandler
	Problems  *ProblemHandler
	Matching  *MatchingHandler
	Analytics *AnalyticsHandler
	Health    *HealthHandler
}

func NewHandlerContainer(sc *services.ServiceContainer, v *validator.Validator) *HandlerContainer {
	base := NewBaseHandler(v)

	return &HandlerContainer{
		Auth:      NewAuthHandler(base, sc.AuthService),
		Teams:     NewTeamHandler(base, sc.TeamService),
		Problems:  NewProblemHandler(base, sc.ProblemService),
		Matching:  NewMatchingHandler(base, sc.MatchingService),
		Analytics: NewAnalyticsHandler(base, sc.AnalyticsService),
		Health:    NewHealthHandler(),
	}
}
