package handlers

import (
	"net/http"

	"psfinder_backend/internal/services"
	"psfinder_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MatchingHandler struct {
	*BaseHandler
	matchingService services.MatchingService
}

func NewMatchingHandler(base *BaseHandler, matchingService services.MatchingService) *MatchingHandler {
	return &MatchingHandler{BaseHandler: base, matchingService: matchingService}
}

// Match handles POST /match-problems. The team comes either inline as
// team_profile or as a stored team_id; problems either inline or from the
// stored corpus.
func (h *MatchingHandler) Match(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.MatchRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.matchingService.Match(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
