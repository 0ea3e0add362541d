package handlers

import (
	"net/http"

	"psfinder_backend/internal/config"
	"psfinder_backend/internal/services"
	"psfinder_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ProblemHandler struct {
	*BaseHandler
	problemService services.ProblemService
}

func NewProblemHandler(base *BaseHandler, problemService services.ProblemService) *ProblemHandler {
	return &ProblemHandler{BaseHandler: base, problemService: problemService}
}

// Upload handles POST /problems/upload?team_id=<id>. The multipart field
// is named "file". With a team_id the stored batch is matched against
// that team right away; without one the parsed problems come back
// unscored.
func (h *ProblemHandler) Upload(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Missing multipart field 'file'"))
		return
	}

	if maxSize := config.GetConfig().Upload.MaxSize; maxSize > 0 && fileHeader.Size > maxSize {
		h.HandleServiceError(c, apperrors.NewBadRequestError("File exceeds the upload size limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	resp, err := h.problemService.Upload(
		c.Request.Context(), h.GetDB(c),
		userID, c.Query("team_id"), fileHeader.Filename, file,
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get handles GET /problems/:id.
func (h *ProblemHandler) Get(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	problem, err := h.problemService.GetByID(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, problem)
}

// List handles GET /problems.
func (h *ProblemHandler) List(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	problems, err := h.problemService.List(h.GetDB(c), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, problems)
}
