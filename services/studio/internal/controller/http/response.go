package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"studio-portfolio/pkg/logger"
	"studio-portfolio/pkg/middleware"
	"studio-portfolio/services/studio/internal/entity"
	"studio-portfolio/services/studio/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// respondError maps usecase errors to status codes. Anything unrecognised is
// logged and reported as a 500 without details.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, usecase.ErrInvalidID):
		status = http.StatusBadRequest
	case errors.Is(err, usecase.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, usecase.ErrForbidden), errors.Is(err, usecase.ErrAccountDisabled):
		status = http.StatusForbidden
	case errors.Is(err, usecase.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, usecase.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, usecase.ErrFileTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, usecase.ErrUnsupportedMedia):
		status = http.StatusUnsupportedMediaType
	}

	if status == http.StatusInternalServerError {
		log.Error("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(status, ErrorResponse{Error: "Internal server error"})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func viewerFrom(c *gin.Context) entity.Viewer {
	return entity.Viewer{
		UserID: c.GetString(middleware.ContextUserID),
		Role:   entity.UserRole(c.GetString(middleware.ContextUserRole)),
	}
}

// pageQuery reads page and limit. Unparseable values become zero and are
// replaced with defaults by the usecase.
func pageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return page, limit
}

func boolQuery(c *gin.Context, key string) (*bool, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, false
	}
	return &v, true
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
