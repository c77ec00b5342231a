package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tomboulier/choix-stage-desar/internal/api/validation"
	"github.com/tomboulier/choix-stage-desar/pkg/response"
)

// MustGetID reads the :id path parameter and checks it is a uuid.
// On failure a 400 response is written and ok is false; callers return.
func MustGetID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.BadRequest(c, 10001, "invalid id")
		return "", false
	}
	return id, true
}

// bindFailed answers a binding error. Oversized bodies are left to the
// BodyLimit middleware, which turns them into a 413.
func bindFailed(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		_ = c.Error(err)
		return
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "validation failed", validation.FormatErrors(err))
}
