package handlers

import (
	"net/http"

	"mavuso/internal/domain"
	"mavuso/internal/http/middleware"
	"mavuso/internal/utils"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, gin.H{
		"error":      message,
		"code":       code,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Internal detail is
// logged upstream; the client only sees a generic message for 500s.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	case domain.IsForbidden(err):
		respondError(c, http.StatusForbidden, "forbidden", err.Error())
	default:
		if domain.IsInternal(err) {
			utils.LogEvent(middleware.GetRequestID(c), "http", "internal_error", err.Error())
		}
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
