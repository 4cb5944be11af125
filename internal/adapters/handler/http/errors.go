package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
)

// respondError maps domain errors to status codes. Anything unknown is
// reported as a 500 without leaking the cause.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrListNameEmpty),
		errors.Is(err, domain.ErrInvalidSection),
		errors.Is(err, domain.ErrInvalidDay),
		errors.Is(err, domain.ErrDayIndexOutOfRange),
		errors.Is(err, domain.ErrItemIndexOutOfRange),
		errors.Is(err, domain.ErrHabitItemInvalid),
		errors.Is(err, domain.ErrPasswordTooShort):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrListNotFound),
		errors.Is(err, domain.ErrHabitItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, domain.ErrAuthDisabled):
		c.JSON(http.StatusNotFound, gin.H{"error": "login is not enabled"})
	case errors.Is(err, domain.ErrRecordMalformed):
		_ = c.Error(err)
		c.JSON(http.StatusConflict, gin.H{"error": "stored data is unreadable"})
	case errors.Is(err, domain.ErrStorage):
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
