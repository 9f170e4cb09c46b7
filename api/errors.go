package api

import (
	"errors"
	"net/http"

	"github.com/airtix/airtix/internal/domain"
	"github.com/gin-gonic/gin"
)

// writeError maps domain errors onto HTTP statuses. Validation failures
// carry the full message list so clients can show every problem at once.
func writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Messages})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNoSeats),
		errors.Is(err, domain.ErrSeatTaken),
		errors.Is(err, domain.ErrFlightClosed),
		errors.Is(err, domain.ErrFlightDeparted),
		errors.Is(err, domain.ErrAlreadyCancelled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUniquenessExhausted):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// callerID reads the authenticated user from the X-User-ID header set by
// the gateway. Requests without it are rejected; there is no fallback
// identity.
func callerID(c *gin.Context) (int64, bool) {
	id, err := parseID(c.GetHeader("X-User-ID"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid X-User-ID header"})
		return 0, false
	}
	return id, true
}
