package handler

import (
	"errors"
	"net/http"

	"sugoroku/backend/internal/sugoroku"

	"github.com/gin-gonic/gin"
)

// respondEngineError translates engine error kinds into HTTP responses.
func respondEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sugoroku.ErrRoomNotFound), errors.Is(err, sugoroku.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, sugoroku.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, sugoroku.ErrInvalidState),
		errors.Is(err, sugoroku.ErrRoomFull),
		errors.Is(err, sugoroku.ErrCapacityExceeded),
		errors.Is(err, sugoroku.ErrAlreadyOwnsOpenRoom):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
