package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/httperr"
	"github.com/BruksfildServices01/equipment-lending/internal/suggest"
)

// writeError maps use case errors onto the HTTP error envelope.
func (uc *UseCases) writeError(c *gin.Context, err error) {
	var fe domain.FieldErrors
	var ext *suggest.ExternalServiceError

	switch {
	case errors.As(err, &fe):
		httperr.Validation(c, "Some fields are invalid.", fe)

	case errors.Is(err, domain.ErrNotFound):
		httperr.NotFound(c, "equipment_not_found", "Equipment not found.")

	case errors.Is(err, domain.ErrInvalidTransition):
		httperr.Conflict(c, "invalid_state", "This action is not allowed for the equipment's current status.")

	case errors.Is(err, domain.ErrStatusConflict):
		httperr.Conflict(c, "status_conflict", "The equipment was changed by someone else. Reload and try again.")

	case errors.Is(err, domain.ErrDuplicate):
		httperr.Conflict(c, "equipment_exists", "Equipment already exists.")

	case errors.As(err, &ext):
		httperr.BadGateway(c, "suggestion_unavailable", "Replacement suggestions are unavailable right now.")

	default:
		uc.log().ErrorContext(c.Request.Context(), "request failed",
			"path", c.FullPath(),
			"error", err,
		)
		httperr.Internal(c, "storage_error", "Could not complete the operation. Please try again.")
	}
}
