package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karyalink/engagement-go/internal/application"
	"github.com/karyalink/engagement-go/pkg/response"
)

// writeError maps engine error kinds onto HTTP statuses. Validation errors
// are terminal for the request; only 503 signals a retryable condition.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: application.ErrNotFound.Error()})
	case errors.Is(err, application.ErrForbidden):
		c.JSON(http.StatusForbidden, response.ErrorResponse{Error: application.ErrForbidden.Error()})
	case errors.Is(err, application.ErrInvalidState),
		errors.Is(err, application.ErrInvalidOrder),
		errors.Is(err, application.ErrNotPending),
		errors.Is(err, application.ErrNotSubmitted),
		errors.Is(err, application.ErrHasCompletedPayments):
		c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, application.ErrEmptyMessage),
		errors.Is(err, application.ErrExceedsBudget),
		errors.Is(err, application.ErrNotCompleted):
		c.JSON(http.StatusUnprocessableEntity, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, application.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{Error: application.ErrUnavailable.Error()})
	default:
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
	}
}
