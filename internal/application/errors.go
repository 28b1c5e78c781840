package application

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Validation errors are terminal for the request; only ErrUnavailable is
// safe for the caller to retry.
var (
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidState         = errors.New("operation not valid for current status")
	ErrNotFound             = errors.New("not found")
	ErrInvalidOrder         = errors.New("checkpoint order is not the next in sequence")
	ErrNotPending           = errors.New("checkpoint is not pending")
	ErrNotSubmitted         = errors.New("checkpoint is not submitted")
	ErrEmptyMessage         = errors.New("message body is empty")
	ErrExceedsBudget        = errors.New("amount exceeds agreed budget")
	ErrNotCompleted         = errors.New("payment is not completed")
	ErrHasCompletedPayments = errors.New("project has completed payments")
	ErrUnavailable          = errors.New("temporarily unavailable")
)

// asAppError translates persistence failures into the engine's error kinds.
// Anything that is not a missing record is treated as transient.
func asAppError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrUnavailable
	default:
		return errors.Join(ErrUnavailable, err)
	}
}
