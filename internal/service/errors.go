package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
)

// ServiceError wraps unexpected failures from a service operation with context.
//
// Error handling principles:
// 1. Expected conditions (validation, not found, cancellation) pass through
// unwrapped so callers can check them with errors.Is
// 2. Unexpected errors are wrapped in a ServiceError naming the operation
// 3. The API layer maps errors to appropriate HTTP status codes
type ServiceError struct {
	// Service is the service that failed (e.g., "task")
	Service string
	// Op is the operation that failed (e.g., "insert")
	Op string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
	}
	return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err for the given service operation.
// It returns nil for a nil err, and returns expected conditions unchanged.
func NewServiceError(service, op string, err error) error {
	if err == nil {
		return nil
	}

	if isExpected(err) {
		return err
	}

	return &ServiceError{
		Service: service,
		Op:      op,
		Err:     err,
	}
}

func isExpected(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, store.ErrNotFound) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
