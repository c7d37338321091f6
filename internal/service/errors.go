package service

import (
	"errors"
	"fmt"
)

// Common service errors. The API layer maps them to HTTP statuses.
var (
	// ErrTaskNotFound indicates a task ID that is not part of the plan.
	ErrTaskNotFound = errors.New("task not found in plan")

	// ErrTaskAlreadyCompleted indicates a second completion of the same task.
	ErrTaskAlreadyCompleted = errors.New("task already completed")

	// ErrInvalidHours indicates a negative or non-finite hour count.
	ErrInvalidHours = errors.New("actual hours must be a non-negative number")
)

// ServiceError wraps errors from the schedule service with the failed
// operation, so callers can use errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g. "generate", "complete_task")
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
