package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidScheduleInput is returned when a subject snapshot cannot be
	// scheduled, e.g. because its exam date is missing or unparseable.
	// Use errors.As with *ScheduleInputError to find the offending subject.
	ErrInvalidScheduleInput = errors.New("invalid schedule input")

	// ErrInvalidDifficulty is returned when a difficulty is not easy, medium or hard.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrInvalidProgress is returned when a progress percentage is outside 0-100.
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ScheduleInputError identifies the subject whose data prevented a schedule
// from being generated.
type ScheduleInputError struct {
	// Subject is the subject name (or ID when the name is empty).
	Subject string
	// Field is the offending field, e.g. "exam_date".
	Field string
	// Reason describes the problem.
	Reason string
	// Err is the underlying parse error, if any.
	Err error
}

// Error implements the error interface.
func (e *ScheduleInputError) Error() string {
	msg := fmt.Sprintf("%s: subject %q: %s %s", ErrInvalidScheduleInput, e.Subject, e.Field, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap lets errors.Is match ErrInvalidScheduleInput.
func (e *ScheduleInputError) Unwrap() error {
	return ErrInvalidScheduleInput
}

// NewScheduleInputError builds a ScheduleInputError for the given subject.
func NewScheduleInputError(subject, field, reason string, err error) *ScheduleInputError {
	return &ScheduleInputError{
		Subject: subject,
		Field:   field,
		Reason:  reason,
		Err:     err,
	}
}
