package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/studyplan/internal/domain"
	"github.com/phrazzld/studyplan/internal/service"
	"github.com/phrazzld/studyplan/internal/service/auth"
	"github.com/phrazzld/studyplan/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"wrong token type", auth.ErrWrongTokenType, http.StatusUnauthorized},
		{"plan not found", store.ErrPlanNotFound, http.StatusNotFound},
		{"wrapped topic not found", service.NewServiceError("op", "m", store.ErrTopicNotFound), http.StatusNotFound},
		{"task not found", fmt.Errorf("%w: id", service.ErrTaskNotFound), http.StatusNotFound},
		{"already completed", service.ErrTaskAlreadyCompleted, http.StatusConflict},
		{"duplicate", store.ErrDuplicate, http.StatusConflict},
		{"schedule input", domain.NewScheduleInputError("A", "exam_date", "is required", nil), http.StatusBadRequest},
		{"invalid entity", fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrInvalidProgress), http.StatusBadRequest},
		{"invalid hours", service.ErrInvalidHours, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"transaction failed", store.ErrTransactionFailed, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "An unexpected error occurred",
		GetSafeErrorMessage(errors.New("pq: relation plans does not exist")))
	assert.Equal(t, "Subject not found", GetSafeErrorMessage(store.ErrSubjectNotFound))
	assert.Equal(t, "Progress must be between 0 and 100",
		GetSafeErrorMessage(fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrInvalidProgress)))
	assert.Equal(t, `Invalid schedule input: subject "Bio" exam_date is required`,
		GetSafeErrorMessage(domain.NewScheduleInputError("Bio", "exam_date", "is required", nil)))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}
