package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/studyplan/internal/domain"
	"github.com/phrazzld/studyplan/internal/service"
)

// MockScheduleService implements service.ScheduleService for handler tests.
// A nil function field makes the method return zero values, except Preview
// which falls back to Plan and Err.
type MockScheduleService struct {
	SaveSubjectFn  func(ctx context.Context, userID uuid.UUID, subject *domain.Subject) error
	ListSubjectsFn func(ctx context.Context, userID uuid.UUID) ([]domain.Subject, error)
	GenerateFn     func(ctx context.Context, userID uuid.UUID) (*domain.SchedulePlan, error)
	LatestFn       func(ctx context.Context, userID uuid.UUID) (*domain.SchedulePlan, error)
	RescheduleFn   func(ctx context.Context, userID, planID uuid.UUID, missedIDs []uuid.UUID) (*domain.SchedulePlan, error)
	CompleteTaskFn func(ctx context.Context, userID, planID, taskID uuid.UUID, actualHours float64) (*domain.SchedulePlan, error)
	ReviewsFn      func(ctx context.Context, userID uuid.UUID) ([]domain.DailyTask, error)
	PreviewFn      func(ctx context.Context, subjects []domain.Subject) (*domain.SchedulePlan, error)

	// Default values used when functions aren't explicitly defined
	Plan *domain.SchedulePlan
	Err  error
}

// SaveSubject implements service.ScheduleService
func (m *MockScheduleService) SaveSubject(ctx context.Context, userID uuid.UUID, subject *domain.Subject) error {
	if m.SaveSubjectFn != nil {
		return m.SaveSubjectFn(ctx, userID, subject)
	}
	return m.Err
}

// ListSubjects implements service.ScheduleService
func (m *MockScheduleService) ListSubjects(ctx context.Context, userID uuid.UUID) ([]domain.Subject, error) {
	if m.ListSubjectsFn != nil {
		return m.ListSubjectsFn(ctx, userID)
	}
	return []domain.Subject{}, m.Err
}

// Generate implements service.ScheduleService
func (m *MockScheduleService) Generate(ctx context.Context, userID uuid.UUID) (*domain.SchedulePlan, error) {
	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, userID)
	}
	return m.Plan, m.Err
}

// Latest implements service.ScheduleService
func (m *MockScheduleService) Latest(ctx context.Context, userID uuid.UUID) (*domain.SchedulePlan, error) {
	if m.LatestFn != nil {
		return m.LatestFn(ctx, userID)
	}
	return m.Plan, m.Err
}

// Reschedule implements service.ScheduleService
func (m *MockScheduleService) Reschedule(
	ctx context.Context,
	userID, planID uuid.UUID,
	missedIDs []uuid.UUID,
) (*domain.SchedulePlan, error) {
	if m.RescheduleFn != nil {
		return m.RescheduleFn(ctx, userID, planID, missedIDs)
	}
	return m.Plan, m.Err
}

// CompleteTask implements service.ScheduleService
func (m *MockScheduleService) CompleteTask(
	ctx context.Context,
	userID, planID, taskID uuid.UUID,
	actualHours float64,
) (*domain.SchedulePlan, error) {
	if m.CompleteTaskFn != nil {
		return m.CompleteTaskFn(ctx, userID, planID, taskID, actualHours)
	}
	return m.Plan, m.Err
}

// Reviews implements service.ScheduleService
func (m *MockScheduleService) Reviews(ctx context.Context, userID uuid.UUID) ([]domain.DailyTask, error) {
	if m.ReviewsFn != nil {
		return m.ReviewsFn(ctx, userID)
	}
	return []domain.DailyTask{}, m.Err
}

// Preview implements service.ScheduleService
func (m *MockScheduleService) Preview(ctx context.Context, subjects []domain.Subject) (*domain.SchedulePlan, error) {
	if m.PreviewFn != nil {
		return m.PreviewFn(ctx, subjects)
	}
	return m.Plan, m.Err
}

var _ service.ScheduleService = (*MockScheduleService)(nil)
