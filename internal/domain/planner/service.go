// Package planner turns subject snapshots into day-by-day study schedules,
// rebalances them after missed tasks and derives spaced repetition reviews.
//
// Every operation is a pure function of its arguments and the supplied
// as-of time. Nothing is persisted and no input is mutated, so a Service is
// safe for concurrent use.
package planner

import (
	"errors"
	"time"

	"github.com/phrazzld/studyplan/internal/domain"
)

// Common errors
var (
	ErrNilPlan = errors.New("schedule plan cannot be nil")
)

// Service defines the planning operations
type Service interface {
	// GenerateSchedule builds a plan from the subjects as of now.
	// Returns a *domain.ScheduleInputError (matching
	// domain.ErrInvalidScheduleInput) when a subject's exam date is missing
	// or unparseable. When no uncompleted topic exists the plan is empty and
	// carries a single MsgAllCompleted recommendation.
	GenerateSchedule(subjects []domain.Subject, now time.Time) (*domain.SchedulePlan, error)

	// RescheduleAfterMissedTasks removes missed tasks from plan and spreads
	// their hours over the tasks dated after now.
	RescheduleAfterMissedTasks(
		plan *domain.SchedulePlan,
		missed []domain.DailyTask,
		now time.Time,
	) (*domain.SchedulePlan, error)

	// CalculateReviewSchedule emits review tasks for completed topics.
	CalculateReviewSchedule(completed []domain.Topic, now time.Time) ([]domain.DailyTask, error)

	// CalculateSubjectReviews emits review tasks for the subject's completed
	// topics, tagged with the subject so IDs stay unique across subjects.
	CalculateSubjectReviews(subject domain.Subject, now time.Time) ([]domain.DailyTask, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new planner with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new planner with custom parameters
func NewServiceWithParams(params *Params) Service {
	if params == nil {
		params = NewDefaultParams()
	}
	return &defaultService{
		params: params,
	}
}

// GenerateSchedule implements Service.
func (s *defaultService) GenerateSchedule(subjects []domain.Subject, now time.Time) (*domain.SchedulePlan, error) {
	items := prioritize(flattenTopics(subjects), s.params)
	if len(items) == 0 {
		return &domain.SchedulePlan{
			Tasks:           []domain.DailyTask{},
			Recommendations: []string{MsgAllCompleted},
			GeneratedAt:     now,
		}, nil
	}

	study, err := computeStudyParams(subjects, now, s.params)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, it := range items {
		total += it.remainingHours
	}

	alloc := allocate(items, study, s.params, now)
	tasks := alloc.tasks
	if tasks == nil {
		tasks = []domain.DailyTask{}
	}

	return &domain.SchedulePlan{
		Tasks:             tasks,
		TotalHours:        total,
		DaysUntilExams:    study.daysUntilExams,
		AverageDailyHours: study.averageHoursPerDay,
		Recommendations:   recommend(subjects, study, s.params),
		UnscheduledHours:  alloc.unscheduledHours,
		GeneratedAt:       now,
	}, nil
}

// RescheduleAfterMissedTasks implements Service.
func (s *defaultService) RescheduleAfterMissedTasks(
	plan *domain.SchedulePlan,
	missed []domain.DailyTask,
	now time.Time,
) (*domain.SchedulePlan, error) {
	if plan == nil {
		return nil, ErrNilPlan
	}
	return reschedule(plan, missed, now), nil
}

// CalculateReviewSchedule implements Service.
func (s *defaultService) CalculateReviewSchedule(completed []domain.Topic, now time.Time) ([]domain.DailyTask, error) {
	return reviewTasks("", "", completed, now, s.params), nil
}

// CalculateSubjectReviews implements Service.
func (s *defaultService) CalculateSubjectReviews(subject domain.Subject, now time.Time) ([]domain.DailyTask, error) {
	var completed []domain.Topic
	for _, t := range subject.Topics {
		if t.Completed {
			completed = append(completed, t)
		}
	}
	return reviewTasks(subject.ID, subject.DisplayName(), completed, now, s.params), nil
}
