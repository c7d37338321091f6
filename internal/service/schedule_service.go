package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/studyplan/internal/domain"
	"github.com/phrazzld/studyplan/internal/domain/planner"
	"github.com/phrazzld/studyplan/internal/platform/logger"
	"github.com/phrazzld/studyplan/internal/redact"
	"github.com/phrazzld/studyplan/internal/store"
)

// ScheduleService provides the planning use cases for a single user.
type ScheduleService interface {
	// SaveSubject creates or replaces a subject with its topics.
	SaveSubject(ctx context.Context, userID uuid.UUID, subject *domain.Subject) error

	// ListSubjects returns the user's subjects with their topics.
	ListSubjects(ctx context.Context, userID uuid.UUID) ([]domain.Subject, error)

	// Generate builds a new plan from the user's stored subjects and saves it.
	// An invalid exam date surfaces as domain.ErrInvalidScheduleInput.
	Generate(ctx context.Context, userID uuid.UUID) (*domain.SchedulePlan, error)

	// Latest returns the user's most recent plan, or store.ErrPlanNotFound.
	Latest(ctx context.Context, userID uuid.UUID) (*domain.SchedulePlan, error)

	// Reschedule drops the missed tasks from a stored plan and spreads their
	// hours over the remaining future tasks. With no IDs given, every
	// uncompleted task dated before today counts as missed.
	Reschedule(ctx context.Context, userID, planID uuid.UUID, missedIDs []uuid.UUID) (*domain.SchedulePlan, error)

	// CompleteTask marks a task as done and advances the topic and subject
	// progress in one transaction.
	CompleteTask(
		ctx context.Context,
		userID, planID, taskID uuid.UUID,
		actualHours float64,
	) (*domain.SchedulePlan, error)

	// Reviews returns the spaced repetition tasks for every completed topic.
	Reviews(ctx context.Context, userID uuid.UUID) ([]domain.DailyTask, error)

	// Preview runs the engine on the given subjects without touching storage.
	Preview(ctx context.Context, subjects []domain.Subject) (*domain.SchedulePlan, error)
}

type scheduleService struct {
	db       *sql.DB
	subjects store.SubjectStore
	plans    store.PlanStore
	planner  planner.Service
	clock    func() time.Time
	logger   *slog.Logger
}

// NewScheduleService creates a ScheduleService. It returns an error if any
// of the required dependencies are nil.
func NewScheduleService(
	db *sql.DB,
	subjects store.SubjectStore,
	plans store.PlanStore,
	engine planner.Service,
	logger *slog.Logger,
) (ScheduleService, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: db cannot be nil", domain.ErrValidation)
	}
	if subjects == nil {
		return nil, fmt.Errorf("%w: subjects cannot be nil", domain.ErrValidation)
	}
	if plans == nil {
		return nil, fmt.Errorf("%w: plans cannot be nil", domain.ErrValidation)
	}
	if engine == nil {
		engine = planner.NewDefaultService()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &scheduleService{
		db:       db,
		subjects: subjects,
		plans:    plans,
		planner:  engine,
		clock:    time.Now,
		logger:   logger.With(slog.String("component", "schedule_service")),
	}, nil
}

// SaveSubject implements ScheduleService.
func (s *scheduleService) SaveSubject(ctx context.Context, userID uuid.UUID, subject *domain.Subject) error {
	if subject != nil {
		subject.RecomputeProgress()
	}
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.subjects.WithTx(tx).Save(ctx, userID, subject)
	})
	if err != nil {
		return NewServiceError("save_subject", "failed to save subject", err)
	}
	return nil
}

// ListSubjects implements ScheduleService.
func (s *scheduleService) ListSubjects(ctx context.Context, userID uuid.UUID) ([]domain.Subject, error) {
	subjects, err := s.subjects.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewServiceError("list_subjects", "failed to load subjects", err)
	}
	return subjects, nil
}

// Generate implements ScheduleService.
func (s *scheduleService) Generate(ctx context.Context, userID uuid.UUID) (*domain.SchedulePlan, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	subjects, err := s.subjects.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to load subjects", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("generate", "failed to load subjects", err)
	}

	plan, err := s.planner.GenerateSchedule(subjects, s.clock())
	if err != nil {
		log.Warn("schedule generation rejected input", slog.String("error", err.Error()))
		return nil, NewServiceError("generate", "invalid schedule input", err)
	}
	plan.ID = uuid.New()
	plan.UserID = userID

	if err := s.plans.Save(ctx, plan); err != nil {
		log.Error("failed to save plan", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("generate", "failed to save plan", err)
	}

	log.Info("schedule generated",
		slog.String("plan_id", plan.ID.String()),
		slog.Int("tasks", len(plan.Tasks)),
		slog.Int("days_until_exams", plan.DaysUntilExams),
		slog.Float64("unscheduled_hours", plan.UnscheduledHours))
	return plan, nil
}

// Latest implements ScheduleService.
func (s *scheduleService) Latest(ctx context.Context, userID uuid.UUID) (*domain.SchedulePlan, error) {
	plan, err := s.plans.GetLatest(ctx, userID)
	if err != nil {
		return nil, NewServiceError("latest", "failed to load plan", err)
	}
	return plan, nil
}

// Reschedule implements ScheduleService.
func (s *scheduleService) Reschedule(
	ctx context.Context,
	userID, planID uuid.UUID,
	missedIDs []uuid.UUID,
) (*domain.SchedulePlan, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.clock()

	var out *domain.SchedulePlan
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		plans := s.plans.WithTx(tx)

		plan, err := plans.GetForUpdate(ctx, userID, planID)
		if err != nil {
			return err
		}

		missed, err := resolveMissed(plan, missedIDs, now)
		if err != nil {
			return err
		}

		out, err = s.planner.RescheduleAfterMissedTasks(plan, missed, now)
		if err != nil {
			return err
		}
		return plans.Save(ctx, out)
	})
	if err != nil {
		return nil, NewServiceError("reschedule", "failed to reschedule plan", err)
	}
	s.invalidatePlans(ctx, userID)

	log.Info("plan rescheduled",
		slog.String("plan_id", planID.String()),
		slog.Int("tasks", len(out.Tasks)))
	return out, nil
}

// invalidatePlans drops cached plans for the user once a transactional
// write has committed.
func (s *scheduleService) invalidatePlans(ctx context.Context, userID uuid.UUID) {
	if inv, ok := s.plans.(store.PlanInvalidator); ok {
		inv.Invalidate(ctx, userID)
	}
}

// resolveMissed maps IDs to the plan's tasks, or detects overdue tasks when
// ids is empty.
func resolveMissed(plan *domain.SchedulePlan, ids []uuid.UUID, now time.Time) ([]domain.DailyTask, error) {
	if len(ids) == 0 {
		return planner.MissedTasks(plan, now), nil
	}
	missed := make([]domain.DailyTask, 0, len(ids))
	for _, id := range ids {
		i := plan.FindTask(id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
		}
		missed = append(missed, plan.Tasks[i])
	}
	return missed, nil
}

// CompleteTask implements ScheduleService.
func (s *scheduleService) CompleteTask(
	ctx context.Context,
	userID, planID, taskID uuid.UUID,
	actualHours float64,
) (*domain.SchedulePlan, error) {
	if actualHours < 0 || math.IsNaN(actualHours) || math.IsInf(actualHours, 0) {
		return nil, NewServiceError("complete_task", "invalid hours", ErrInvalidHours)
	}

	var out *domain.SchedulePlan
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		plans := s.plans.WithTx(tx)
		subjects := s.subjects.WithTx(tx)

		plan, err := plans.GetForUpdate(ctx, userID, planID)
		if err != nil {
			return err
		}
		i := plan.FindTask(taskID)
		if i < 0 {
			return ErrTaskNotFound
		}
		task := plan.Tasks[i]
		if task.Completed {
			return ErrTaskAlreadyCompleted
		}

		if task.Kind == domain.TaskKindReview || task.SubjectID == "" {
			_, plan.Tasks[i] = planner.ApplyTaskCompletion(domain.Topic{}, task, actualHours)
		} else {
			plan.Tasks[i], err = s.advanceTopic(ctx, subjects, userID, task, actualHours)
			if err != nil {
				return err
			}
		}

		out = plan
		return plans.Save(ctx, plan)
	})
	if err != nil {
		return nil, NewServiceError("complete_task", "failed to complete task", err)
	}
	s.invalidatePlans(ctx, userID)

	logger.FromContextOrDefault(ctx, s.logger).Info("task completed",
		slog.String("plan_id", planID.String()),
		slog.String("task_id", taskID.String()),
		slog.Float64("actual_hours", actualHours))
	return out, nil
}

// advanceTopic applies a study task's completion to its topic and updates
// the subject's aggregate progress.
func (s *scheduleService) advanceTopic(
	ctx context.Context,
	subjects store.SubjectStore,
	userID uuid.UUID,
	task domain.DailyTask,
	actualHours float64,
) (domain.DailyTask, error) {
	subject, err := subjects.GetSubject(ctx, userID, task.SubjectID)
	if err != nil {
		return task, err
	}

	idx := -1
	for j := range subject.Topics {
		if subject.Topics[j].ID == task.TopicID {
			idx = j
			break
		}
	}
	if idx < 0 {
		return task, store.ErrTopicNotFound
	}

	topic, done := planner.ApplyTaskCompletion(subject.Topics[idx], task, actualHours)
	if err := subjects.UpdateTopic(ctx, userID, subject.ID, &topic); err != nil {
		return task, err
	}

	subject.Topics[idx] = topic
	subject.RecomputeProgress()
	if err := subjects.UpdateSubjectProgress(ctx, userID, subject.ID, subject.Progress); err != nil {
		return task, err
	}
	return done, nil
}

// Reviews implements ScheduleService.
func (s *scheduleService) Reviews(ctx context.Context, userID uuid.UUID) ([]domain.DailyTask, error) {
	subjects, err := s.subjects.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewServiceError("reviews", "failed to load subjects", err)
	}

	now := s.clock()
	reviews := []domain.DailyTask{}
	for _, subject := range subjects {
		tasks, err := s.planner.CalculateSubjectReviews(subject, now)
		if err != nil {
			return nil, NewServiceError("reviews", "failed to build review schedule", err)
		}
		reviews = append(reviews, tasks...)
	}
	return reviews, nil
}

// Preview implements ScheduleService.
func (s *scheduleService) Preview(ctx context.Context, subjects []domain.Subject) (*domain.SchedulePlan, error) {
	plan, err := s.planner.GenerateSchedule(subjects, s.clock())
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Debug("preview rejected input", slog.String("error", err.Error()))
		return nil, NewServiceError("preview", "invalid schedule input", err)
	}
	return plan, nil
}
