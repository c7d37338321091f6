package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/studyplan/internal/domain"
	"github.com/phrazzld/studyplan/internal/platform/logger"
	"github.com/phrazzld/studyplan/internal/redact"
	"github.com/phrazzld/studyplan/internal/store"
)

const planColumns = `id, user_id, tasks, recommendations, total_hours, days_until_exams,
	average_daily_hours, unscheduled_hours, generated_at`

// PostgresPlanStore implements store.PlanStore on PostgreSQL. Tasks and
// recommendations are stored as JSONB documents.
type PostgresPlanStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPlanStore creates a plan store over a connection or transaction
// managed by the caller. A nil logger uses slog.Default().
func NewPostgresPlanStore(db store.DBTX, logger *slog.Logger) *PostgresPlanStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresPlanStore{
		db:     db,
		logger: logger.With(slog.String("component", "plan_store")),
	}
}

var _ store.PlanStore = (*PostgresPlanStore)(nil)

// WithTx implements store.PlanStore.
func (s *PostgresPlanStore) WithTx(tx *sql.Tx) store.PlanStore {
	return &PostgresPlanStore{db: tx, logger: s.logger}
}

// Save implements store.PlanStore. Replacing a plan owned by another user
// reports ErrPlanNotFound.
func (s *PostgresPlanStore) Save(ctx context.Context, plan *domain.SchedulePlan) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if plan == nil || plan.ID == uuid.Nil || plan.UserID == uuid.Nil {
		return fmt.Errorf("%w: plan id and user id are required", store.ErrInvalidEntity)
	}

	tasks := plan.Tasks
	if tasks == nil {
		tasks = []domain.DailyTask{}
	}
	tasksJSON, err := json.Marshal(tasks)
	if err != nil {
		return store.NewStoreError("plan", "save", "failed to encode tasks", err)
	}
	recsJSON, err := json.Marshal(nonNilStrings(plan.Recommendations))
	if err != nil {
		return store.NewStoreError("plan", "save", "failed to encode recommendations", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO plans (`+planColumns+`, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE
		SET tasks = EXCLUDED.tasks,
		    recommendations = EXCLUDED.recommendations,
		    total_hours = EXCLUDED.total_hours,
		    days_until_exams = EXCLUDED.days_until_exams,
		    average_daily_hours = EXCLUDED.average_daily_hours,
		    unscheduled_hours = EXCLUDED.unscheduled_hours,
		    updated_at = EXCLUDED.updated_at
		WHERE plans.user_id = EXCLUDED.user_id
	`, plan.ID, plan.UserID, tasksJSON, recsJSON, plan.TotalHours, plan.DaysUntilExams,
		plan.AverageDailyHours, plan.UnscheduledHours, plan.GeneratedAt.UTC(), time.Now().UTC())
	if err != nil {
		log.Error("failed to save plan",
			slog.String("error", redact.Error(err)),
			slog.String("plan_id", plan.ID.String()))
		return store.NewStoreError("plan", "save", "failed to upsert plan", MapError(err))
	}
	if err := checkRowsAffected(result, store.ErrPlanNotFound); err != nil {
		log.Warn("plan save matched no row owned by user",
			slog.String("plan_id", plan.ID.String()),
			slog.String("user_id", plan.UserID.String()))
		return err
	}

	log.Debug("plan saved",
		slog.String("plan_id", plan.ID.String()),
		slog.Int("tasks", len(tasks)))
	return nil
}

// GetByID implements store.PlanStore.
func (s *PostgresPlanStore) GetByID(ctx context.Context, userID, planID uuid.UUID) (*domain.SchedulePlan, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+planColumns+`
		FROM plans
		WHERE id = $1 AND user_id = $2
	`, planID, userID)
	return s.scanPlan(ctx, row, "get")
}

// GetForUpdate implements store.PlanStore.
func (s *PostgresPlanStore) GetForUpdate(ctx context.Context, userID, planID uuid.UUID) (*domain.SchedulePlan, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+planColumns+`
		FROM plans
		WHERE id = $1 AND user_id = $2
		FOR UPDATE
	`, planID, userID)
	return s.scanPlan(ctx, row, "get_for_update")
}

// GetLatest implements store.PlanStore.
func (s *PostgresPlanStore) GetLatest(ctx context.Context, userID uuid.UUID) (*domain.SchedulePlan, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+planColumns+`
		FROM plans
		WHERE user_id = $1
		ORDER BY generated_at DESC, created_at DESC
		LIMIT 1
	`, userID)
	return s.scanPlan(ctx, row, "get_latest")
}

func (s *PostgresPlanStore) scanPlan(ctx context.Context, row *sql.Row, op string) (*domain.SchedulePlan, error) {
	var (
		plan      domain.SchedulePlan
		tasksJSON []byte
		recsJSON  []byte
	)
	err := row.Scan(&plan.ID, &plan.UserID, &tasksJSON, &recsJSON, &plan.TotalHours,
		&plan.DaysUntilExams, &plan.AverageDailyHours, &plan.UnscheduledHours, &plan.GeneratedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPlanNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to read plan",
			slog.String("error", redact.Error(err)),
			slog.String("operation", op))
		return nil, store.NewStoreError("plan", op, "failed to query plan", MapError(err))
	}

	plan.Tasks = []domain.DailyTask{}
	if err := json.Unmarshal(tasksJSON, &plan.Tasks); err != nil {
		return nil, store.NewStoreError("plan", op, "failed to decode tasks", err)
	}
	plan.Recommendations = []string{}
	if err := json.Unmarshal(recsJSON, &plan.Recommendations); err != nil {
		return nil, store.NewStoreError("plan", op, "failed to decode recommendations", err)
	}
	plan.GeneratedAt = plan.GeneratedAt.UTC()

	return &plan, nil
}
