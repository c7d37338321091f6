package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/studyplan/internal/domain"
)

// PlanStore persists generated schedule plans.
type PlanStore interface {
	// Save inserts the plan or replaces the stored plan with the same ID.
	// plan.ID and plan.UserID must be set.
	Save(ctx context.Context, plan *domain.SchedulePlan) error

	// GetByID returns the user's plan with the given ID.
	// Returns ErrPlanNotFound if it does not exist or belongs to another user.
	// It takes no row lock; use GetForUpdate before modifying the plan.
	GetByID(ctx context.Context, userID, planID uuid.UUID) (*domain.SchedulePlan, error)

	// GetForUpdate is GetByID with a row-level lock (SELECT ... FOR UPDATE).
	// Call it inside a transaction when the plan will be rewritten, so
	// concurrent read-modify-write cycles on the same plan serialize.
	GetForUpdate(ctx context.Context, userID, planID uuid.UUID) (*domain.SchedulePlan, error)

	// GetLatest returns the user's most recently generated plan.
	// Returns ErrPlanNotFound if the user has none.
	GetLatest(ctx context.Context, userID uuid.UUID) (*domain.SchedulePlan, error)

	// WithTx returns a PlanStore bound to tx.
	WithTx(tx *sql.Tx) PlanStore
}

// PlanInvalidator is implemented by plan stores that cache reads. Writers
// that save through a transaction-bound store call Invalidate once the
// transaction has committed; invalidating earlier lets a concurrent reader
// re-cache the pre-commit row.
type PlanInvalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID)
}
