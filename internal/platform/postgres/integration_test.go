package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/studyplan/internal/domain"
	"github.com/phrazzld/studyplan/internal/platform/postgres"
	"github.com/phrazzld/studyplan/internal/store"
	"github.com/phrazzld/studyplan/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStoresRoundTrip(t *testing.T) {
	db := testdb.Open(t)
	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		roundTrip(t, tx)
	})
}

func roundTrip(t *testing.T, tx *sql.Tx) {
	ctx := context.Background()
	userID := uuid.New()

	subjects := postgres.NewPostgresSubjectStore(tx, nil)
	plans := postgres.NewPostgresPlanStore(tx, nil)

	subject := &domain.Subject{
		ID:         "math",
		Name:       "Math",
		ExamDate:   "2025-06-25",
		DailyHours: 2,
		Topics: []domain.Topic{
			{ID: "t1", Title: "Integrals", EstimatedHours: 3, Difficulty: domain.DifficultyHard},
			{ID: "t2", Title: "Sets", EstimatedHours: 1, References: []string{"ch. 1"}},
		},
	}

	require.NoError(t, subjects.Save(ctx, userID, subject))

	listed, err := subjects.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "2025-06-25", listed[0].ExamDate)
	require.Len(t, listed[0].Topics, 2)
	assert.Equal(t, "t1", listed[0].Topics[0].ID)
	assert.Equal(t, []string{"ch. 1"}, listed[0].Topics[1].References)

	topic := listed[0].Topics[0]
	topic.Progress = 50
	require.NoError(t, subjects.UpdateTopic(ctx, userID, "math", &topic))
	require.NoError(t, subjects.UpdateSubjectProgress(ctx, userID, "math", 37.5))

	got, err := subjects.GetSubject(ctx, userID, "math")
	require.NoError(t, err)
	assert.Equal(t, 50, got.Topics[0].Progress)
	assert.InDelta(t, 37.5, got.Progress, 1e-9)

	plan := &domain.SchedulePlan{
		ID:              uuid.New(),
		UserID:          userID,
		Tasks:           []domain.DailyTask{},
		Recommendations: []string{"All topics completed!"},
		GeneratedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, plans.Save(ctx, plan))

	latest, err := plans.GetLatest(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, latest.ID)
	assert.True(t, plan.GeneratedAt.Equal(latest.GeneratedAt))

	_, err = plans.GetByID(ctx, uuid.New(), plan.ID)
	assert.ErrorIs(t, err, store.ErrPlanNotFound)

	locked, err := plans.GetForUpdate(ctx, userID, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, locked.ID)

	foreign := plan.Clone()
	foreign.UserID = uuid.New()
	assert.ErrorIs(t, plans.Save(ctx, foreign), store.ErrPlanNotFound)
}
