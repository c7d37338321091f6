package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/studyplan/internal/domain"
	"github.com/phrazzld/studyplan/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var (
	subjectColumns = []string{"id", "name", "exam_date", "daily_hours", "progress"}
	topicColumns   = []string{"subject_id", "id", "title", "estimated_hours", "difficulty", "completed", "progress", "refs", "notes"}
)

func TestSubjectStoreSave(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	s := NewPostgresSubjectStore(db, nil)
	userID := uuid.New()

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

	mock.ExpectExec("INSERT INTO subjects").
		WithArgs(userID.String(), "math", "Math", "2025-06-25", 2.0, 0.0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM topics").
		WithArgs(userID.String(), "math").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO topics").
		WithArgs(userID.String(), "math", "t1", sqlmock.AnyArg(), "Integrals", 3.0, "hard", false, sqlmock.AnyArg(), []byte(`[]`), "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO topics").
		WithArgs(userID.String(), "math", "t2", sqlmock.AnyArg(), "Sets", 1.0, "", false, sqlmock.AnyArg(), []byte(`["ch. 1"]`), "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Save(context.Background(), userID, subject))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectStoreSaveRejectsInvalidSubjects(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	s := NewPostgresSubjectStore(db, nil)

	testCases := []struct {
		name    string
		subject *domain.Subject
	}{
		{"nil", nil},
		{"missing id", &domain.Subject{ExamDate: "2025-06-25"}},
		{"bad exam date", &domain.Subject{ID: "s", ExamDate: "next week"}},
		{"duplicate topic", &domain.Subject{ID: "s", ExamDate: "2025-06-25", Topics: []domain.Topic{{ID: "a"}, {ID: "a"}}}},
		{"invalid difficulty", &domain.Subject{ID: "s", ExamDate: "2025-06-25", Topics: []domain.Topic{{ID: "a", Difficulty: "brutal"}}}},
	}

	for _, tc := range testCases {
		err := s.Save(context.Background(), uuid.New(), tc.subject)
		assert.ErrorIs(t, err, store.ErrInvalidEntity, tc.name)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectStoreSaveMapsDatabaseErrors(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	s := NewPostgresSubjectStore(db, nil)

	mock.ExpectExec("INSERT INTO subjects").WillReturnError(errors.New("connection reset"))

	err := s.Save(context.Background(), uuid.New(), &domain.Subject{ID: "s", ExamDate: "2025-06-25"})
	var storeErr *store.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "subject", storeErr.Entity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectStoreListByUser(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	s := NewPostgresSubjectStore(db, nil)
	userID := uuid.New()

	// subjects come back earliest exam first
	mock.ExpectQuery(`FROM subjects\s+WHERE user_id = \$1\s+ORDER BY exam_date, id`).
		WithArgs(userID.String()).
		WillReturnRows(sqlmock.NewRows(subjectColumns).
			AddRow("math", "Math", "2025-06-25", 2.0, 10.0).
			AddRow("art", "Art", "2025-07-01", 0.0, 0.0))
	mock.ExpectQuery("FROM topics").
		WithArgs(userID.String()).
		WillReturnRows(sqlmock.NewRows(topicColumns).
			AddRow("math", "t1", "Integrals", 3.0, "hard", false, 20, []byte(`["https://example.com"]`), "").
			AddRow("math", "t2", "Sets", 1.0, "easy", true, 100, []byte(`[]`), "done"))

	subjects, err := s.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, subjects, 2)

	math := subjects[0]
	assert.Equal(t, "2025-06-25", math.ExamDate)
	assert.InDelta(t, 10, math.Progress, 1e-9)
	require.Len(t, math.Topics, 2)
	assert.Equal(t, domain.DifficultyHard, math.Topics[0].Difficulty)
	assert.Equal(t, 20, math.Topics[0].Progress)
	assert.Equal(t, []string{"https://example.com"}, math.Topics[0].References)
	assert.True(t, math.Topics[1].Completed)
	assert.Equal(t, "done", math.Topics[1].Notes)

	assert.NotNil(t, subjects[1].Topics)
	assert.Empty(t, subjects[1].Topics)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectStoreListByUserEmpty(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	s := NewPostgresSubjectStore(db, nil)

	mock.ExpectQuery("FROM subjects").WillReturnRows(sqlmock.NewRows(subjectColumns))

	subjects, err := s.ListByUser(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, subjects)
	assert.Empty(t, subjects)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectStoreGetSubjectNotFound(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	s := NewPostgresSubjectStore(db, nil)

	mock.ExpectQuery("FROM subjects").WillReturnRows(sqlmock.NewRows(subjectColumns))

	_, err := s.GetSubject(context.Background(), uuid.New(), "missing")
	assert.ErrorIs(t, err, store.ErrSubjectNotFound)
	assert.True(t, store.IsNotFoundError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectStoreGetSubject(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	s := NewPostgresSubjectStore(db, nil)
	userID := uuid.New()

	mock.ExpectQuery("FROM subjects").
		WithArgs(userID.String(), "math").
		WillReturnRows(sqlmock.NewRows(subjectColumns).AddRow("math", "Math", "2025-06-25", 2.0, 0.0))
	mock.ExpectQuery("FROM topics").
		WithArgs(userID.String(), "math").
		WillReturnRows(sqlmock.NewRows(topicColumns).
			AddRow("math", "t1", "Integrals", 3.0, "hard", false, 0, []byte(`[]`), ""))

	subject, err := s.GetSubject(context.Background(), userID, "math")
	require.NoError(t, err)
	assert.Equal(t, "Math", subject.Name)
	require.Len(t, subject.Topics, 1)
	assert.Equal(t, "t1", subject.Topics[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectStoreUpdates(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	s := NewPostgresSubjectStore(db, nil)
	userID := uuid.New()
	topic := &domain.Topic{ID: "t1", EstimatedHours: 3, Progress: 67}

	mock.ExpectExec("UPDATE topics").
		WithArgs(false, 67, sqlmock.AnyArg(), userID.String(), "math", "t1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE topics").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE subjects").
		WithArgs(42.5, sqlmock.AnyArg(), userID.String(), "math").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE subjects").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ctx := context.Background()
	assert.NoError(t, s.UpdateTopic(ctx, userID, "math", topic))
	assert.ErrorIs(t, s.UpdateTopic(ctx, userID, "math", topic), store.ErrTopicNotFound)
	assert.NoError(t, s.UpdateSubjectProgress(ctx, userID, "math", 42.5))
	assert.ErrorIs(t, s.UpdateSubjectProgress(ctx, userID, "math", 42.5), store.ErrSubjectNotFound)

	invalid := &domain.Topic{ID: "t1", Progress: 120}
	assert.ErrorIs(t, s.UpdateTopic(ctx, userID, "math", invalid), store.ErrInvalidEntity)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectStoreWithTx(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	s := NewPostgresSubjectStore(db, nil)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE subjects").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		return s.WithTx(tx).UpdateSubjectProgress(ctx, userID, "math", 50)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
