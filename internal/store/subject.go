package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/studyplan/internal/domain"
)

// SubjectStore persists a user's subjects and their topics.
type SubjectStore interface {
	// Save inserts or replaces the subject and its full topic list.
	// Topics not present in subject.Topics are removed.
	// Must run in a transaction for atomicity; see RunInTransaction.
	Save(ctx context.Context, userID uuid.UUID, subject *domain.Subject) error

	// ListByUser returns every subject of the user with topics in their
	// stored order. Returns an empty slice when the user has none.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Subject, error)

	// GetSubject returns one subject with its topics.
	// Returns ErrSubjectNotFound if it does not exist.
	GetSubject(ctx context.Context, userID uuid.UUID, subjectID string) (*domain.Subject, error)

	// UpdateTopic writes a topic's progress and completion state.
	// Returns ErrTopicNotFound if the topic does not exist.
	UpdateTopic(ctx context.Context, userID uuid.UUID, subjectID string, topic *domain.Topic) error

	// UpdateSubjectProgress stores a recomputed aggregate progress.
	// Returns ErrSubjectNotFound if the subject does not exist.
	UpdateSubjectProgress(ctx context.Context, userID uuid.UUID, subjectID string, progress float64) error

	// WithTx returns a SubjectStore bound to tx.
	WithTx(tx *sql.Tx) SubjectStore
}
