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

// PostgresSubjectStore implements store.SubjectStore on PostgreSQL.
type PostgresSubjectStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSubjectStore creates a subject store over a connection or
// transaction managed by the caller. A nil logger uses slog.Default().
func NewPostgresSubjectStore(db store.DBTX, logger *slog.Logger) *PostgresSubjectStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSubjectStore{
		db:     db,
		logger: logger.With(slog.String("component", "subject_store")),
	}
}

var _ store.SubjectStore = (*PostgresSubjectStore)(nil)

// WithTx implements store.SubjectStore.
func (s *PostgresSubjectStore) WithTx(tx *sql.Tx) store.SubjectStore {
	return &PostgresSubjectStore{db: tx, logger: s.logger}
}

// Save implements store.SubjectStore.
func (s *PostgresSubjectStore) Save(ctx context.Context, userID uuid.UUID, subject *domain.Subject) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := validateSubject(subject); err != nil {
		log.Warn("subject validation failed", slog.String("error", err.Error()))
		return err
	}

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subjects (user_id, id, name, exam_date, daily_hours, progress, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, id) DO UPDATE
		SET name = EXCLUDED.name,
		    exam_date = EXCLUDED.exam_date,
		    daily_hours = EXCLUDED.daily_hours,
		    progress = EXCLUDED.progress,
		    updated_at = EXCLUDED.updated_at
	`, userID, subject.ID, subject.Name, subject.ExamDate, subject.DailyHours, subject.Progress, now)
	if err != nil {
		log.Error("failed to upsert subject",
			slog.String("error", redact.Error(err)),
			slog.String("subject_id", subject.ID))
		return store.NewStoreError("subject", "save", "failed to upsert subject", MapError(err))
	}

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM topics WHERE user_id = $1 AND subject_id = $2`, userID, subject.ID); err != nil {
		return store.NewStoreError("subject", "save", "failed to clear topics", MapError(err))
	}

	for i := range subject.Topics {
		t := &subject.Topics[i]
		refs, err := json.Marshal(nonNilStrings(t.References))
		if err != nil {
			return store.NewStoreError("topic", "save", "failed to encode references", err)
		}
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO topics (user_id, subject_id, id, position, title, estimated_hours,
			                    difficulty, completed, progress, refs, notes, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`, userID, subject.ID, t.ID, i, t.Title, t.EstimatedHours,
			string(t.Difficulty), t.Completed, t.Progress, refs, t.Notes, now)
		if err != nil {
			log.Error("failed to insert topic",
				slog.String("error", redact.Error(err)),
				slog.String("subject_id", subject.ID),
				slog.String("topic_id", t.ID))
			return store.NewStoreError("topic", "save", "failed to insert topic", MapError(err))
		}
	}

	log.Debug("subject saved",
		slog.String("subject_id", subject.ID),
		slog.Int("topics", len(subject.Topics)))
	return nil
}

// ListByUser implements store.SubjectStore.
func (s *PostgresSubjectStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Subject, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Earliest exam first, then ID. The planner keeps this order for ties
	// and names the first lagging subject in it.
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, to_char(exam_date, 'YYYY-MM-DD'), daily_hours, progress
		FROM subjects
		WHERE user_id = $1
		ORDER BY exam_date, id
	`, userID)
	if err != nil {
		log.Error("failed to list subjects", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("subject", "list", "failed to query subjects", MapError(err))
	}
	subjects, err := scanSubjects(rows)
	if err != nil {
		return nil, store.NewStoreError("subject", "list", "failed to read subjects", err)
	}
	if len(subjects) == 0 {
		return subjects, nil
	}

	topics, err := s.topics(ctx, `
		SELECT subject_id, id, title, estimated_hours, difficulty, completed, progress, refs, notes
		FROM topics
		WHERE user_id = $1
		ORDER BY subject_id, position
	`, userID)
	if err != nil {
		return nil, store.NewStoreError("topic", "list", "failed to read topics", err)
	}

	for i := range subjects {
		subjects[i].Topics = topics[subjects[i].ID]
		if subjects[i].Topics == nil {
			subjects[i].Topics = []domain.Topic{}
		}
	}

	log.Debug("subjects listed", slog.Int("count", len(subjects)))
	return subjects, nil
}

// GetSubject implements store.SubjectStore.
func (s *PostgresSubjectStore) GetSubject(ctx context.Context, userID uuid.UUID, subjectID string) (*domain.Subject, error) {
	var subject domain.Subject
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, to_char(exam_date, 'YYYY-MM-DD'), daily_hours, progress
		FROM subjects
		WHERE user_id = $1 AND id = $2
	`, userID, subjectID).Scan(&subject.ID, &subject.Name, &subject.ExamDate, &subject.DailyHours, &subject.Progress)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSubjectNotFound
		}
		return nil, store.NewStoreError("subject", "get", "failed to query subject", MapError(err))
	}

	topics, err := s.topics(ctx, `
		SELECT subject_id, id, title, estimated_hours, difficulty, completed, progress, refs, notes
		FROM topics
		WHERE user_id = $1 AND subject_id = $2
		ORDER BY position
	`, userID, subjectID)
	if err != nil {
		return nil, store.NewStoreError("topic", "get", "failed to read topics", err)
	}
	subject.Topics = topics[subjectID]
	if subject.Topics == nil {
		subject.Topics = []domain.Topic{}
	}

	return &subject, nil
}

// UpdateTopic implements store.SubjectStore.
func (s *PostgresSubjectStore) UpdateTopic(
	ctx context.Context,
	userID uuid.UUID,
	subjectID string,
	topic *domain.Topic,
) error {
	if err := topic.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE topics
		SET completed = $1, progress = $2, updated_at = $3
		WHERE user_id = $4 AND subject_id = $5 AND id = $6
	`, topic.Completed, topic.Progress, time.Now().UTC(), userID, subjectID, topic.ID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update topic",
			slog.String("error", redact.Error(err)),
			slog.String("topic_id", topic.ID))
		return store.NewStoreError("topic", "update", "failed to update topic", MapError(err))
	}
	return checkRowsAffected(result, store.ErrTopicNotFound)
}

// UpdateSubjectProgress implements store.SubjectStore.
func (s *PostgresSubjectStore) UpdateSubjectProgress(
	ctx context.Context,
	userID uuid.UUID,
	subjectID string,
	progress float64,
) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE subjects
		SET progress = $1, updated_at = $2
		WHERE user_id = $3 AND id = $4
	`, progress, time.Now().UTC(), userID, subjectID)
	if err != nil {
		return store.NewStoreError("subject", "update", "failed to update progress", MapError(err))
	}
	return checkRowsAffected(result, store.ErrSubjectNotFound)
}

// topics runs a topic query and groups the rows by subject ID.
func (s *PostgresSubjectStore) topics(ctx context.Context, query string, args ...any) (map[string][]domain.Topic, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	bySubject := make(map[string][]domain.Topic)
	for rows.Next() {
		var (
			subjectID  string
			t          domain.Topic
			difficulty string
			refs       []byte
		)
		if err := rows.Scan(&subjectID, &t.ID, &t.Title, &t.EstimatedHours, &difficulty,
			&t.Completed, &t.Progress, &refs, &t.Notes); err != nil {
			return nil, err
		}
		t.Difficulty = domain.Difficulty(difficulty)
		t.References = []string{}
		if len(refs) > 0 {
			if err := json.Unmarshal(refs, &t.References); err != nil {
				return nil, fmt.Errorf("failed to decode references of topic %s: %w", t.ID, err)
			}
		}
		bySubject[subjectID] = append(bySubject[subjectID], t)
	}
	return bySubject, rows.Err()
}

func scanSubjects(rows *sql.Rows) ([]domain.Subject, error) {
	defer func() { _ = rows.Close() }()

	subjects := []domain.Subject{}
	for rows.Next() {
		var s domain.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.ExamDate, &s.DailyHours, &s.Progress); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

func validateSubject(subject *domain.Subject) error {
	if subject == nil {
		return fmt.Errorf("%w: subject is nil", store.ErrInvalidEntity)
	}
	if subject.ID == "" {
		return fmt.Errorf("%w: subject id is required", store.ErrInvalidEntity)
	}
	if _, err := subject.ParseExamDate(time.UTC); err != nil {
		return fmt.Errorf("%w: exam date %q: %v", store.ErrInvalidEntity, subject.ExamDate, err)
	}
	seen := make(map[string]struct{}, len(subject.Topics))
	for _, t := range subject.Topics {
		if t.ID == "" {
			return fmt.Errorf("%w: topic id is required", store.ErrInvalidEntity)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("%w: duplicate topic id %q", store.ErrInvalidEntity, t.ID)
		}
		seen[t.ID] = struct{}{}
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%w: topic %q: %v", store.ErrInvalidEntity, t.ID, err)
		}
	}
	return nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
