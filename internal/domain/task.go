package domain

import (
	"strconv"

	"github.com/google/uuid"
)

// TaskKind discriminates the variants of DailyTask.
type TaskKind string

// Possible task kinds
const (
	TaskKindStudy  TaskKind = "study"
	TaskKindReview TaskKind = "review"
)

// Namespaces for deterministic task IDs. Regenerating a plan from the same
// inputs yields the same IDs for the same topic and date. Topic IDs are only
// unique within a subject, so the subject ID is part of every name.
var (
	studyTaskNamespace  = uuid.MustParse("6f1c2d0e-8b4a-5c3e-9a71-2f5d8e4b1c60")
	reviewTaskNamespace = uuid.MustParse("b3e0a9d4-1f27-5e88-8c4d-7a6b2e91f035")
)

// StudyTaskID derives the ID of the study task for a subject's topic on date.
func StudyTaskID(subjectID, topicID, date string) uuid.UUID {
	return uuid.NewSHA1(studyTaskNamespace, []byte(subjectID+"|"+topicID+"|"+date))
}

// ReviewTaskID derives the ID of the review task for a subject's topic at
// the given day offset.
func ReviewTaskID(subjectID, topicID string, offsetDays int) uuid.UUID {
	return uuid.NewSHA1(reviewTaskNamespace, []byte(subjectID+"|"+topicID+"|"+strconv.Itoa(offsetDays)))
}

// DailyTask is one day's scheduled work on one topic.
type DailyTask struct {
	ID             uuid.UUID  `json:"id"`
	Kind           TaskKind   `json:"kind"`
	Date           string     `json:"date"` // YYYY-MM-DD
	TopicID        string     `json:"topic_id"`
	TopicTitle     string     `json:"topic_title"`
	SubjectID      string     `json:"subject_id,omitempty"`
	SubjectName    string     `json:"subject_name,omitempty"`
	EstimatedHours float64    `json:"estimated_hours"`
	Difficulty     Difficulty `json:"difficulty"`
	Completed      bool       `json:"completed"`
	ActualHours    *float64   `json:"actual_hours,omitempty"`
	References     []string   `json:"references"`
	Notes          string     `json:"notes,omitempty"`
}

// Clone returns a copy that shares no slices or pointers with t.
func (t DailyTask) Clone() DailyTask {
	out := t
	if t.ActualHours != nil {
		v := *t.ActualHours
		out.ActualHours = &v
	}
	out.References = append([]string{}, t.References...)
	return out
}
