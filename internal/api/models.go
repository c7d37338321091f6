package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/studyplan/internal/domain"
)

// TopicRequest is one topic in a subject payload.
type TopicRequest struct {
	ID             string   `json:"id"              validate:"required,max=128"`
	Title          string   `json:"title"           validate:"required,max=512"`
	EstimatedHours float64  `json:"estimated_hours" validate:"gte=0,lte=10000"`
	Difficulty     string   `json:"difficulty"      validate:"omitempty,oneof=easy medium hard"`
	Completed      bool     `json:"completed"`
	Progress       int      `json:"progress"        validate:"gte=0,lte=100"`
	References     []string `json:"references"`
	Notes          string   `json:"notes"`
}

// SubjectRequest is the payload of PUT /api/subjects/{id} and the element
// type of a preview request. ID is taken from the path on PUT.
type SubjectRequest struct {
	ID         string         `json:"id"          validate:"omitempty,max=128"`
	Name       string         `json:"name"        validate:"required,max=256"`
	ExamDate   string         `json:"exam_date"   validate:"required"`
	DailyHours float64        `json:"daily_hours" validate:"gte=0,lte=24"`
	Topics     []TopicRequest `json:"topics"      validate:"dive"`
}

// PreviewRequest is the payload of POST /api/schedule/preview.
type PreviewRequest struct {
	Subjects []SubjectRequest `json:"subjects" validate:"dive"`
}

// RescheduleRequest is the optional payload of the reschedule endpoint.
// Leaving MissedTaskIDs empty reschedules every overdue task.
type RescheduleRequest struct {
	MissedTaskIDs []uuid.UUID `json:"missed_task_ids"`
}

// CompleteTaskRequest is the payload of the task completion endpoint.
type CompleteTaskRequest struct {
	ActualHours *float64 `json:"actual_hours" validate:"required,gte=0,lte=24"`
}

// PlanResponse is the JSON form of a schedule plan.
type PlanResponse struct {
	ID                string             `json:"id,omitempty"`
	DailyTasks        []domain.DailyTask `json:"daily_tasks"`
	TotalHours        float64            `json:"total_hours"`
	DaysUntilExams    int                `json:"days_until_exams"`
	AverageDailyHours float64            `json:"average_daily_hours"`
	Recommendations   []string           `json:"recommendations"`
	UnscheduledHours  float64            `json:"unscheduled_hours"`
	HasOverrun        bool               `json:"has_overrun"`
	GeneratedAt       time.Time          `json:"generated_at"`
}

// SubjectsResponse lists the user's subjects.
type SubjectsResponse struct {
	Subjects []domain.Subject `json:"subjects"`
}

// ReviewsResponse lists spaced repetition tasks.
type ReviewsResponse struct {
	Reviews []domain.DailyTask `json:"reviews"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// toDomain converts the request to a subject snapshot.
func (s SubjectRequest) toDomain() domain.Subject {
	subject := domain.Subject{
		ID:         s.ID,
		Name:       s.Name,
		ExamDate:   s.ExamDate,
		DailyHours: s.DailyHours,
		Topics:     make([]domain.Topic, len(s.Topics)),
	}
	for i, t := range s.Topics {
		subject.Topics[i] = domain.Topic{
			ID:             t.ID,
			Title:          t.Title,
			EstimatedHours: t.EstimatedHours,
			Difficulty:     domain.Difficulty(t.Difficulty),
			Completed:      t.Completed,
			Progress:       t.Progress,
			References:     append([]string{}, t.References...),
			Notes:          t.Notes,
		}
	}
	return subject
}

func planToResponse(plan *domain.SchedulePlan) PlanResponse {
	resp := PlanResponse{
		DailyTasks:        plan.Tasks,
		TotalHours:        plan.TotalHours,
		DaysUntilExams:    plan.DaysUntilExams,
		AverageDailyHours: plan.AverageDailyHours,
		Recommendations:   plan.Recommendations,
		UnscheduledHours:  plan.UnscheduledHours,
		HasOverrun:        plan.HasOverrun(),
		GeneratedAt:       plan.GeneratedAt,
	}
	if plan.ID != uuid.Nil {
		resp.ID = plan.ID.String()
	}
	if resp.DailyTasks == nil {
		resp.DailyTasks = []domain.DailyTask{}
	}
	if resp.Recommendations == nil {
		resp.Recommendations = []string{}
	}
	return resp
}
