package domain

import (
	"time"

	"github.com/google/uuid"
)

// SchedulePlan is the output of a schedule generation.
//
// TotalHours, DaysUntilExams and AverageDailyHours are computed once at
// generation. Rescheduling carries them over unchanged even though the task
// list changes.
type SchedulePlan struct {
	ID                uuid.UUID   `json:"id"`
	UserID            uuid.UUID   `json:"user_id"`
	Tasks             []DailyTask `json:"daily_tasks"`
	TotalHours        float64     `json:"total_hours"`
	DaysUntilExams    int         `json:"days_until_exams"`
	AverageDailyHours float64     `json:"average_daily_hours"`
	Recommendations   []string    `json:"recommendations"`
	// UnscheduledHours is the work that did not fit before the exam horizon.
	UnscheduledHours float64   `json:"unscheduled_hours"`
	GeneratedAt      time.Time `json:"generated_at"`
}

// Clone returns a deep copy of the plan.
func (p *SchedulePlan) Clone() *SchedulePlan {
	if p == nil {
		return nil
	}
	out := *p
	out.Tasks = make([]DailyTask, len(p.Tasks))
	for i, t := range p.Tasks {
		out.Tasks[i] = t.Clone()
	}
	out.Recommendations = append([]string{}, p.Recommendations...)
	return &out
}

// FindTask returns the index of the task with the given ID, or -1.
func (p *SchedulePlan) FindTask(id uuid.UUID) int {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// HasOverrun reports whether some work did not fit before the exams.
func (p *SchedulePlan) HasOverrun() bool {
	return p.UnscheduledHours > 0
}
