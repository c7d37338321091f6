package domain

import (
	"math"
	"time"
)

// DateLayout is the ISO calendar date format used for exam and task dates.
const DateLayout = time.DateOnly

// Subject is a named collection of topics with an exam date and a daily
// study budget.
type Subject struct {
	ID         string  `json:"id"          yaml:"id"`
	Name       string  `json:"name"        yaml:"name"`
	ExamDate   string  `json:"exam_date"   yaml:"exam_date"` // YYYY-MM-DD
	Topics     []Topic `json:"topics"      yaml:"topics"`
	DailyHours float64 `json:"daily_hours" yaml:"daily_hours"`
	Progress   float64 `json:"progress"    yaml:"progress"` // derived, 0-100
}

// DisplayName returns the name, falling back to the ID.
func (s Subject) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}

// ParseExamDate parses the exam date in the given location.
func (s Subject) ParseExamDate(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, s.ExamDate, loc)
}

// RecomputeProgress sets Progress to the hours-weighted mean of the topic
// progress values. Completed topics count as 100%. A subject without any
// estimated hours keeps a plain mean.
func (s *Subject) RecomputeProgress() {
	if len(s.Topics) == 0 {
		s.Progress = 0
		return
	}

	var weighted, hours, plain float64
	for _, t := range s.Topics {
		p := float64(t.Progress)
		if t.Completed {
			p = 100
		}
		weighted += p * t.EstimatedHours
		hours += t.EstimatedHours
		plain += p
	}

	if hours > 0 {
		s.Progress = math.Round(weighted/hours*100) / 100
		return
	}
	s.Progress = math.Round(plain/float64(len(s.Topics))*100) / 100
}
