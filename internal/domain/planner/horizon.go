package planner

import (
	"math"
	"time"

	"github.com/phrazzld/studyplan/internal/domain"
)

// studyParams holds the horizon values derived from the subject list.
type studyParams struct {
	daysUntilExams     int
	totalDailyHours    float64
	averageHoursPerDay float64
}

// computeStudyParams derives the planning horizon and daily capacity.
//
// daysUntilExams is the whole number of days from today to the earliest exam,
// clamped to at least 1 so past-due exams still get one day of work.
// Every subject must carry a parseable exam date.
func computeStudyParams(subjects []domain.Subject, now time.Time, params *Params) (studyParams, error) {
	if len(subjects) == 0 {
		return studyParams{}, domain.NewScheduleInputError("", "subjects", "must not be empty", nil)
	}

	today := startOfDay(now)

	var earliest time.Time
	var total float64
	for i, s := range subjects {
		if s.ExamDate == "" {
			return studyParams{}, domain.NewScheduleInputError(s.DisplayName(), "exam_date", "is required", nil)
		}
		exam, err := s.ParseExamDate(now.Location())
		if err != nil {
			return studyParams{}, domain.NewScheduleInputError(s.DisplayName(), "exam_date", "is not a calendar date", err)
		}
		if i == 0 || exam.Before(earliest) {
			earliest = exam
		}
		total += dailyHours(s, params)
	}

	days := daysBetween(today, earliest)
	if days < 1 {
		days = 1
	}

	return studyParams{
		daysUntilExams:     days,
		totalDailyHours:    total,
		averageHoursPerDay: total / float64(len(subjects)),
	}, nil
}

// dailyHours returns the subject's budget, or the default when unset.
func dailyHours(s domain.Subject, params *Params) float64 {
	if s.DailyHours > 0 {
		return s.DailyHours
	}
	return params.DefaultDailyHours
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b, ignoring clock time and
// DST shifts.
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Round(ub.Sub(ua).Hours() / 24))
}

// formatDate renders today + offset days as an ISO date.
func formatDate(today time.Time, offset int) string {
	return today.AddDate(0, 0, offset).Format(domain.DateLayout)
}
