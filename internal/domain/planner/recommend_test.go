package planner

import (
	"fmt"
	"testing"

	"github.com/phrazzld/studyplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRecommend(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	easy := domain.Subject{ID: "bio", Name: "Biology", Progress: 50, Topics: []domain.Topic{
		{ID: "b1", Difficulty: domain.DifficultyEasy},
	}}
	hard := domain.Subject{ID: "chem", Name: "Chemistry", Progress: 80, Topics: []domain.Topic{
		{ID: "c1", Difficulty: domain.DifficultyHard},
	}}
	doneHard := domain.Subject{ID: "phys", Name: "Physics", Progress: 100, Topics: []domain.Topic{
		{ID: "p1", Difficulty: domain.DifficultyHard, Completed: true},
	}}

	testCases := []struct {
		name     string
		subjects []domain.Subject
		study    studyParams
		want     []string
	}{
		{
			name:     "only the fixed tips in a neutral window",
			subjects: []domain.Subject{easy},
			study:    studyParams{daysUntilExams: 30, averageHoursPerDay: 4},
			want:     []string{MsgPomodoro, MsgDailyReview},
		},
		{
			name:     "every rule in order",
			subjects: []domain.Subject{hard, {ID: "lit", Progress: 10}, {ID: "art", Name: "Art", Progress: 0}},
			study:    studyParams{daysUntilExams: 5, averageHoursPerDay: 9},
			want: []string{
				MsgBurnout,
				MsgHardTopicsEarly,
				MsgRevisionFocus,
				fmt.Sprintf(MsgLaggingSubjectFm, "lit"),
				MsgPomodoro,
				MsgDailyReview,
			},
		},
		{
			name:     "light load and distant exams",
			subjects: []domain.Subject{easy},
			study:    studyParams{daysUntilExams: 61, averageHoursPerDay: 1.5},
			want:     []string{MsgIncreaseTime, MsgFoundationFocus, MsgPomodoro, MsgDailyReview},
		},
		{
			name:     "thresholds are exclusive",
			subjects: []domain.Subject{{ID: "x", Name: "X", Progress: 30}},
			study:    studyParams{daysUntilExams: 14, averageHoursPerDay: 8},
			want:     []string{MsgPomodoro, MsgDailyReview},
		},
		{
			name:     "completed hard topics do not count",
			subjects: []domain.Subject{doneHard},
			study:    studyParams{daysUntilExams: 60, averageHoursPerDay: 2},
			want:     []string{MsgPomodoro, MsgDailyReview},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, recommend(tc.subjects, tc.study, params))
		})
	}
}
