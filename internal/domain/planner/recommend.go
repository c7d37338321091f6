package planner

import (
	"fmt"

	"github.com/phrazzld/studyplan/internal/domain"
)

// Fixed recommendation texts.
const (
	MsgAllCompleted     = "All topics completed!"
	MsgBurnout          = "Your daily study load is over 8 hours. Consider spreading the work out to avoid burnout."
	MsgIncreaseTime     = "You are studying less than 2 hours a day. Consider increasing your daily study time."
	MsgHardTopicsEarly  = "Tackle hard topics early in the day while your focus is at its best."
	MsgRevisionFocus    = "Your exams are less than two weeks away. Focus on revision and practice problems rather than new material."
	MsgFoundationFocus  = "Your exams are more than two months away. Use the time to build strong foundations."
	MsgLaggingSubjectFm = "%s is behind schedule. Give it extra attention this week."
	MsgPomodoro         = "Study in focused intervals (e.g. 25 minutes on, 5 minutes off) to keep your concentration high."
	MsgDailyReview      = "Spend a few minutes each day reviewing what you studied the day before."
)

// recommend derives guidance from the subject list and horizon. Every rule is
// evaluated independently and applicable messages are returned in a fixed
// order; the load and exam-window rules are each mutually exclusive pairs.
func recommend(subjects []domain.Subject, study studyParams, params *Params) []string {
	var recs []string

	if study.averageHoursPerDay > params.BurnoutHoursPerDay {
		recs = append(recs, MsgBurnout)
	} else if study.averageHoursPerDay < params.LowHoursPerDay {
		recs = append(recs, MsgIncreaseTime)
	}

	if hasPendingHardTopic(subjects) {
		recs = append(recs, MsgHardTopicsEarly)
	}

	if study.daysUntilExams < params.RevisionWindowDays {
		recs = append(recs, MsgRevisionFocus)
	} else if study.daysUntilExams > params.FoundationWindowDays {
		recs = append(recs, MsgFoundationFocus)
	}

	for _, s := range subjects {
		if s.Progress < params.LaggingProgress {
			recs = append(recs, fmt.Sprintf(MsgLaggingSubjectFm, s.DisplayName()))
			break
		}
	}

	return append(recs, MsgPomodoro, MsgDailyReview)
}

func hasPendingHardTopic(subjects []domain.Subject) bool {
	for _, s := range subjects {
		for _, t := range s.Topics {
			if !t.Completed && t.Difficulty == domain.DifficultyHard {
				return true
			}
		}
	}
	return false
}
