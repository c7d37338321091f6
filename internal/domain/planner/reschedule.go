package planner

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/studyplan/internal/domain"
)

// Messages that replace the first two recommendations after rescheduling.
const (
	MsgRescheduled  = "Your schedule has been adjusted to make up for missed tasks. Don't worry, you can still catch up!"
	MsgConsistency  = "Try to stay consistent with your daily study sessions to avoid falling further behind."
	replacedRecsLen = 2
)

// reschedule removes the missed tasks and spreads their hours evenly over
// the tasks dated after today. Tasks dated today or earlier are untouched.
// When no future task exists the missed hours are dropped.
//
// TotalHours, DaysUntilExams and AverageDailyHours are carried over from the
// input plan without recomputation.
func reschedule(plan *domain.SchedulePlan, missed []domain.DailyTask, now time.Time) *domain.SchedulePlan {
	out := plan.Clone()

	missedIDs := make(map[uuid.UUID]struct{}, len(missed))
	var missedHours float64
	for _, m := range missed {
		if _, dup := missedIDs[m.ID]; dup {
			continue
		}
		missedIDs[m.ID] = struct{}{}
		missedHours += m.EstimatedHours
	}

	today := startOfDay(now).Format(domain.DateLayout)

	kept := make([]domain.DailyTask, 0, len(out.Tasks))
	var future []int
	for _, t := range out.Tasks {
		if _, ok := missedIDs[t.ID]; ok {
			continue
		}
		if t.Date > today {
			future = append(future, len(kept))
		}
		kept = append(kept, t)
	}

	if len(future) > 0 {
		extra := missedHours / float64(len(future))
		for _, i := range future {
			kept[i].EstimatedHours += extra
		}
	}

	recs := []string{MsgRescheduled, MsgConsistency}
	if len(plan.Recommendations) > replacedRecsLen {
		recs = append(recs, plan.Recommendations[replacedRecsLen:]...)
	}

	out.Tasks = kept
	out.Recommendations = recs
	return out
}

// MissedTasks returns the uncompleted study tasks dated before today.
func MissedTasks(plan *domain.SchedulePlan, now time.Time) []domain.DailyTask {
	if plan == nil {
		return nil
	}
	today := startOfDay(now).Format(domain.DateLayout)

	var missed []domain.DailyTask
	for _, t := range plan.Tasks {
		if !t.Completed && t.Date < today {
			missed = append(missed, t.Clone())
		}
	}
	return missed
}
