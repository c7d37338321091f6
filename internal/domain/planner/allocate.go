package planner

import (
	"time"

	"github.com/phrazzld/studyplan/internal/domain"
)

// hoursEpsilon absorbs floating point residue when subtracting allocations.
const hoursEpsilon = 1e-9

// allocation is the result of packing work items into days.
type allocation struct {
	tasks            []domain.DailyTask
	unscheduledHours float64
}

// allocate greedily packs prioritized work into successive days, starting
// today, until all work is placed or the exam horizon is reached.
//
// Each day has study.totalDailyHours of capacity. Topics are scanned strictly
// in priority order (first-fit, not best-fit): a topic gets
// min(remaining, capacity left) hours unless that is below the minimum
// session, in which case it is skipped for the day. Work left when the
// horizon runs out is dropped from the plan and reported as unscheduled.
//
// The working list is a copy; the caller's items are never modified.
func allocate(items []workItem, study studyParams, params *Params, now time.Time) allocation {
	working := make([]workItem, len(items))
	copy(working, items)

	today := startOfDay(now)
	var tasks []domain.DailyTask

	for day := 0; len(working) > 0 && day < study.daysUntilExams; day++ {
		date := formatDate(today, day)
		capacity := study.totalDailyHours

		next := make([]workItem, 0, len(working))
		for _, it := range working {
			if capacity <= hoursEpsilon {
				next = append(next, it)
				continue
			}

			hours := min(it.remainingHours, capacity)
			if hours < params.MinSessionHours {
				next = append(next, it)
				continue
			}

			tasks = append(tasks, newStudyTask(it, date, hours))
			capacity -= hours
			it.remainingHours -= hours

			if it.remainingHours > hoursEpsilon {
				next = append(next, it)
			}
		}
		working = next
	}

	var leftover float64
	for _, it := range working {
		leftover += it.remainingHours
	}

	return allocation{tasks: tasks, unscheduledHours: leftover}
}

// newStudyTask builds the task for one day of work on a topic.
func newStudyTask(it workItem, date string, hours float64) domain.DailyTask {
	return domain.DailyTask{
		ID:             domain.StudyTaskID(it.subjectID, it.topic.ID, date),
		Kind:           domain.TaskKindStudy,
		Date:           date,
		TopicID:        it.topic.ID,
		TopicTitle:     it.topic.Title,
		SubjectID:      it.subjectID,
		SubjectName:    it.subjectName,
		EstimatedHours: hours,
		Difficulty:     it.topic.Difficulty,
		References:     append([]string{}, it.topic.References...),
		Notes:          it.topic.Notes,
	}
}
