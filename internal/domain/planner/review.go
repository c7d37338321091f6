package planner

import (
	"math"
	"time"

	"github.com/phrazzld/studyplan/internal/domain"
)

// reviewTitlePrefix marks review tasks in their title.
const reviewTitlePrefix = "Review: "

// reviewTasks emits one review task per configured offset for every topic.
// Dates are relative to now, not to when the topic was completed; IDs depend
// only on subject, topic and offset.
func reviewTasks(subjectID, subjectName string, topics []domain.Topic, now time.Time, params *Params) []domain.DailyTask {
	today := startOfDay(now)
	tasks := make([]domain.DailyTask, 0, len(topics)*len(params.ReviewOffsets))

	for _, t := range topics {
		hours := math.Max(params.MinReviewHours, t.EstimatedHours*params.ReviewFraction)
		for _, offset := range params.ReviewOffsets {
			tasks = append(tasks, domain.DailyTask{
				ID:             domain.ReviewTaskID(subjectID, t.ID, offset),
				Kind:           domain.TaskKindReview,
				Date:           formatDate(today, offset),
				TopicID:        t.ID,
				TopicTitle:     reviewTitlePrefix + t.Title,
				SubjectID:      subjectID,
				SubjectName:    subjectName,
				EstimatedHours: hours,
				Difficulty:     t.Difficulty,
				References:     append([]string{}, t.References...),
				Notes:          t.Notes,
			})
		}
	}

	return tasks
}

// ApplyTaskCompletion marks task as done with the given actual hours and
// advances the topic's progress by the task's share of the estimate.
// A topic reaching 100% is marked completed. Inputs are not mutated.
func ApplyTaskCompletion(topic domain.Topic, task domain.DailyTask, actualHours float64) (domain.Topic, domain.DailyTask) {
	done := task.Clone()
	done.Completed = true
	hours := actualHours
	done.ActualHours = &hours

	updated := topic
	updated.References = append([]string{}, topic.References...)

	if task.Kind == domain.TaskKindReview {
		return updated, done
	}

	if topic.EstimatedHours > 0 {
		gain := int(math.Round(task.EstimatedHours / topic.EstimatedHours * 100))
		updated.Progress = min(100, topic.Progress+gain)
	} else {
		updated.Progress = 100
	}
	if updated.Progress >= 100 {
		updated.Completed = true
	}

	return updated, done
}
