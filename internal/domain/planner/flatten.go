package planner

import (
	"github.com/phrazzld/studyplan/internal/domain"
)

// workItem is a topic annotated with its owning subject and the hours
// still to be studied.
type workItem struct {
	topic          domain.Topic
	subjectID      string
	subjectName    string
	remainingHours float64
}

// flattenTopics expands subjects into one work item per topic, scaling each
// estimate by the unfinished fraction. Completed topics are kept; filtering
// happens in prioritize. The input is not mutated.
func flattenTopics(subjects []domain.Subject) []workItem {
	var items []workItem
	for _, s := range subjects {
		for _, t := range s.Topics {
			topic := t
			topic.References = append([]string{}, t.References...)
			items = append(items, workItem{
				topic:          topic,
				subjectID:      s.ID,
				subjectName:    s.Name,
				remainingHours: t.RemainingHours(),
			})
		}
	}
	return items
}
