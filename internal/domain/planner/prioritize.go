package planner

import (
	"sort"
)

// prioritize drops completed topics and orders the rest by descending
// priority: harder topics and topics with more remaining hours come first.
//
// The comparator is the heuristic
//
//	score(a, b) = f × (w(b) − w(a)) + (b.remaining − a.remaining)
//
// with a sorted before b when score < 0. It is a weighting, not an optimal
// ordering. The sort is stable so equal scores keep their input order.
func prioritize(items []workItem, params *Params) []workItem {
	pending := make([]workItem, 0, len(items))
	for _, it := range items {
		if it.topic.Completed {
			continue
		}
		pending = append(pending, it)
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return priorityScore(pending[i], pending[j], params) < 0
	})

	return pending
}

// priorityScore compares a against b; negative means a has higher priority.
func priorityScore(a, b workItem, params *Params) float64 {
	weightDiff := params.difficultyWeight(b.topic.Difficulty) - params.difficultyWeight(a.topic.Difficulty)
	return params.DifficultyFactor*weightDiff + (b.remainingHours - a.remainingHours)
}
