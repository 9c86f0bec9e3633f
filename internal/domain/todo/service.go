package todo

import (
	"slices"
	"time"
)

// Stats aggregates classification counts over a collection of todos.
type Stats struct {
	Total        int
	Active       int
	Completed    int
	Overdue      int
	HighPriority int
}

// SortByPriority returns a new slice sorted by priority rank, highest first.
// The sort is stable: ties preserve the input's relative order, which callers
// rely on for deterministic display. The input slice is not modified.
func SortByPriority(todos []Todo) []Todo {
	sorted := slices.Clone(todos)
	slices.SortStableFunc(sorted, func(a, b Todo) int {
		return b.Priority().Rank() - a.Priority().Rank()
	})
	return sorted
}

// ComputeStats classifies the collection in a single pass using the four
// standard specifications. An empty input yields all-zero stats.
func ComputeStats(todos []Todo, now time.Time) Stats {
	completed := CompletedSpec()
	active := ActiveSpec()
	overdue := OverdueSpec(now)
	high := HighPrioritySpec()

	stats := Stats{Total: len(todos)}
	for _, t := range todos {
		if completed.IsSatisfiedBy(t) {
			stats.Completed++
		}
		if active.IsSatisfiedBy(t) {
			stats.Active++
		}
		if overdue.IsSatisfiedBy(t) {
			stats.Overdue++
		}
		if high.IsSatisfiedBy(t) {
			stats.HighPriority++
		}
	}
	return stats
}
