package planner

import (
	"time"

	"github.com/sandeepkv93/dayplanner/internal/model"
)

type CategoryCount struct {
	Category model.Category
	Count    int
}

// Progress is the current completion summary. It is not appended to the history.
func (s *Session) Progress() model.ProgressSnapshot {
	return model.NewProgressSnapshot(s.clock(), s.completedCount(), len(s.tasks))
}

// CompletedFraction is completed/total, 0 for an empty list.
func (s *Session) CompletedFraction() float64 {
	if len(s.tasks) == 0 {
		return 0
	}
	return float64(s.completedCount()) / float64(len(s.tasks))
}

// AllCompleted reports a finished day: at least one task and none outstanding.
func (s *Session) AllCompleted() bool {
	return len(s.tasks) > 0 && s.completedCount() == len(s.tasks)
}

// CategoryCounts returns the task distribution in category declaration order, skipping empty categories.
func (s *Session) CategoryCounts() []CategoryCount {
	counts := make(map[model.Category]int)
	for _, t := range s.tasks {
		counts[t.Category]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for _, c := range model.AllCategories() {
		if counts[c] > 0 {
			out = append(out, CategoryCount{Category: c, Count: counts[c]})
		}
	}
	return out
}

// RecordSnapshot appends the current progress to the history and returns it.
func (s *Session) RecordSnapshot() model.ProgressSnapshot {
	return s.recordSnapshot(s.clock())
}

func (s *Session) recordSnapshot(at time.Time) model.ProgressSnapshot {
	snap := model.NewProgressSnapshot(at, s.completedCount(), len(s.tasks))
	s.history = append(s.history, snap)
	return snap
}

func (s *Session) completedCount() int {
	n := 0
	for _, t := range s.tasks {
		if t.Completed {
			n++
		}
	}
	return n
}
