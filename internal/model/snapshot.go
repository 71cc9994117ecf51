package model

import "time"

// ProgressSnapshot is one point of the day's completion history.
type ProgressSnapshot struct {
	Timestamp            time.Time
	CompletedCount       int
	TotalCount           int
	CompletionPercentage float64
}

// NewProgressSnapshot computes the completion percentage, returning 0 for an empty list.
func NewProgressSnapshot(at time.Time, completed, total int) ProgressSnapshot {
	pct := 0.0
	if total > 0 {
		pct = float64(completed) / float64(total) * 100
	}
	return ProgressSnapshot{
		Timestamp:            at,
		CompletedCount:       completed,
		TotalCount:           total,
		CompletionPercentage: pct,
	}
}

type Notification struct {
	At      time.Time
	Message string
}
