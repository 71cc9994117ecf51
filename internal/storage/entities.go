package storage

import "time"

type DayRecord struct {
	ID                   string
	StartedAt            time.Time
	EndedAt              time.Time
	CompletedCount       int
	TotalCount           int
	CompletionPercentage float64
	ScheduleAdjusted     bool
	// Tasks is populated by GetDay only.
	Tasks []TaskRecord
}

type TaskRecord struct {
	ID             string
	Position       int
	Name           string
	Priority       string
	Category       string
	Notes          string
	PlannedMinutes int
	ActualMinutes  *float64
	Completed      bool
	StartedAt      *time.Time
	CompletedAt    *time.Time
}

type DayListFilter struct {
	Since  *time.Time
	Limit  int
	Offset int
}
