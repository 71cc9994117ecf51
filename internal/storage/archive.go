package storage

import (
	"time"

	"github.com/sandeepkv93/dayplanner/internal/planner"
)

// NewDayRecord captures a started day for the journal. It reports false when
// the day never started, since there is nothing worth archiving.
func NewDayRecord(id string, s *planner.Session, ended time.Time) (DayRecord, bool) {
	day := s.Day()
	if !day.Started() {
		return DayRecord{}, false
	}
	progress := s.Progress()
	record := DayRecord{
		ID:                   id,
		StartedAt:            *day.StartTime,
		EndedAt:              ended,
		CompletedCount:       progress.CompletedCount,
		TotalCount:           progress.TotalCount,
		CompletionPercentage: progress.CompletionPercentage,
		ScheduleAdjusted:     day.ScheduleAdjusted,
		Tasks:                make([]TaskRecord, 0, s.TaskCount()),
	}
	for i, task := range s.Tasks() {
		record.Tasks = append(record.Tasks, TaskRecord{
			ID:             task.ID,
			Position:       i,
			Name:           task.Name,
			Priority:       string(task.Priority),
			Category:       string(task.Category),
			Notes:          task.Notes,
			PlannedMinutes: task.DurationPlanned,
			ActualMinutes:  task.ActualDurationMinutes,
			Completed:      task.Completed,
			StartedAt:      task.StartedAt,
			CompletedAt:    task.CompletedAt,
		})
	}
	return record, true
}
