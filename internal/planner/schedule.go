package planner

import (
	"fmt"
	"sort"
	"time"

	"github.com/sandeepkv93/dayplanner/internal/model"
)

// Window is the expected start and end of a task relative to the day start.
type Window struct {
	Start time.Time
	End   time.Time
}

// SortByPriority orders tasks High, Medium, Low. Equal priorities keep their input order.
func SortByPriority(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Priority.Rank() < tasks[j].Priority.Rank()
	})
}

// ComputeWindow sums the planned durations before index to place the task on the day.
func (s *Session) ComputeWindow(index int) (Window, error) {
	if !s.day.Started() {
		return Window{}, fmt.Errorf("%w: day has not started", model.ErrInvalidState)
	}
	if index < 0 || index >= len(s.tasks) {
		return Window{}, fmt.Errorf("%w: task index %d out of range", model.ErrValidation, index)
	}
	start := s.day.StartTime.Add(time.Duration(s.offsetMinutes(index)) * time.Minute)
	return Window{
		Start: start,
		End:   start.Add(time.Duration(s.tasks[index].DurationPlanned) * time.Minute),
	}, nil
}

// Windows returns one window per task, or nil before the day starts.
func (s *Session) Windows() []Window {
	if !s.day.Started() {
		return nil
	}
	out := make([]Window, 0, len(s.tasks))
	offset := 0
	for _, task := range s.tasks {
		start := s.day.StartTime.Add(time.Duration(offset) * time.Minute)
		out = append(out, Window{Start: start, End: start.Add(time.Duration(task.DurationPlanned) * time.Minute)})
		offset += task.DurationPlanned
	}
	return out
}

// ExpectedStart is where the task at index should have started had every
// earlier task run exactly to plan.
func (s *Session) ExpectedStart(index int) (time.Time, error) {
	w, err := s.ComputeWindow(index)
	if err != nil {
		return time.Time{}, err
	}
	return w.Start, nil
}

func (s *Session) offsetMinutes(index int) int {
	total := 0
	for i := 0; i < index; i++ {
		total += s.tasks[i].DurationPlanned
	}
	return total
}
