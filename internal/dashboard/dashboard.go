// Package dashboard derives everything the presentation layer shows from a
// planner session. Derive never mutates the session.
package dashboard

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/dayplanner/internal/advisor"
	"github.com/sandeepkv93/dayplanner/internal/model"
	"github.com/sandeepkv93/dayplanner/internal/planner"
)

// Row is one schedule line. Window is nil before the day starts, in which
// case only RawDuration is meaningful.
type Row struct {
	Task        model.Task
	Window      *planner.Window
	RawDuration time.Duration
	IsActive    bool
	IsComplete  bool
}

type ViewModel struct {
	Now           time.Time
	Started       bool
	StartTime     time.Time
	Adjusted      bool
	Rows          []Row
	Progress      model.ProgressSnapshot
	Advice        advisor.Advice
	Messages      []string
	Notifications []model.Notification
	Categories    []planner.CategoryCount
	History       []model.ProgressSnapshot
	Tip           string
}

func Derive(s *planner.Session, engine *advisor.Engine, now time.Time) ViewModel {
	day := s.Day()
	vm := ViewModel{
		Now:           now,
		Started:       day.Started(),
		Adjusted:      day.ScheduleAdjusted,
		Progress:      s.Progress(),
		Notifications: s.Notifications(),
		Categories:    s.CategoryCounts(),
		History:       s.History(),
	}
	if day.Started() {
		vm.StartTime = *day.StartTime
	}

	current, hasCurrent := day.CurrentIndex()
	windows := s.Windows()
	for i, task := range s.Tasks() {
		row := Row{
			Task:        task,
			RawDuration: time.Duration(task.DurationPlanned) * time.Minute,
			IsActive:    hasCurrent && i == current,
			IsComplete:  task.Completed,
		}
		if i < len(windows) {
			w := windows[i]
			row.Window = &w
		}
		vm.Rows = append(vm.Rows, row)
	}

	if engine != nil {
		vm.Advice = engine.Evaluate(s, now)
		vm.Messages = Messages(vm.Advice)
		vm.Tip = engine.Tip()
	}
	return vm
}

// Messages flattens advice into the ordered list of advisory strings.
func Messages(a advisor.Advice) []string {
	var out []string
	if a.OfferAdjustment {
		out = append(out, advisor.MessageBehindSchedule)
	}
	for _, r := range a.Recommendations {
		out = append(out, r.Message)
	}
	if a.OnTrack {
		out = append(out, advisor.MessageOnTrack)
	}
	if a.DayComplete {
		out = append(out, advisor.MessageDayComplete)
	}
	return out
}

// ProgressLine renders "Progress: c/t tasks completed (p%)" with an integer percentage.
func (vm ViewModel) ProgressLine() string {
	return fmt.Sprintf("Progress: %d/%d tasks completed (%d%%)",
		vm.Progress.CompletedCount, vm.Progress.TotalCount, int(vm.Progress.CompletionPercentage))
}

// CurrentRow returns the active row, if any.
func (vm ViewModel) CurrentRow() (Row, bool) {
	for _, r := range vm.Rows {
		if r.IsActive {
			return r, true
		}
	}
	return Row{}, false
}

// Remaining is the planned time still ahead, counting the active task in full.
func (vm ViewModel) Remaining() time.Duration {
	var total time.Duration
	for _, r := range vm.Rows {
		if !r.IsComplete {
			total += r.RawDuration
		}
	}
	return total
}
