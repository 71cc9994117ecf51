// Package planner holds the state of one planning session: the ordered task
// list, the day clock, and the progress history. A Session is owned by a
// single interaction handler and is not safe for concurrent use.
package planner

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/dayplanner/internal/model"
)

// Clock returns the current time. Tests inject a fixed clock.
type Clock func() time.Time

// IDFunc generates task IDs.
type IDFunc func() string

// DayState tracks whether the day has started and which task is active.
type DayState struct {
	StartTime        *time.Time
	ScheduleAdjusted bool
	current          int
}

// Started reports whether StartDay has run.
func (d DayState) Started() bool {
	return d.StartTime != nil
}

// CurrentIndex returns the active task index, if any.
func (d DayState) CurrentIndex() (int, bool) {
	if d.current < 0 {
		return 0, false
	}
	return d.current, true
}

type Session struct {
	tasks         []model.Task
	completed     []model.Task
	day           DayState
	history       []model.ProgressSnapshot
	notifications []model.Notification
	clock         Clock
	newID         IDFunc
}

type Option func(*Session)

func WithClock(c Clock) Option {
	return func(s *Session) {
		if c != nil {
			s.clock = c
		}
	}
}

func WithIDFunc(f IDFunc) Option {
	return func(s *Session) {
		if f != nil {
			s.newID = f
		}
	}
}

func NewSession(opts ...Option) *Session {
	s := &Session{
		clock: time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

func (s *Session) Now() time.Time {
	return s.clock()
}

// Reset returns every piece of session state to its initial empty value.
func (s *Session) Reset() {
	s.tasks = nil
	s.completed = nil
	s.day = DayState{current: -1}
	s.history = nil
	s.notifications = nil
}

// AddTask validates spec and appends a new task. Once the day has started and
// nothing is active, the new task becomes the active one.
func (s *Session) AddTask(spec model.TaskSpec) (model.Task, error) {
	if err := spec.Validate(); err != nil {
		return model.Task{}, err
	}
	task := model.NewTask(s.newID(), spec)
	s.tasks = append(s.tasks, task)
	if _, active := s.day.CurrentIndex(); s.day.Started() && !active {
		s.activate(len(s.tasks)-1, s.clock())
	}
	return s.tasks[len(s.tasks)-1].Clone(), nil
}

// StartDay anchors the schedule, orders tasks by priority and activates the first one.
func (s *Session) StartDay() error {
	if s.day.Started() {
		return fmt.Errorf("%w: day already started", model.ErrInvalidState)
	}
	now := s.clock()
	s.day.StartTime = &now
	SortByPriority(s.tasks)
	if len(s.tasks) > 0 {
		s.activate(0, now)
	}
	s.recordSnapshot(now)
	return nil
}

// MarkComplete finishes the active task at index and advances to the next one.
func (s *Session) MarkComplete(index int) (model.Task, error) {
	if !s.day.Started() {
		return model.Task{}, fmt.Errorf("%w: day has not started", model.ErrInvalidState)
	}
	if index < 0 || index >= len(s.tasks) {
		return model.Task{}, fmt.Errorf("%w: task index %d out of range", model.ErrValidation, index)
	}
	current, ok := s.day.CurrentIndex()
	if !ok || current != index {
		return model.Task{}, fmt.Errorf("%w: task %d is not the active task", model.ErrInvalidState, index)
	}
	task := &s.tasks[index]
	if task.Completed {
		return model.Task{}, fmt.Errorf("%w: task %d already completed", model.ErrInvalidState, index)
	}

	now := s.clock()
	task.Completed = true
	task.CompletedAt = &now
	if task.StartedAt != nil {
		actual := now.Sub(*task.StartedAt).Minutes()
		if actual < 0 {
			actual = 0
		}
		task.ActualDurationMinutes = &actual
	}
	done := task.Clone()
	s.completed = append(s.completed, done)
	s.recordSnapshot(now)

	if index+1 < len(s.tasks) {
		s.activate(index+1, now)
	} else {
		s.day.current = -1
	}
	return done, nil
}

// CompleteCurrent is MarkComplete for whichever task is active.
func (s *Session) CompleteCurrent() (model.Task, error) {
	current, ok := s.day.CurrentIndex()
	if !ok {
		return model.Task{}, fmt.Errorf("%w: no active task", model.ErrInvalidState)
	}
	return s.MarkComplete(current)
}

// CompressSchedule shortens every incomplete task from the active one onward
// whose planned duration exceeds floor, then latches the adjustment so it never
// runs again this session. reduction is called once per shortened task and must
// return a fraction in [0, 1).
func (s *Session) CompressSchedule(floor int, reduction func() float64) (int, error) {
	if s.day.ScheduleAdjusted {
		return 0, fmt.Errorf("%w: schedule already adjusted", model.ErrInvalidState)
	}
	current, ok := s.day.CurrentIndex()
	if !ok {
		return 0, fmt.Errorf("%w: no active task", model.ErrInvalidState)
	}
	adjusted := 0
	for i := current; i < len(s.tasks); i++ {
		task := &s.tasks[i]
		if task.Completed || task.DurationPlanned <= floor {
			continue
		}
		task.DurationPlanned = int(float64(task.DurationPlanned) * (1 - reduction()))
		adjusted++
	}
	s.day.ScheduleAdjusted = true
	return adjusted, nil
}

func (s *Session) AddNotifications(items ...model.Notification) {
	s.notifications = append(s.notifications, items...)
}

func (s *Session) Tasks() []model.Task {
	return cloneTasks(s.tasks)
}

func (s *Session) TaskCount() int {
	return len(s.tasks)
}

func (s *Session) CompletedHistory() []model.Task {
	return cloneTasks(s.completed)
}

func (s *Session) Day() DayState {
	out := s.day
	if s.day.StartTime != nil {
		v := *s.day.StartTime
		out.StartTime = &v
	}
	return out
}

// CurrentTask returns a copy of the active task and its index.
func (s *Session) CurrentTask() (model.Task, int, bool) {
	current, ok := s.day.CurrentIndex()
	if !ok {
		return model.Task{}, 0, false
	}
	return s.tasks[current].Clone(), current, true
}

func (s *Session) History() []model.ProgressSnapshot {
	out := make([]model.ProgressSnapshot, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) Notifications() []model.Notification {
	out := make([]model.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

func (s *Session) activate(index int, at time.Time) {
	s.day.current = index
	s.tasks[index].StartedAt = &at
}

func cloneTasks(in []model.Task) []model.Task {
	out := make([]model.Task, 0, len(in))
	for _, t := range in {
		out = append(out, t.Clone())
	}
	return out
}
