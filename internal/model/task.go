package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrValidation      = errors.New("model: validation failed")
	ErrInvalidState    = errors.New("model: invalid state")
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidCategory = errors.New("model: invalid task category")
)

const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 480
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Rank orders priorities for the day-start sort. Unknown values sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 999
	}
}

func ParsePriority(raw string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high", "h":
		return PriorityHigh, nil
	case "medium", "med", "m":
		return PriorityMedium, nil
	case "low", "l":
		return PriorityLow, nil
	default:
		return "", fmt.Errorf("%w: %w: %q", ErrValidation, ErrInvalidPriority, raw)
	}
}

type Category string

const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryHealth   Category = "Health"
	CategoryLearning Category = "Learning"
	CategoryOther    Category = "Other"
)

func AllCategories() []Category {
	return []Category{CategoryWork, CategoryPersonal, CategoryHealth, CategoryLearning, CategoryOther}
}

func (c Category) IsValid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

func ParseCategory(raw string) (Category, error) {
	trimmed := strings.TrimSpace(raw)
	for _, known := range AllCategories() {
		if strings.EqualFold(trimmed, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: %w: %q", ErrValidation, ErrInvalidCategory, raw)
}

// TaskSpec is the user input for a new task.
type TaskSpec struct {
	Name            string
	DurationMinutes int
	Priority        Priority
	Category        Category
	Notes           string
}

func (s TaskSpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: task name is required", ErrValidation)
	}
	if s.DurationMinutes < MinDurationMinutes || s.DurationMinutes > MaxDurationMinutes {
		return fmt.Errorf("%w: duration %d outside [%d, %d] minutes", ErrValidation, s.DurationMinutes, MinDurationMinutes, MaxDurationMinutes)
	}
	if !s.Priority.IsValid() {
		return fmt.Errorf("%w: %w: %q", ErrValidation, ErrInvalidPriority, s.Priority)
	}
	if !s.Category.IsValid() {
		return fmt.Errorf("%w: %w: %q", ErrValidation, ErrInvalidCategory, s.Category)
	}
	return nil
}

type Task struct {
	ID                    string
	Name                  string
	DurationPlanned       int
	Priority              Priority
	Category              Category
	Notes                 string
	Completed             bool
	StartedAt             *time.Time
	CompletedAt           *time.Time
	ActualDurationMinutes *float64
}

func NewTask(id string, spec TaskSpec) Task {
	return Task{
		ID:              id,
		Name:            strings.TrimSpace(spec.Name),
		DurationPlanned: spec.DurationMinutes,
		Priority:        spec.Priority,
		Category:        spec.Category,
		Notes:           strings.TrimSpace(spec.Notes),
	}
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("model: task name is required")
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, t.Category)
	}
	if t.Completed && t.CompletedAt == nil {
		return errors.New("model: completed_at is required when task is completed")
	}
	if !t.Completed && t.CompletedAt != nil {
		return errors.New("model: completed_at must be nil when task is not completed")
	}
	if t.ActualDurationMinutes != nil && t.CompletedAt == nil {
		return errors.New("model: actual duration requires completed_at")
	}
	if t.CompletedAt != nil && t.StartedAt == nil {
		return errors.New("model: completed task must have started_at")
	}
	return nil
}

// Clone returns a copy that shares no pointers with t.
func (t Task) Clone() Task {
	out := t
	if t.StartedAt != nil {
		v := *t.StartedAt
		out.StartedAt = &v
	}
	if t.CompletedAt != nil {
		v := *t.CompletedAt
		out.CompletedAt = &v
	}
	if t.ActualDurationMinutes != nil {
		v := *t.ActualDurationMinutes
		out.ActualDurationMinutes = &v
	}
	return out
}

// IsActive reports whether the task has started and is not yet complete.
func (t Task) IsActive() bool {
	return t.StartedAt != nil && !t.Completed
}
