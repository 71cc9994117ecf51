package update

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sandeepkv93/dayplanner/internal/advisor"
	"github.com/sandeepkv93/dayplanner/internal/model"
	"github.com/sandeepkv93/dayplanner/internal/storage"
)

func (m *Model) addTask(spec model.TaskSpec) (string, error) {
	task, err := m.Session.AddTask(spec)
	if err != nil {
		return "", err
	}
	m.Cursor = m.Session.TaskCount() - 1
	return fmt.Sprintf("added task: %s (%dm, %s)", task.Name, task.DurationPlanned, task.Priority), nil
}

func (m *Model) quickAdd(name string) (string, error) {
	return m.addTask(model.QuickAddSpec(name))
}

func (m *Model) startDay() (string, error) {
	if err := m.Session.StartDay(); err != nil {
		return "", err
	}
	m.Cursor = 0
	if m.Session.TaskCount() == 0 {
		return "day started with no tasks", nil
	}
	return fmt.Sprintf("day started: %d task(s) sorted by priority", m.Session.TaskCount()), nil
}

func (m *Model) completeCurrent() (string, error) {
	done, err := m.Session.CompleteCurrent()
	if err != nil {
		return "", err
	}
	return completedMessage(m, done), nil
}

// completeAt completes the task at index, which must be the active one.
func (m *Model) completeAt(index int) (string, error) {
	done, err := m.Session.MarkComplete(index)
	if err != nil {
		return "", err
	}
	return completedMessage(m, done), nil
}

func completedMessage(m *Model, done model.Task) string {
	if _, idx, ok := m.Session.CurrentTask(); ok {
		m.Cursor = idx
	}
	if m.Session.AllCompleted() {
		return advisor.MessageDayComplete
	}
	actual := 0.0
	if done.ActualDurationMinutes != nil {
		actual = *done.ActualDurationMinutes
	}
	return fmt.Sprintf("completed: %s in %s", done.Name, formatMinutes(actual))
}

func (m *Model) adjustSchedule() (string, error) {
	n, err := m.Engine.AdjustSchedule(m.Session)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s (%d task(s) shortened)", advisor.MessageAdjusted, n), nil
}

func (m *Model) resetDay() (string, error) {
	archiveErr := m.archiveDay(m.Session.Now())
	m.Session.Reset()
	m.Cursor = 0
	if archiveErr != nil {
		return "", fmt.Errorf("day reset but archive failed: %w", archiveErr)
	}
	return "day reset", nil
}

// archiveDay writes a started day to the journal, if one is configured.
func (m *Model) archiveDay(now time.Time) error {
	if m.Journal == nil || !m.Session.Day().Started() {
		return nil
	}
	record, ok := storage.NewDayRecord(m.newID(), m.Session, now)
	if !ok {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.Journal.SaveDay(ctx, record); err != nil {
		return err
	}
	log.Printf("archived day %s (%d/%d tasks)", record.ID, record.CompletedCount, record.TotalCount)
	return nil
}

// report surfaces an action outcome in the status bar and the event log.
func (m *Model) report(msg string, err error) {
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Error", err.Error(), "error")
		log.Printf("action failed: %v", err)
		return
	}
	m.LastError = nil
	m.Status = StatusBar{Text: msg, IsError: false}
	m.notify("Planner", msg, "info")
	log.Printf("%s", msg)
}
