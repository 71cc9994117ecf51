package update

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/dayplanner/internal/dashboard"
	"github.com/sandeepkv93/dayplanner/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tickCmd(m.tick)
}

// Update applies one message to the session and re-derives the view model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.handle(msg)
	next.refresh()
	return next, cmd
}

func (m Model) handle(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}
		if m.Form.Active {
			return m.handleFormKey(typed), nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Planner:
			m.CurrentView = ViewPlanner
			return m, nil
		case m.Keys.Analytics:
			m.CurrentView = ViewAnalytics
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			return m.quit()
		}
		if m.CurrentView == ViewPlanner {
			return m.handlePlannerKey(typed)
		}
	case tea.WindowSizeMsg:
		m.Width = typed.Width
		return m, nil
	case TickMsg:
		return m, tickCmd(m.tick)
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case AddTaskMsg:
		m.report(m.addTask(typed.Spec))
		return m, nil
	case QuickAddMsg:
		m.report(m.quickAdd(typed.Name))
		return m, nil
	case StartDayMsg:
		m.report(m.startDay())
		return m, nil
	case CompleteTaskMsg:
		m.report(m.completeCurrent())
		return m, nil
	case AdjustScheduleMsg:
		m.report(m.adjustSchedule())
		return m, nil
	case ResetDayMsg:
		m.report(m.resetDay())
		return m, nil
	}
	return m, nil
}

func (m Model) handlePlannerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	k := m.PlannerKeys
	switch {
	case key.Matches(msg, k.Add):
		m.Form = newAddForm()
		m.Form.Active = true
		m.Form.Inputs[fieldName].Focus()
		m.Status = StatusBar{Text: "adding task", IsError: false}
	case key.Matches(msg, k.Start):
		m.report(m.startDay())
	case key.Matches(msg, k.Done):
		m.report(m.completeCurrent())
	case key.Matches(msg, k.Adjust):
		m.report(m.adjustSchedule())
	case key.Matches(msg, k.Reset):
		m.report(m.resetDay())
	case key.Matches(msg, k.Down):
		if m.Cursor < m.Session.TaskCount()-1 {
			m.Cursor++
		}
	case key.Matches(msg, k.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	}
	return m, nil
}

func (m Model) quit() (Model, tea.Cmd) {
	if !m.Quitting {
		if err := m.archiveDay(m.Session.Now()); err != nil {
			log.Printf("archive on quit failed: %v", err)
		}
	}
	m.Quitting = true
	return m, tea.Quit
}

// refresh asks the notification policy for nudges, then recomputes the view
// model and the widgets that mirror it.
func (m *Model) refresh() {
	now := m.Session.Now()
	if fresh := m.Engine.Notify(m.Session, now); len(fresh) > 0 {
		m.Session.AddNotifications(fresh...)
		for _, n := range fresh {
			m.sendDesktop(Notification{Title: "dayplanner", Body: n.Message, Level: "info", At: n.At})
		}
	}
	m.VM = dashboard.Derive(m.Session, m.Engine, now)
	if m.Cursor >= len(m.VM.Rows) {
		m.Cursor = len(m.VM.Rows) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	m.syncBubbleData()
}

func (m *Model) syncBubbleData() {
	m.scheduleTable.SetRows(scheduleRows(m.VM.Rows))
	if len(m.VM.Rows) > 0 {
		m.scheduleTable.SetCursor(m.Cursor)
	}
	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active {
		m.commandInput.Focus()
	}
	m.notesView = ""
	if m.Cursor < len(m.VM.Rows) {
		m.notesView = views.RenderMarkdown(m.VM.Rows[m.Cursor].Task.Notes)
	}
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewPlanner:
		leftPane = m.renderScheduleView()
		rightPane = joinPanes(
			m.renderAddForm(),
			m.renderCommandPalette(),
			m.renderAdviceView(),
			m.renderTaskDetail(),
			m.renderHelpIfVisible(),
		)
	case ViewAnalytics:
		leftPane = m.renderAnalyticsView()
		rightPane = joinPanes(
			m.renderCommandPalette(),
			views.RenderSuggestions(suggestionNames()),
			m.renderHelpIfVisible(),
		)
	}
	notificationView := strings.TrimSpace(strings.Join([]string{
		m.renderNotificationsView(),
		m.renderLastEvent(),
	}, "\n"))

	return views.RenderApp(views.AppData{
		Width:        m.Width,
		Header:       fmt.Sprintf("dayplanner | view: %s | %s", m.CurrentView, m.VM.ProgressLine()),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: notificationView,
		Footer:       fmt.Sprintf("keys: %s planner | %s analytics | / cmd | %s help | %s quit", m.Keys.Planner, m.Keys.Analytics, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewPlanner, ViewAnalytics:
		return true
	default:
		return false
	}
}

func tickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(at time.Time) tea.Msg { return TickMsg{At: at} })
}
