package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/sandeepkv93/dayplanner/internal/dashboard"
	"github.com/sandeepkv93/dayplanner/internal/model"
	"github.com/sandeepkv93/dayplanner/internal/views"
)

const (
	clockLayout       = "15:04"
	notificationLimit = 5
)

func (m Model) renderScheduleView() string {
	data := views.SchedulePanelData{
		Started:      m.VM.Started,
		Adjusted:     m.VM.Adjusted,
		TableView:    m.scheduleTable.View(),
		ProgressLine: m.VM.ProgressLine(),
	}
	for _, row := range m.VM.Rows {
		data.Rows = append(data.Rows, scheduleRowData(row))
	}
	if m.VM.Started {
		data.StartTime = m.VM.StartTime.Format(clockLayout)
		data.ProgressView = m.dayProgress.ViewAs(m.VM.Progress.CompletionPercentage / 100)
		if left := m.VM.Remaining(); left > 0 {
			data.Remaining = formatMinutes(left.Minutes())
		}
	}
	if row, ok := m.VM.CurrentRow(); ok {
		data.CurrentTask = row.Task.Name
		if row.Task.StartedAt != nil {
			data.Elapsed = formatMinutes(m.VM.Now.Sub(*row.Task.StartedAt).Minutes())
		}
	}
	return views.RenderSchedulePanel(data)
}

func (m Model) renderAdviceView() string {
	return views.RenderAdvicePanel(views.AdvicePanelData{
		Messages:        m.VM.Messages,
		OfferAdjustment: m.VM.Advice.OfferAdjustment,
		Delay:           formatMinutes(m.VM.Advice.Delay.Minutes()),
		Tip:             m.VM.Tip,
	})
}

func (m Model) renderAnalyticsView() string {
	data := views.AnalyticsPanelData{}
	for _, c := range m.VM.Categories {
		data.Categories = append(data.Categories, views.CategoryData{Name: string(c.Category), Count: c.Count})
	}
	for _, h := range m.VM.History {
		data.History = append(data.History, views.HistoryPointData{
			Time:      h.Timestamp.Format("15:04:05"),
			Completed: h.CompletedCount,
			Total:     h.TotalCount,
			Percent:   h.CompletionPercentage,
		})
	}
	for _, t := range m.Session.CompletedHistory() {
		data.Completed = append(data.Completed, views.CompletedTaskData{
			Name:    t.Name,
			Planned: t.DurationPlanned,
			Actual:  actualText(t),
		})
	}
	return views.RenderAnalyticsPanel(data)
}

func (m Model) renderTaskDetail() string {
	if m.Cursor >= len(m.VM.Rows) {
		return views.RenderTaskDetail(views.TaskDetailData{})
	}
	task := m.VM.Rows[m.Cursor].Task
	return views.RenderTaskDetail(views.TaskDetailData{
		Name:         task.Name,
		Priority:     string(task.Priority),
		Category:     string(task.Category),
		Planned:      task.DurationPlanned,
		Actual:       actualText(task),
		MarkdownView: m.notesView,
	})
}

func (m Model) renderAddForm() string {
	data := views.AddFormData{Active: m.Form.Active, ErrorText: m.Form.Err}
	for i, in := range m.Form.Inputs {
		data.Fields = append(data.Fields, views.FormFieldData{
			Label:   formLabels[i],
			View:    in.View(),
			Focused: i == m.Form.Focus,
		})
	}
	return views.RenderAddForm(data)
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	items := make([]views.NotificationData, 0, len(m.VM.Notifications))
	for _, n := range m.VM.Notifications {
		items = append(items, views.NotificationData{At: n.At.Format(clockLayout), Message: n.Message})
	}
	return views.RenderNotificationsPanel(items, notificationLimit)
}

func (m Model) renderLastEvent() string {
	if len(m.Events) == 0 {
		return ""
	}
	n := m.Events[len(m.Events)-1]
	return fmt.Sprintf("last: [%s] %s", strings.ToUpper(n.Level), n.Body)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.Session.Now(),
	}
	m.Events = append(m.Events, n)
	if len(m.Events) > 40 {
		m.Events = m.Events[len(m.Events)-40:]
	}
	if level == "error" {
		m.sendDesktop(n)
	}
}

func (m *Model) sendDesktop(n Notification) {
	if m.DesktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(n)
	}
}

func scheduleRowData(row dashboard.Row) views.ScheduleRowData {
	data := views.ScheduleRowData{
		Name:     row.Task.Name,
		Priority: string(row.Task.Priority),
		Category: string(row.Task.Category),
		Active:   row.IsActive,
		Done:     row.IsComplete,
	}
	if row.Window != nil {
		data.Window = fmt.Sprintf("%s-%s", row.Window.Start.Format(clockLayout), row.Window.End.Format(clockLayout))
	} else {
		data.Window = formatMinutes(row.RawDuration.Minutes())
	}
	return data
}

func scheduleRows(rows []dashboard.Row) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for i, row := range rows {
		data := scheduleRowData(row)
		out = append(out, table.Row{
			fmt.Sprintf("%d", i+1),
			data.Name,
			data.Priority,
			data.Category,
			data.Window,
			views.ScheduleStatus(data),
		})
	}
	return out
}

func actualText(t model.Task) string {
	if t.ActualDurationMinutes == nil {
		return ""
	}
	return formatMinutes(*t.ActualDurationMinutes)
}

func suggestionNames() []string {
	return model.QuickAddSuggestions()
}

func joinPanes(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}
