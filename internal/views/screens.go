package views

import (
	"fmt"
	"strings"
)

type ScheduleRowData struct {
	Name     string
	Priority string
	Category string
	Window   string
	Active   bool
	Done     bool
}

type SchedulePanelData struct {
	Started      bool
	StartTime    string
	Adjusted     bool
	TableView    string
	Rows         []ScheduleRowData
	CurrentTask  string
	Elapsed      string
	ProgressView string
	ProgressLine string
	Remaining    string
}

type AdvicePanelData struct {
	Messages        []string
	OfferAdjustment bool
	Delay           string
	Tip             string
}

type CategoryData struct {
	Name  string
	Count int
}

type HistoryPointData struct {
	Time      string
	Completed int
	Total     int
	Percent   float64
}

type CompletedTaskData struct {
	Name    string
	Planned int
	Actual  string
}

type AnalyticsPanelData struct {
	Categories []CategoryData
	History    []HistoryPointData
	Completed  []CompletedTaskData
}

type NotificationData struct {
	At      string
	Message string
}

type FormFieldData struct {
	Label   string
	View    string
	Focused bool
}

type AddFormData struct {
	Active    bool
	Fields    []FormFieldData
	ErrorText string
}

type TaskDetailData struct {
	Name         string
	Priority     string
	Category     string
	Planned      int
	Actual       string
	MarkdownView string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderSchedulePanel(data SchedulePanelData) string {
	var b strings.Builder
	b.WriteString("schedule:\n")
	if data.Started {
		line := fmt.Sprintf("day started at %s", data.StartTime)
		if data.Adjusted {
			line += " (adjusted)"
		}
		b.WriteString(line + "\n")
	} else {
		b.WriteString(mutedStyle.Render("day not started, press [s] to sort by priority and begin") + "\n")
	}
	if len(data.Rows) == 0 {
		b.WriteString("(no tasks yet, press [a] to add one)\n")
	} else {
		b.WriteString(data.TableView + "\n")
	}
	if data.CurrentTask != "" {
		b.WriteString(activeStyle.Render(fmt.Sprintf("current: %s", data.CurrentTask)))
		if data.Elapsed != "" {
			b.WriteString(fmt.Sprintf(" (%s elapsed)", data.Elapsed))
		}
		b.WriteString("\n")
	}
	if data.ProgressView != "" {
		b.WriteString(data.ProgressView + "\n")
	}
	b.WriteString(data.ProgressLine)
	if data.Remaining != "" {
		b.WriteString(fmt.Sprintf(", %s planned ahead", data.Remaining))
	}
	return strings.TrimSpace(b.String())
}

// ScheduleStatus is the marker shown in the status column of the schedule table.
func ScheduleStatus(row ScheduleRowData) string {
	switch {
	case row.Done:
		return "done"
	case row.Active:
		return "> now"
	default:
		return "pending"
	}
}

func RenderAdvicePanel(data AdvicePanelData) string {
	var b strings.Builder
	b.WriteString("advisor:\n")
	if len(data.Messages) == 0 {
		b.WriteString(mutedStyle.Render("(nothing to report)") + "\n")
	}
	for _, msg := range data.Messages {
		b.WriteString("- " + msg + "\n")
	}
	if data.OfferAdjustment {
		b.WriteString(warningStyle.Render(fmt.Sprintf("behind by %s: press [y] to compress the remaining tasks", data.Delay)) + "\n")
	}
	if data.Tip != "" {
		b.WriteString("\ntip: " + data.Tip)
	}
	return strings.TrimSpace(b.String())
}

func RenderAnalyticsPanel(data AnalyticsPanelData) string {
	var b strings.Builder
	b.WriteString("analytics:\n")

	b.WriteString("\ncategories:\n")
	if len(data.Categories) == 0 {
		b.WriteString("  (none)\n")
	}
	widest := 0
	for _, c := range data.Categories {
		if c.Count > widest {
			widest = c.Count
		}
	}
	for _, c := range data.Categories {
		b.WriteString(fmt.Sprintf("  %-9s %s %d\n", c.Name, CountBar(c.Count, widest, 20), c.Count))
	}

	b.WriteString("\nprogress over time:\n")
	if len(data.History) == 0 {
		b.WriteString("  (day not started)\n")
	}
	for _, h := range data.History {
		b.WriteString(fmt.Sprintf("  %s %5.1f%% (%d/%d)\n", h.Time, h.Percent, h.Completed, h.Total))
	}

	b.WriteString("\ncompleted:\n")
	if len(data.Completed) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, c := range data.Completed {
		b.WriteString(fmt.Sprintf("  %s planned %dm, took %s\n", c.Name, c.Planned, c.Actual))
	}
	return strings.TrimSpace(b.String())
}

// CountBar draws a proportional bar of at most width cells.
func CountBar(count, max, width int) string {
	if max <= 0 || count <= 0 || width <= 0 {
		return ""
	}
	filled := count * width / max
	if filled == 0 {
		filled = 1
	}
	return strings.Repeat("#", filled)
}

func RenderNotificationsPanel(items []NotificationData, limit int) string {
	if len(items) == 0 {
		return ""
	}
	if limit > 0 && len(items) > limit {
		items = items[len(items)-limit:]
	}
	var b strings.Builder
	b.WriteString("notifications:\n")
	for i := len(items) - 1; i >= 0; i-- {
		b.WriteString(fmt.Sprintf("[%s] %s\n", items[i].At, items[i].Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderAddForm(data AddFormData) string {
	if !data.Active {
		return ""
	}
	var b strings.Builder
	b.WriteString("add task:\n")
	b.WriteString("keys: [tab] next field [enter] add [esc] cancel\n")
	for _, f := range data.Fields {
		cursor := " "
		if f.Focused {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %-9s %s\n", cursor, f.Label+":", f.View))
	}
	if data.ErrorText != "" {
		b.WriteString(errorStyle.Render("error: "+data.ErrorText) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderTaskDetail(data TaskDetailData) string {
	if data.Name == "" {
		return "details:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("details:\n")
	b.WriteString(fmt.Sprintf("name: %s\n", data.Name))
	b.WriteString(fmt.Sprintf("priority: %s | category: %s\n", data.Priority, data.Category))
	b.WriteString(fmt.Sprintf("planned: %dm", data.Planned))
	if data.Actual != "" {
		b.WriteString(fmt.Sprintf(" | actual: %s", data.Actual))
	}
	b.WriteString("\n")
	if data.MarkdownView != "" {
		b.WriteString("\n" + data.MarkdownView)
	}
	return strings.TrimSpace(b.String())
}

func RenderSuggestions(suggestions []string) string {
	var b strings.Builder
	b.WriteString("quick add (/quick <n>):\n")
	for i, s := range suggestions {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, s))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("help:\n")
	if len(data.Bindings) > 0 {
		b.WriteString(strings.ToLower(data.CurrentView) + " view:\n")
		b.WriteString(strings.Join(data.Bindings, "\n") + "\n")
	}
	b.WriteString("global:\n")
	b.WriteString(data.HelpView)
	return strings.TrimSpace(b.String())
}
