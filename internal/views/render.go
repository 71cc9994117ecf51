package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// AppData is one frame of the app. Width is the terminal width, zero until
// the first resize arrives.
type AppData struct {
	Width        int
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
}

const (
	defaultLeftWidth  = 64
	defaultRightWidth = 52
	// Narrower terminals get the panes stacked.
	stackBelowWidth = 100
	// Border plus horizontal padding of panelStyle.
	panelChrome = 4
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	activeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	noticeStyle  = panelStyle.BorderForeground(lipgloss.Color("11"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// paneWidths splits the terminal between the two panes. stacked reports that
// each pane takes the full width instead.
func paneWidths(total int) (left, right int, stacked bool) {
	switch {
	case total <= 0:
		return defaultLeftWidth, defaultRightWidth, false
	case total < stackBelowWidth:
		w := max(total-panelChrome, 20)
		return w, w, true
	default:
		usable := total - 2*panelChrome
		left = usable * 55 / 100
		return left, usable - left, false
	}
}

func RenderApp(data AppData) string {
	lw, rw, stacked := paneWidths(data.Width)
	left := panelStyle.Width(lw).Render(data.LeftPane)
	right := panelStyle.Width(rw).Render(data.RightPane)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	if stacked {
		body = lipgloss.JoinVertical(lipgloss.Left, left, right)
	}

	status := statusStyle.Render(data.StatusLine)
	if data.StatusError {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{headerStyle.Render(data.Header), body, status}
	if data.Notification != "" {
		lines = append(lines, noticeStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
