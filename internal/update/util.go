package update

import (
	"fmt"
	"strings"
	"time"
)

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// formatMinutes renders a minute count as "45m" or "1h05m".
func formatMinutes(minutes float64) string {
	d := time.Duration(minutes * float64(time.Minute)).Round(time.Minute)
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	min := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", min)
	}
	return fmt.Sprintf("%dh%02dm", h, min)
}
