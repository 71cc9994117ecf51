package model

import "strings"

const QuickAddDurationMinutes = 30

var quickAddSuggestions = []string{
	"Morning workout",
	"Check and respond to emails",
	"Team meeting",
	"Project work",
	"Lunch break",
	"Client call",
	"Review daily progress",
	"Plan for tomorrow",
}

func QuickAddSuggestions() []string {
	out := make([]string, len(quickAddSuggestions))
	copy(out, quickAddSuggestions)
	return out
}

// QuickAddSpec builds the default spec used for one-click suggestions.
func QuickAddSpec(name string) TaskSpec {
	return TaskSpec{
		Name:            name,
		DurationMinutes: QuickAddDurationMinutes,
		Priority:        PriorityMedium,
		Category:        inferCategory(name),
	}
}

func inferCategory(name string) Category {
	lower := strings.ToLower(name)
	for _, word := range []string{"meeting", "email", "work"} {
		if strings.Contains(lower, word) {
			return CategoryWork
		}
	}
	return CategoryPersonal
}
