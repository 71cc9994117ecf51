package advisor

import (
	"time"

	"github.com/sandeepkv93/dayplanner/internal/model"
	"github.com/sandeepkv93/dayplanner/internal/planner"
)

var welcomeMessages = []string{
	"Welcome to your AI Day Planner! I'll help you stay on track.",
	"Remember to take short breaks between tasks for optimal productivity.",
}

var periodicMessages = []string{
	"Taking a 5-minute break now could boost your productivity for the next task.",
	"You're making good progress! Keep going!",
	"Remember to stay hydrated for optimal focus.",
	"Consider adjusting your posture to prevent strain during computer work.",
	"It might be a good time to check in with your team on project progress.",
}

var tips = []string{
	"Try the Pomodoro Technique: 25 minutes of focused work followed by a 5-minute break.",
	"Tackle your most challenging task first thing in the morning when your energy is highest.",
	"Block distracting websites during focused work periods.",
	"Stay hydrated throughout the day to maintain optimal brain function.",
	"Take a short walk between tasks to refresh your mind.",
}

// NotificationPolicy decides when a periodic nudge is due. A nudge fires when
// fewer than Max notifications exist, the elapsed time since day start falls
// inside the first Window of an Interval, and a draw lands under Probability.
type NotificationPolicy struct {
	Max         int
	Interval    time.Duration
	Window      time.Duration
	Probability float64
}

func DefaultNotificationPolicy() NotificationPolicy {
	return NotificationPolicy{
		Max:         5,
		Interval:    time.Minute,
		Window:      time.Second,
		Probability: 0.05,
	}
}

// Due is the deterministic half of the policy; draw is the random sample in [0, 1).
func (p NotificationPolicy) Due(elapsed time.Duration, count int, draw float64) bool {
	if count >= p.Max || elapsed < 0 || p.Interval <= 0 {
		return false
	}
	return elapsed%p.Interval < p.Window && draw < p.Probability
}

// Notify returns the notifications to append for this interaction. The first
// interaction after day start yields the welcome messages.
func (e *Engine) Notify(s *planner.Session, now time.Time) []model.Notification {
	day := s.Day()
	if !day.Started() {
		return nil
	}
	count := len(s.Notifications())
	if count == 0 {
		out := make([]model.Notification, 0, len(welcomeMessages))
		for _, msg := range welcomeMessages {
			out = append(out, model.Notification{At: now, Message: msg})
		}
		return out
	}
	if !e.policy.Due(now.Sub(*day.StartTime), count, e.rng.Float64()) {
		return nil
	}
	return []model.Notification{{At: now, Message: periodicMessages[e.rng.IntN(len(periodicMessages))]}}
}

// Tip picks one productivity tip.
func (e *Engine) Tip() string {
	return tips[e.tipRNG.IntN(len(tips))]
}

func Tips() []string {
	out := make([]string, len(tips))
	copy(out, tips)
	return out
}
