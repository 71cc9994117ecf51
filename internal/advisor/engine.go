// Package advisor evaluates heuristic recommendations against a planner
// session and owns the one-shot schedule compression.
package advisor

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sandeepkv93/dayplanner/internal/model"
	"github.com/sandeepkv93/dayplanner/internal/planner"
)

type Kind string

const (
	KindFocus        Kind = "focus"
	KindBreak        Kind = "break"
	KindReprioritize Kind = "reprioritize"
)

const (
	MessageBehindSchedule = "You're behind schedule! Would you like the AI to adjust your remaining tasks?"
	MessageFocus          = "Your current high-priority task is taking longer than expected. Consider focusing solely on this task and postponing lower priority items if needed."
	MessageBreak          = "Great progress today! You've completed over half of your planned tasks. Consider taking a short break to maintain productivity for the remaining tasks."
	MessageReprioritize   = "You have several high-priority tasks remaining. Consider re-evaluating their priorities or delegating some if possible."
	MessageOnTrack        = "You're on track with your schedule. Keep up the good work!"
	MessageDayComplete    = "Congratulations! You have completed all tasks for today!"
	MessageAdjusted       = "Schedule adjusted! Task durations have been optimized for the remaining day."
)

type Recommendation struct {
	Kind    Kind
	Message string
}

// Advice is everything the advisor has to say about the session at one instant.
type Advice struct {
	OfferAdjustment bool
	Delay           time.Duration
	Recommendations []Recommendation
	OnTrack         bool
	DayComplete     bool
}

// Rules holds the thresholds of each heuristic.
type Rules struct {
	BehindThreshold  time.Duration
	OverrunFactor    float64
	MilestoneFrac    float64
	OverloadCount    int
	CompressionFloor int
	MinReduction     float64
	MaxReduction     float64
}

func DefaultRules() Rules {
	return Rules{
		BehindThreshold:  15 * time.Minute,
		OverrunFactor:    0.8,
		MilestoneFrac:    0.5,
		OverloadCount:    3,
		CompressionFloor: 15,
		MinReduction:     0.10,
		MaxReduction:     0.20,
	}
}

type Engine struct {
	rules  Rules
	policy NotificationPolicy
	rng    *rand.Rand
	tipRNG *rand.Rand
}

type Option func(*Engine)

func WithRules(r Rules) Option {
	return func(e *Engine) { e.rules = r }
}

func WithPolicy(p NotificationPolicy) Option {
	return func(e *Engine) { e.policy = p }
}

// NewEngine seeds the engine RNGs. Tips draw from their own stream, so the
// same seed replays the same reductions and notifications however often the
// dashboard is rendered.
func NewEngine(seed uint64, opts ...Option) *Engine {
	e := &Engine{
		rules:  DefaultRules(),
		policy: DefaultNotificationPolicy(),
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		tipRNG: rand.New(rand.NewPCG(seed, seed^0xbf58476d1ce4e5b9)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Rules() Rules {
	return e.rules
}

// Evaluate runs every rule against s. It never mutates s.
func (e *Engine) Evaluate(s *planner.Session, now time.Time) Advice {
	var advice Advice
	day := s.Day()
	if !day.Started() || s.TaskCount() == 0 {
		return advice
	}

	if current, idx, ok := s.CurrentTask(); ok {
		if delay, behind := e.behindSchedule(s, current, idx); behind {
			advice.OfferAdjustment = true
			advice.Delay = delay
		}
		if current.Priority == model.PriorityHigh && current.StartedAt != nil {
			elapsed := now.Sub(*current.StartedAt).Minutes()
			if elapsed > float64(current.DurationPlanned)*e.rules.OverrunFactor {
				advice.Recommendations = append(advice.Recommendations, Recommendation{Kind: KindFocus, Message: MessageFocus})
			}
		}
		if s.CompletedFraction() > e.rules.MilestoneFrac {
			advice.Recommendations = append(advice.Recommendations, Recommendation{Kind: KindBreak, Message: MessageBreak})
		}
		if highPriorityRemaining(s.Tasks(), idx) > e.rules.OverloadCount {
			advice.Recommendations = append(advice.Recommendations, Recommendation{Kind: KindReprioritize, Message: MessageReprioritize})
		}
		advice.OnTrack = len(advice.Recommendations) == 0
	}

	advice.DayComplete = s.AllCompleted()
	return advice
}

// AdjustSchedule applies the compression offered by a behind-schedule advice.
// It fails without touching the session if the schedule is on track or was
// already adjusted this session.
func (e *Engine) AdjustSchedule(s *planner.Session) (int, error) {
	if s.Day().ScheduleAdjusted {
		return 0, fmt.Errorf("%w: schedule already adjusted", model.ErrInvalidState)
	}
	current, idx, ok := s.CurrentTask()
	if !ok {
		return 0, fmt.Errorf("%w: no active task", model.ErrInvalidState)
	}
	if _, behind := e.behindSchedule(s, current, idx); !behind {
		return 0, fmt.Errorf("%w: schedule is on track", model.ErrInvalidState)
	}
	return s.CompressSchedule(e.rules.CompressionFloor, e.reduction)
}

func (e *Engine) behindSchedule(s *planner.Session, current model.Task, idx int) (time.Duration, bool) {
	if s.Day().ScheduleAdjusted || current.StartedAt == nil {
		return 0, false
	}
	expected, err := s.ExpectedStart(idx)
	if err != nil {
		return 0, false
	}
	if current.StartedAt.After(expected.Add(e.rules.BehindThreshold)) {
		return current.StartedAt.Sub(expected), true
	}
	return 0, false
}

func (e *Engine) reduction() float64 {
	return e.rules.MinReduction + e.rng.Float64()*(e.rules.MaxReduction-e.rules.MinReduction)
}

func highPriorityRemaining(tasks []model.Task, from int) int {
	n := 0
	for _, t := range tasks[from:] {
		if t.Priority == model.PriorityHigh && !t.Completed {
			n++
		}
	}
	return n
}
