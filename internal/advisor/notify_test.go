package advisor

import (
	"testing"
	"time"

	"github.com/sandeepkv93/dayplanner/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationPolicyDue(t *testing.T) {
	p := DefaultNotificationPolicy()
	tests := []struct {
		name    string
		elapsed time.Duration
		count   int
		draw    float64
		want    bool
	}{
		{name: "inside window lucky draw", elapsed: 2*time.Minute + 500*time.Millisecond, count: 2, draw: 0.01, want: true},
		{name: "inside window unlucky draw", elapsed: 2 * time.Minute, count: 2, draw: 0.5, want: false},
		{name: "draw at probability", elapsed: 2 * time.Minute, count: 2, draw: 0.05, want: false},
		{name: "outside window", elapsed: 90 * time.Second, count: 2, draw: 0, want: false},
		{name: "window edge", elapsed: time.Minute + time.Second, count: 2, draw: 0, want: false},
		{name: "cap reached", elapsed: 3 * time.Minute, count: 5, draw: 0, want: false},
		{name: "negative elapsed", elapsed: -time.Minute, count: 2, draw: 0, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Due(tt.elapsed, tt.count, tt.draw))
		})
	}
}

func TestNotifyBeforeStartIsEmpty(t *testing.T) {
	s, clock := setupSession(t, task("A", 30, model.PriorityHigh))
	assert.Nil(t, NewEngine(1).Notify(s, clock.Now()))
}

func TestNotifyWelcomesOnFirstInteraction(t *testing.T) {
	s, clock := setupSession(t, task("A", 30, model.PriorityHigh))
	require.NoError(t, s.StartDay())

	got := NewEngine(1).Notify(s, clock.Now())
	require.Len(t, got, 2)
	assert.Equal(t, welcomeMessages[0], got[0].Message)
	assert.Equal(t, welcomeMessages[1], got[1].Message)
	assert.True(t, got[0].At.Equal(dayStart))
}

func TestNotifyRespectsCap(t *testing.T) {
	s, clock := setupSession(t, task("A", 30, model.PriorityHigh))
	require.NoError(t, s.StartDay())
	always := NotificationPolicy{Max: 3, Interval: time.Minute, Window: time.Minute, Probability: 1}
	engine := NewEngine(1, WithPolicy(always))

	s.AddNotifications(engine.Notify(s, clock.Now())...)
	require.Len(t, s.Notifications(), 2)

	clock.Advance(time.Minute)
	got := engine.Notify(s, clock.Now())
	require.Len(t, got, 1)
	assert.Contains(t, periodicMessages, got[0].Message)
	s.AddNotifications(got...)

	clock.Advance(time.Minute)
	assert.Empty(t, engine.Notify(s, clock.Now()))
}

func TestNotifyDeterministicForSeed(t *testing.T) {
	always := NotificationPolicy{Max: 100, Interval: time.Minute, Window: time.Minute, Probability: 1}
	run := func() []string {
		s, clock := setupSession(t, task("A", 30, model.PriorityHigh))
		require.NoError(t, s.StartDay())
		engine := NewEngine(5, WithPolicy(always))
		var out []string
		for i := 0; i < 10; i++ {
			batch := engine.Notify(s, clock.Now())
			s.AddNotifications(batch...)
			for _, n := range batch {
				out = append(out, n.Message)
			}
			clock.Advance(time.Minute)
		}
		return out
	}
	assert.Equal(t, run(), run())
}

func TestTipsDoNotShiftReductions(t *testing.T) {
	quiet := NewEngine(11)
	chatty := NewEngine(11)
	for i := 0; i < 50; i++ {
		chatty.Tip()
	}
	for i := 0; i < 5; i++ {
		assert.Equal(t, quiet.reduction(), chatty.reduction())
	}
}

func TestTipComesFromPool(t *testing.T) {
	engine := NewEngine(3)
	pool := Tips()
	for i := 0; i < 20; i++ {
		assert.Contains(t, pool, engine.Tip())
	}

	pool[0] = "mutated"
	assert.NotEqual(t, "mutated", Tips()[0])
}
