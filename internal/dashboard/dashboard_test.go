package dashboard

import (
	"testing"
	"time"

	"github.com/sandeepkv93/dayplanner/internal/advisor"
	"github.com/sandeepkv93/dayplanner/internal/model"
	"github.com/sandeepkv93/dayplanner/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dayStart = time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC)

func newSession(t *testing.T, now *time.Time, specs ...model.TaskSpec) *planner.Session {
	t.Helper()
	s := planner.NewSession(planner.WithClock(func() time.Time { return *now }))
	for _, sp := range specs {
		_, err := s.AddTask(sp)
		require.NoError(t, err)
	}
	return s
}

func spec(name string, minutes int, p model.Priority, c model.Category) model.TaskSpec {
	return model.TaskSpec{Name: name, DurationMinutes: minutes, Priority: p, Category: c}
}

func TestDeriveBeforeStartShowsRawDurations(t *testing.T) {
	now := dayStart
	s := newSession(t, &now,
		spec("A", 30, model.PriorityLow, model.CategoryWork),
		spec("B", 45, model.PriorityHigh, model.CategoryHealth),
	)

	vm := Derive(s, advisor.NewEngine(1), now)
	assert.False(t, vm.Started)
	require.Len(t, vm.Rows, 2)
	for _, r := range vm.Rows {
		assert.Nil(t, r.Window)
		assert.False(t, r.IsActive)
	}
	assert.Equal(t, 45*time.Minute, vm.Rows[1].RawDuration)
	assert.Empty(t, vm.Messages)
	assert.Contains(t, advisor.Tips(), vm.Tip)
	assert.Equal(t, "Progress: 0/2 tasks completed (0%)", vm.ProgressLine())
}

func TestDeriveAfterStart(t *testing.T) {
	now := dayStart
	s := newSession(t, &now,
		spec("A", 30, model.PriorityHigh, model.CategoryWork),
		spec("B", 45, model.PriorityMedium, model.CategoryWork),
		spec("C", 20, model.PriorityLow, model.CategoryHealth),
	)
	require.NoError(t, s.StartDay())
	now = now.Add(10 * time.Minute)
	_, err := s.CompleteCurrent()
	require.NoError(t, err)

	vm := Derive(s, advisor.NewEngine(1), now)
	assert.True(t, vm.Started)
	assert.True(t, vm.StartTime.Equal(dayStart))
	require.Len(t, vm.Rows, 3)

	require.NotNil(t, vm.Rows[2].Window)
	assert.True(t, vm.Rows[2].Window.Start.Equal(dayStart.Add(75*time.Minute)))
	assert.True(t, vm.Rows[2].Window.End.Equal(dayStart.Add(95*time.Minute)))
	assert.True(t, vm.Rows[0].IsComplete)
	assert.True(t, vm.Rows[1].IsActive)

	row, ok := vm.CurrentRow()
	require.True(t, ok)
	assert.Equal(t, "B", row.Task.Name)
	assert.Equal(t, 65*time.Minute, vm.Remaining())

	assert.Equal(t, "Progress: 1/3 tasks completed (33%)", vm.ProgressLine())
	assert.Equal(t, []string{advisor.MessageOnTrack}, vm.Messages)
	assert.Len(t, vm.History, 2)
	assert.Equal(t, []planner.CategoryCount{
		{Category: model.CategoryWork, Count: 2},
		{Category: model.CategoryHealth, Count: 1},
	}, vm.Categories)
}

func TestDeriveDoesNotMutateSession(t *testing.T) {
	now := dayStart
	s := newSession(t, &now, spec("A", 30, model.PriorityHigh, model.CategoryWork))
	require.NoError(t, s.StartDay())
	before := s.Tasks()
	history := s.History()

	now = now.Add(2 * time.Hour)
	Derive(s, advisor.NewEngine(1), now)
	Derive(s, nil, now)

	assert.Equal(t, before, s.Tasks())
	assert.Equal(t, history, s.History())
	assert.Empty(t, s.Notifications())
}

func TestMessagesOrder(t *testing.T) {
	got := Messages(advisor.Advice{
		OfferAdjustment: true,
		Recommendations: []advisor.Recommendation{
			{Kind: advisor.KindFocus, Message: advisor.MessageFocus},
			{Kind: advisor.KindReprioritize, Message: advisor.MessageReprioritize},
		},
		DayComplete: true,
	})
	assert.Equal(t, []string{
		advisor.MessageBehindSchedule,
		advisor.MessageFocus,
		advisor.MessageReprioritize,
		advisor.MessageDayComplete,
	}, got)
}

func TestDeriveDayComplete(t *testing.T) {
	now := dayStart
	s := newSession(t, &now, spec("A", 30, model.PriorityLow, model.CategoryLearning))
	require.NoError(t, s.StartDay())
	now = now.Add(30 * time.Minute)
	_, err := s.CompleteCurrent()
	require.NoError(t, err)

	vm := Derive(s, advisor.NewEngine(1), now)
	_, ok := vm.CurrentRow()
	assert.False(t, ok)
	assert.Equal(t, []string{advisor.MessageDayComplete}, vm.Messages)
	assert.Zero(t, vm.Remaining())
}
