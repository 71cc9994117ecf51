package advisor

import (
	"testing"
	"time"

	"github.com/sandeepkv93/dayplanner/internal/model"
	"github.com/sandeepkv93/dayplanner/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dayStart = time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func setupSession(t *testing.T, specs ...model.TaskSpec) (*planner.Session, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: dayStart}
	s := planner.NewSession(planner.WithClock(clock.Now))
	for _, sp := range specs {
		_, err := s.AddTask(sp)
		require.NoError(t, err)
	}
	return s, clock
}

func task(name string, minutes int, p model.Priority) model.TaskSpec {
	return model.TaskSpec{Name: name, DurationMinutes: minutes, Priority: p, Category: model.CategoryWork}
}

func kinds(a Advice) []Kind {
	out := make([]Kind, 0, len(a.Recommendations))
	for _, r := range a.Recommendations {
		out = append(out, r.Kind)
	}
	return out
}

func durations(s *planner.Session) []int {
	out := make([]int, 0, s.TaskCount())
	for _, t := range s.Tasks() {
		out = append(out, t.DurationPlanned)
	}
	return out
}

// behindSession starts a day and finishes the first task 50 minutes into a
// 30-minute slot, leaving the second task 20 minutes late.
func behindSession(t *testing.T, specs ...model.TaskSpec) (*planner.Session, *fakeClock) {
	t.Helper()
	s, clock := setupSession(t, specs...)
	require.NoError(t, s.StartDay())
	clock.Advance(50 * time.Minute)
	_, err := s.CompleteCurrent()
	require.NoError(t, err)
	return s, clock
}

func TestEvaluateBeforeStartIsEmpty(t *testing.T) {
	s, clock := setupSession(t, task("A", 30, model.PriorityHigh))
	advice := NewEngine(1).Evaluate(s, clock.Now())
	assert.Equal(t, Advice{}, advice)
}

func TestEvaluateOnTrack(t *testing.T) {
	s, clock := setupSession(t, task("A", 30, model.PriorityMedium), task("B", 30, model.PriorityLow))
	require.NoError(t, s.StartDay())
	clock.Advance(10 * time.Minute)

	advice := NewEngine(1).Evaluate(s, clock.Now())
	assert.True(t, advice.OnTrack)
	assert.False(t, advice.OfferAdjustment)
	assert.Empty(t, advice.Recommendations)
	assert.False(t, advice.DayComplete)
}

func TestEvaluateOffersAdjustmentWhenBehind(t *testing.T) {
	s, clock := behindSession(t, task("A", 30, model.PriorityHigh), task("B", 30, model.PriorityMedium))

	advice := NewEngine(1).Evaluate(s, clock.Now())
	assert.True(t, advice.OfferAdjustment)
	assert.Equal(t, 20*time.Minute, advice.Delay)
}

func TestEvaluateNoOfferWithinThreshold(t *testing.T) {
	s, clock := setupSession(t, task("A", 30, model.PriorityHigh), task("B", 30, model.PriorityMedium))
	require.NoError(t, s.StartDay())
	clock.Advance(45 * time.Minute)
	_, err := s.CompleteCurrent()
	require.NoError(t, err)

	advice := NewEngine(1).Evaluate(s, clock.Now())
	assert.False(t, advice.OfferAdjustment, "exactly 15 minutes late is not behind")
}

func TestAdjustScheduleCompressesOnce(t *testing.T) {
	s, clock := behindSession(t,
		task("A", 30, model.PriorityHigh),
		task("B", 100, model.PriorityMedium),
		task("C", 15, model.PriorityLow),
	)
	engine := NewEngine(42)

	adjusted, err := engine.AdjustSchedule(s)
	require.NoError(t, err)
	assert.Equal(t, 1, adjusted)

	after := durations(s)
	assert.Equal(t, 30, after[0], "completed task untouched")
	assert.GreaterOrEqual(t, after[1], 80)
	assert.LessOrEqual(t, after[1], 90)
	assert.Equal(t, 15, after[2])
	assert.True(t, s.Day().ScheduleAdjusted)

	assert.False(t, engine.Evaluate(s, clock.Now()).OfferAdjustment)
	_, err = engine.AdjustSchedule(s)
	require.ErrorIs(t, err, model.ErrInvalidState)
	_, err = engine.AdjustSchedule(s)
	require.ErrorIs(t, err, model.ErrInvalidState)
	assert.Equal(t, after, durations(s))
}

func TestAdjustScheduleRejectedWhenOnTrack(t *testing.T) {
	s, _ := setupSession(t, task("A", 30, model.PriorityHigh), task("B", 100, model.PriorityLow))
	require.NoError(t, s.StartDay())

	_, err := NewEngine(1).AdjustSchedule(s)
	require.ErrorIs(t, err, model.ErrInvalidState)
	assert.Equal(t, []int{30, 100}, durations(s))
	assert.False(t, s.Day().ScheduleAdjusted)
}

func TestCompressionReductionBounds(t *testing.T) {
	specs := []model.TaskSpec{task("A", 30, model.PriorityHigh)}
	for i := 0; i < 40; i++ {
		specs = append(specs, task("edge", 16, model.PriorityMedium), task("big", 100, model.PriorityLow))
	}
	s, _ := behindSession(t, specs...)

	_, err := NewEngine(7).AdjustSchedule(s)
	require.NoError(t, err)
	for _, tk := range s.Tasks()[1:] {
		switch tk.Name {
		case "edge":
			assert.GreaterOrEqual(t, tk.DurationPlanned, 12)
			assert.LessOrEqual(t, tk.DurationPlanned, 14)
		case "big":
			assert.GreaterOrEqual(t, tk.DurationPlanned, 80)
			assert.LessOrEqual(t, tk.DurationPlanned, 90)
		}
	}
}

func TestCompressionDeterministicForSeed(t *testing.T) {
	specs := []model.TaskSpec{
		task("A", 30, model.PriorityHigh),
		task("B", 120, model.PriorityMedium),
		task("C", 90, model.PriorityLow),
	}
	first, _ := behindSession(t, specs...)
	second, _ := behindSession(t, specs...)

	_, err := NewEngine(99).AdjustSchedule(first)
	require.NoError(t, err)
	_, err = NewEngine(99).AdjustSchedule(second)
	require.NoError(t, err)
	assert.Equal(t, durations(first), durations(second))
}

func TestEvaluateOverrunOnHighPriority(t *testing.T) {
	s, clock := setupSession(t, task("A", 30, model.PriorityHigh), task("B", 30, model.PriorityLow))
	require.NoError(t, s.StartDay())
	engine := NewEngine(1)

	clock.Advance(24 * time.Minute)
	assert.NotContains(t, kinds(engine.Evaluate(s, clock.Now())), KindFocus, "80% exactly is not an overrun")

	clock.Advance(time.Minute)
	advice := engine.Evaluate(s, clock.Now())
	assert.Equal(t, []Kind{KindFocus}, kinds(advice))
	assert.False(t, advice.OnTrack)
}

func TestEvaluateOverrunIgnoresLowerPriorities(t *testing.T) {
	s, clock := setupSession(t, task("A", 30, model.PriorityMedium))
	require.NoError(t, s.StartDay())
	clock.Advance(2 * time.Hour)

	assert.Empty(t, NewEngine(1).Evaluate(s, clock.Now()).Recommendations)
}

func TestEvaluateMilestonePraise(t *testing.T) {
	s, clock := setupSession(t,
		task("A", 30, model.PriorityLow),
		task("B", 30, model.PriorityLow),
		task("C", 30, model.PriorityLow),
	)
	require.NoError(t, s.StartDay())
	engine := NewEngine(1)

	clock.Advance(30 * time.Minute)
	_, err := s.CompleteCurrent()
	require.NoError(t, err)
	assert.NotContains(t, kinds(engine.Evaluate(s, clock.Now())), KindBreak)

	clock.Advance(30 * time.Minute)
	_, err = s.CompleteCurrent()
	require.NoError(t, err)
	assert.Contains(t, kinds(engine.Evaluate(s, clock.Now())), KindBreak)
}

func TestEvaluateOverloadWarning(t *testing.T) {
	specs := []model.TaskSpec{
		task("H1", 30, model.PriorityHigh),
		task("H2", 30, model.PriorityHigh),
		task("H3", 30, model.PriorityHigh),
	}
	s, clock := setupSession(t, specs...)
	require.NoError(t, s.StartDay())
	assert.NotContains(t, kinds(NewEngine(1).Evaluate(s, clock.Now())), KindReprioritize)

	s, clock = setupSession(t, append(specs, task("H4", 30, model.PriorityHigh))...)
	require.NoError(t, s.StartDay())
	assert.Contains(t, kinds(NewEngine(1).Evaluate(s, clock.Now())), KindReprioritize)
}

func TestEvaluateCollectsAllApplicableRecommendations(t *testing.T) {
	s, clock := setupSession(t,
		task("L1", 5, model.PriorityLow),
		task("L2", 5, model.PriorityLow),
		task("L3", 5, model.PriorityLow),
		task("H1", 30, model.PriorityHigh),
		task("H2", 30, model.PriorityHigh),
		task("H3", 30, model.PriorityHigh),
		task("H4", 30, model.PriorityHigh),
	)
	require.NoError(t, s.StartDay())
	clock.Advance(time.Hour)

	advice := NewEngine(1).Evaluate(s, clock.Now())
	assert.Equal(t, []Kind{KindFocus, KindReprioritize}, kinds(advice))
}

func TestEvaluateDayComplete(t *testing.T) {
	s, clock := setupSession(t, task("A", 30, model.PriorityLow))
	require.NoError(t, s.StartDay())
	clock.Advance(30 * time.Minute)
	_, err := s.CompleteCurrent()
	require.NoError(t, err)

	advice := NewEngine(1).Evaluate(s, clock.Now())
	assert.True(t, advice.DayComplete)
	assert.False(t, advice.OnTrack)
	assert.Empty(t, advice.Recommendations)

	empty, clock := setupSession(t)
	require.NoError(t, empty.StartDay())
	assert.False(t, NewEngine(1).Evaluate(empty, clock.Now()).DayComplete)
}
