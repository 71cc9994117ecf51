package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/dayplanner/internal/advisor"
	"github.com/sandeepkv93/dayplanner/internal/config"
	"github.com/sandeepkv93/dayplanner/internal/model"
	"github.com/sandeepkv93/dayplanner/internal/planner"
	"github.com/sandeepkv93/dayplanner/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the user's config file and DAYPLANNER_* variables out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, name := range []string{
		config.EnvConfigPath,
		config.EnvDesktopNotifications,
		config.EnvTickSeconds,
		config.EnvSeed,
		config.EnvJournalPath,
		config.EnvDebugLogPath,
	} {
		t.Setenv(name, "")
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// lineWith returns the first output line mentioning needle.
func lineWith(t *testing.T, out, needle string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, needle) {
			return line
		}
	}
	t.Fatalf("no line contains %q in:\n%s", needle, out)
	return ""
}

func TestPreviewPrintsScheduleInPriorityOrder(t *testing.T) {
	isolate(t)
	path := writeFile(t, "tasks.yaml", `
tasks:
  - name: Errands
    duration: 20
    priority: low
    category: personal
  - name: Write report
    duration: 45
    priority: high
  - name: Standup
`)

	out, err := run(t, "preview", path, "--start", "09:00")
	require.NoError(t, err)

	report := lineWith(t, out, "Write report")
	assert.Contains(t, report, "09:00")
	assert.Contains(t, report, "09:45")
	assert.Contains(t, report, "High")

	standup := lineWith(t, out, "Standup")
	assert.Contains(t, standup, "09:45")
	assert.Contains(t, standup, "10:15")
	assert.Contains(t, standup, "Medium")
	assert.Contains(t, standup, "Work")

	errands := lineWith(t, out, "Errands")
	assert.Contains(t, errands, "10:15")
	assert.Contains(t, errands, "10:35")
	assert.Contains(t, errands, "Personal")

	assert.Less(t, strings.Index(out, "Write report"), strings.Index(out, "Standup"))
	assert.Less(t, strings.Index(out, "Standup"), strings.Index(out, "Errands"))
	assert.Contains(t, out, "Day ends at 10:35")
	assert.Contains(t, out, "- "+advisor.MessageOnTrack)
}

func TestPreviewWarnsAboutTooManyHighPriorityTasks(t *testing.T) {
	isolate(t)
	var b strings.Builder
	b.WriteString("tasks:\n")
	for _, name := range []string{"A", "B", "C", "D"} {
		b.WriteString("  - name: " + name + "\n    priority: high\n")
	}
	path := writeFile(t, "tasks.yaml", b.String())

	out, err := run(t, "preview", path, "--start", "08:00")
	require.NoError(t, err)
	assert.Contains(t, out, advisor.MessageReprioritize)
	assert.NotContains(t, out, advisor.MessageOnTrack)
	assert.Contains(t, out, "Day ends at 10:00")
}

func TestPreviewRejectsBadInput(t *testing.T) {
	isolate(t)
	tests := []struct {
		name  string
		body  string
		start string
		want  string
		isErr error
	}{
		{
			name:  "unknown priority",
			body:  "tasks:\n  - name: A\n    priority: urgent\n",
			want:  "invalid task priority",
			isErr: model.ErrValidation,
		},
		{
			name:  "unknown category",
			body:  "tasks:\n  - name: A\n    category: chores\n",
			want:  "invalid task category",
			isErr: model.ErrValidation,
		},
		{
			name: "duration over the limit",
			body: "tasks:\n  - name: A\n    duration: 481\n",
			want: "outside [5, 480]",
		},
		{
			name: "missing name",
			body: "tasks:\n  - duration: 30\n",
			want: "task name is required",
		},
		{
			name: "no tasks",
			body: "tasks: []\n",
			want: "no tasks",
		},
		{
			name: "not yaml",
			body: "tasks: [unterminated\n",
			want: "parsing",
		},
		{
			name:  "bad start",
			body:  "tasks:\n  - name: A\n",
			start: "9am",
			want:  "not HH:MM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "tasks.yaml", tt.body)
			args := []string{"preview", path}
			if tt.start != "" {
				args = append(args, "--start", tt.start)
			}
			_, err := run(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			if tt.isErr != nil {
				require.ErrorIs(t, err, tt.isErr)
			}
		})
	}
}

func TestPreviewRequiresFileArgument(t *testing.T) {
	isolate(t)
	_, err := run(t, "preview")
	require.Error(t, err)
}

func TestParseStart(t *testing.T) {
	now := time.Date(2026, 2, 9, 14, 30, 0, 0, time.UTC)

	got, err := parseStart("", now)
	require.NoError(t, err)
	assert.Equal(t, now, got)

	got, err = parseStart(" 07:05 ", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 9, 7, 5, 0, 0, time.UTC), got)

	_, err = parseStart("25:00", now)
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestSuggestions(t *testing.T) {
	isolate(t)
	out, err := run(t, "suggestions")
	require.NoError(t, err)

	assert.Contains(t, lineWith(t, out, "Team meeting"), "Work")
	assert.Contains(t, lineWith(t, out, "Morning workout"), "Work")
	assert.Contains(t, lineWith(t, out, "Lunch break"), "Personal")
	assert.Contains(t, lineWith(t, out, "Plan for tomorrow"), "8")
	assert.NotContains(t, out, "Tips:")

	out, err = run(t, "suggestions", "--tips")
	require.NoError(t, err)
	assert.Contains(t, out, "Tips:")
	for _, tip := range advisor.Tips() {
		assert.Contains(t, out, tip)
	}
}

func TestJournalRequiresPath(t *testing.T) {
	isolate(t)
	_, err := run(t, "journal")
	require.ErrorIs(t, err, errJournalDisabled)
}

func archiveSampleDay(t *testing.T, path, id string) {
	t.Helper()
	start := time.Date(2026, 2, 9, 9, 0, 0, 0, time.Local)
	now := start
	s := planner.NewSession(planner.WithClock(func() time.Time { return now }))
	_, err := s.AddTask(model.TaskSpec{Name: "Deep work", DurationMinutes: 30, Priority: model.PriorityHigh, Category: model.CategoryWork})
	require.NoError(t, err)
	_, err = s.AddTask(model.TaskSpec{Name: "Walk", DurationMinutes: 20, Priority: model.PriorityLow, Category: model.CategoryHealth})
	require.NoError(t, err)
	require.NoError(t, s.StartDay())
	now = now.Add(25 * time.Minute)
	_, err = s.CompleteCurrent()
	require.NoError(t, err)

	record, ok := storage.NewDayRecord(id, s, now.Add(time.Hour))
	require.True(t, ok)

	journal, err := storage.OpenSQLite(path)
	require.NoError(t, err)
	defer journal.Close()
	require.NoError(t, journal.SaveDay(context.Background(), record))
}

func TestJournalListShowRemove(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "journal.db")
	archiveSampleDay(t, path, "day-1")

	out, err := run(t, "journal", "--journal", path)
	require.NoError(t, err)
	row := lineWith(t, out, "day-1")
	assert.Contains(t, row, "2026-02-09")
	assert.Contains(t, row, "09:00")
	assert.Contains(t, row, "10:25")
	assert.Contains(t, row, "1/2 (50%)")

	out, err = run(t, "journal", "--since", "2026-02-10", "--journal", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No archived days.")

	t.Setenv(config.EnvJournalPath, path)
	out, err = run(t, "journal", "show", "day-1")
	require.NoError(t, err)
	assert.Contains(t, out, "1/2 tasks completed")
	assert.Contains(t, lineWith(t, out, "Deep work"), "25m")
	assert.Contains(t, lineWith(t, out, "Deep work"), "yes")
	assert.Contains(t, lineWith(t, out, "Walk"), "-")

	out, err = run(t, "journal", "rm", "day-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted day day-1.")

	_, err = run(t, "journal", "show", "day-1")
	require.ErrorIs(t, err, storage.ErrNotFound)
	_, err = run(t, "journal", "rm", "day-1")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestJournalRejectsBadSince(t *testing.T) {
	isolate(t)
	_, err := run(t, "journal", "--since", "yesterday", "--journal", filepath.Join(t.TempDir(), "j.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --since")
}

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvSeed, "5")
	t.Setenv(config.EnvJournalPath, "/tmp/env.db")

	root := NewRootCmd()
	require.NoError(t, root.ParseFlags([]string{"--seed", "9", "--desktop-notifications"}))
	cfg, err := loadConfig(root)
	require.NoError(t, err)

	assert.Equal(t, uint64(9), cfg.Seed)
	assert.True(t, cfg.DesktopNotifications)
	assert.Equal(t, "/tmp/env.db", cfg.JournalPath)
	assert.Equal(t, 5, cfg.TickSeconds)
}

func TestLoadConfigReadsFile(t *testing.T) {
	isolate(t)
	path := writeFile(t, "config.yaml", "tick_seconds: 2\nseed: 42\n")
	t.Setenv(config.EnvConfigPath, path)

	cfg, err := loadConfig(NewRootCmd())
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.TickSeconds)
	assert.Equal(t, uint64(42), cfg.Seed)
}

func TestRootRejectsUnknownCommand(t *testing.T) {
	isolate(t)
	_, err := run(t, "plan-my-week")
	require.Error(t, err)
}
