package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sandeepkv93/dayplanner/internal/advisor"
	"github.com/sandeepkv93/dayplanner/internal/commands"
	"github.com/sandeepkv93/dayplanner/internal/dashboard"
	"github.com/sandeepkv93/dayplanner/internal/model"
	"github.com/sandeepkv93/dayplanner/internal/planner"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const clockLayout = "15:04"

var errEmptyTaskFile = errors.New("task file has no tasks")

// taskFile is the YAML shape accepted by preview:
//
//	tasks:
//	  - name: Write report
//	    duration: 45
//	    priority: high
//	    category: work
type taskFile struct {
	Tasks []taskEntry `yaml:"tasks"`
}

type taskEntry struct {
	Name     string `yaml:"name"`
	Duration int    `yaml:"duration"`
	Priority string `yaml:"priority"`
	Category string `yaml:"category"`
	Notes    string `yaml:"notes"`
}

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <tasks.yaml>",
		Short: "Print the schedule a list of tasks would produce",
		Long:  `Load tasks from a YAML file, order them by priority and print each task's time window along with the advisor's opening advice.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runPreview,
	}
	cmd.Flags().String("start", "", "day start as HH:MM (default: now)")
	return cmd
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	specs, err := loadTaskFile(args[0])
	if err != nil {
		return err
	}
	raw, _ := cmd.Flags().GetString("start")
	start, err := parseStart(raw, time.Now())
	if err != nil {
		return err
	}

	session := planner.NewSession(planner.WithClock(func() time.Time { return start }))
	for i, spec := range specs {
		if _, err := session.AddTask(spec); err != nil {
			return fmt.Errorf("task %d (%q): %w", i+1, spec.Name, err)
		}
	}
	if err := session.StartDay(); err != nil {
		return err
	}
	engine := advisor.NewEngine(cfg.ResolvedSeed(start))
	return writePreview(cmd, session, dashboard.Derive(session, engine, start))
}

func writePreview(cmd *cobra.Command, session *planner.Session, vm dashboard.ViewModel) error {
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTASK\tPRIORITY\tCATEGORY\tSTART\tEND\tMINUTES")
	for i, row := range vm.Rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%d\n",
			i+1,
			row.Task.Name,
			row.Task.Priority,
			row.Task.Category,
			row.Window.Start.Format(clockLayout),
			row.Window.End.Format(clockLayout),
			row.Task.DurationPlanned,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if windows := session.Windows(); len(windows) > 0 {
		fmt.Fprintf(out, "\nDay ends at %s\n", windows[len(windows)-1].End.Format(clockLayout))
	}
	for _, msg := range vm.Messages {
		fmt.Fprintf(out, "- %s\n", msg)
	}
	return nil
}

// loadTaskFile reads a task file, filling omitted fields with the /add defaults.
func loadTaskFile(path string) ([]model.TaskSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading task file: %w", err)
	}
	var doc taskFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", model.ErrValidation, path, err)
	}
	if len(doc.Tasks) == 0 {
		return nil, fmt.Errorf("%w: %s", errEmptyTaskFile, path)
	}

	specs := make([]model.TaskSpec, 0, len(doc.Tasks))
	for i, entry := range doc.Tasks {
		spec := model.TaskSpec{
			Name:            entry.Name,
			DurationMinutes: entry.Duration,
			Priority:        commands.DefaultPriority,
			Category:        commands.DefaultCategory,
			Notes:           entry.Notes,
		}
		if spec.DurationMinutes == 0 {
			spec.DurationMinutes = commands.DefaultDurationMinutes
		}
		if strings.TrimSpace(entry.Priority) != "" {
			if spec.Priority, err = model.ParsePriority(entry.Priority); err != nil {
				return nil, fmt.Errorf("task %d: %w", i+1, err)
			}
		}
		if strings.TrimSpace(entry.Category) != "" {
			if spec.Category, err = model.ParseCategory(entry.Category); err != nil {
				return nil, fmt.Errorf("task %d: %w", i+1, err)
			}
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// parseStart reads HH:MM as a time on now's date. Empty means now.
func parseStart(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now, nil
	}
	clock, err := time.Parse(clockLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: start %q is not HH:MM", model.ErrValidation, raw)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, now.Location()), nil
}
