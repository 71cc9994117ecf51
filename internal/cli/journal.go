package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/sandeepkv93/dayplanner/internal/config"
	"github.com/sandeepkv93/dayplanner/internal/storage"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

var errJournalDisabled = errors.New("journal is disabled: pass --" + flagJournal + " or set " + config.EnvJournalPath)

func newJournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "List archived days",
		Long:  `List days archived by the planner when a day was reset or the app quit, newest first.`,
		Args:  cobra.NoArgs,
		RunE:  runJournalList,
	}
	cmd.Flags().Int("limit", 20, "maximum number of days to list, 0 for all")
	cmd.Flags().String("since", "", "only days started on or after this date (YYYY-MM-DD)")

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show the tasks of an archived day",
		Args:  cobra.ExactArgs(1),
		RunE:  runJournalShow,
	}, &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an archived day",
		Args:  cobra.ExactArgs(1),
		RunE:  runJournalRemove,
	})
	return cmd
}

// openJournal opens the configured journal. The caller closes it.
func openJournal(cmd *cobra.Command) (*storage.SQLiteJournal, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.JournalPath == "" {
		return nil, errJournalDisabled
	}
	return storage.OpenSQLite(cfg.JournalPath)
}

func runJournalList(cmd *cobra.Command, args []string) error {
	filter := storage.DayListFilter{}
	filter.Limit, _ = cmd.Flags().GetInt("limit")
	if since, _ := cmd.Flags().GetString("since"); since != "" {
		t, err := time.ParseInLocation(dateLayout, since, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since %q: want YYYY-MM-DD", since)
		}
		filter.Since = &t
	}

	journal, err := openJournal(cmd)
	if err != nil {
		return err
	}
	defer journal.Close()

	days, err := journal.ListDays(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("failed to list days: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(days) == 0 {
		fmt.Fprintln(out, "No archived days.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tSTARTED\tENDED\tDONE\tADJUSTED")
	for _, day := range days {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d/%d (%.0f%%)\t%s\n",
			day.ID,
			day.StartedAt.Local().Format(dateLayout),
			day.StartedAt.Local().Format(clockLayout),
			day.EndedAt.Local().Format(clockLayout),
			day.CompletedCount,
			day.TotalCount,
			day.CompletionPercentage,
			yesNo(day.ScheduleAdjusted),
		)
	}
	return w.Flush()
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	journal, err := openJournal(cmd)
	if err != nil {
		return err
	}
	defer journal.Close()

	day, err := journal.GetDay(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("day %s: %w", args[0], err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Day %s: %s %s-%s, %d/%d tasks completed\n\n",
		day.ID,
		day.StartedAt.Local().Format(dateLayout),
		day.StartedAt.Local().Format(clockLayout),
		day.EndedAt.Local().Format(clockLayout),
		day.CompletedCount,
		day.TotalCount,
	)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTASK\tPRIORITY\tCATEGORY\tPLANNED\tACTUAL\tDONE")
	for _, task := range day.Tasks {
		actual := "-"
		if task.ActualMinutes != nil {
			actual = fmt.Sprintf("%.0fm", *task.ActualMinutes)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%dm\t%s\t%s\n",
			task.Position+1,
			task.Name,
			task.Priority,
			task.Category,
			task.PlannedMinutes,
			actual,
			yesNo(task.Completed),
		)
	}
	return w.Flush()
}

func runJournalRemove(cmd *cobra.Command, args []string) error {
	journal, err := openJournal(cmd)
	if err != nil {
		return err
	}
	defer journal.Close()

	if err := journal.DeleteDay(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("day %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted day %s.\n", args[0])
	return nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
