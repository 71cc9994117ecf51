package cli

import (
	"fmt"
	"io"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/dayplanner/internal/advisor"
	"github.com/sandeepkv93/dayplanner/internal/config"
	"github.com/sandeepkv93/dayplanner/internal/storage"
	"github.com/sandeepkv93/dayplanner/internal/update"
	"github.com/spf13/cobra"
)

const (
	flagJournal  = "journal"
	flagSeed     = "seed"
	flagDesktop  = "desktop-notifications"
	flagDebugLog = "debug-log"
)

// NewRootCmd builds the command tree. Running it without a subcommand starts the planner TUI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "dayplanner",
		Short:        "Terminal day planner with a scheduling advisor",
		Long:         `dayplanner orders today's tasks by priority, lays them out back to back and nudges you when the day slips behind.`,
		Version:      "0.1.0",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runPlanner,
	}

	flags := root.PersistentFlags()
	flags.String(flagJournal, "", "sqlite file that archives finished days (overrides "+config.EnvJournalPath+")")
	flags.Uint64(flagSeed, 0, "seed for advisor randomness, 0 picks one from the clock")
	flags.Bool(flagDesktop, false, "send desktop notifications")
	flags.String(flagDebugLog, "", "append debug logs to this file")

	root.AddCommand(newPreviewCmd(), newJournalCmd(), newSuggestionsCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig resolves the runtime config and lets explicitly set flags win.
func loadConfig(cmd *cobra.Command) (config.RuntimeConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.RuntimeConfig{}, err
	}
	flags := cmd.Flags()
	if flags.Changed(flagJournal) {
		cfg.JournalPath, _ = flags.GetString(flagJournal)
	}
	if flags.Changed(flagSeed) {
		cfg.Seed, _ = flags.GetUint64(flagSeed)
	}
	if flags.Changed(flagDesktop) {
		cfg.DesktopNotifications, _ = flags.GetBool(flagDesktop)
	}
	if flags.Changed(flagDebugLog) {
		cfg.DebugLogPath, _ = flags.GetString(flagDebugLog)
	}
	return cfg, nil
}

func runPlanner(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so log lines go to a file or nowhere.
	if cfg.DebugLogPath != "" {
		f, err := tea.LogToFile(cfg.DebugLogPath, "dayplanner")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	deps := update.Deps{Engine: advisor.NewEngine(cfg.ResolvedSeed(time.Now()))}
	if cfg.DesktopNotifications {
		deps.Notifier = update.ExecDesktopNotifier{}
	}
	if cfg.JournalPath != "" {
		journal, err := storage.OpenSQLite(cfg.JournalPath)
		if err != nil {
			return fmt.Errorf("opening journal: %w", err)
		}
		defer journal.Close()
		deps.Journal = journal
	}

	log.Printf("starting planner (tick=%s journal=%q)", cfg.Tick(), cfg.JournalPath)
	program := tea.NewProgram(update.NewModelWithConfig(cfg, deps))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("planner failed: %w", err)
	}
	return nil
}
