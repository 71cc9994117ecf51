package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/google/uuid"
	"github.com/sandeepkv93/dayplanner/internal/advisor"
	"github.com/sandeepkv93/dayplanner/internal/config"
	"github.com/sandeepkv93/dayplanner/internal/dashboard"
	"github.com/sandeepkv93/dayplanner/internal/model"
	"github.com/sandeepkv93/dayplanner/internal/planner"
	"github.com/sandeepkv93/dayplanner/internal/storage"
)

type View string

const (
	ViewPlanner   View = "Planner"
	ViewAnalytics View = "Analytics"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Planner   string
	Analytics string
	Help      string
	Quit      string
}

// Model owns the planner session. bubbletea delivers one message at a time,
// so the session is never touched concurrently.
type Model struct {
	CurrentView    View
	Session        *planner.Session
	Engine         *advisor.Engine
	Journal        storage.Journal
	VM             dashboard.ViewModel
	Cursor         int
	Form           AddFormState
	Palette        CommandPaletteState
	HelpVisible    bool
	Events         []Notification
	DesktopEnabled bool
	notifier       DesktopNotifier
	Status         StatusBar
	Keys           GlobalKeyMap
	PlannerKeys    PlannerKeyMap
	Width          int
	Quitting       bool
	LastError      error
	tick           time.Duration
	newID          func() string
	notesView      string
	// Bubble components used for rich TUI controls
	scheduleTable table.Model
	dayProgress   progress.Model
	commandInput  textinput.Model
	helpModel     help.Model
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Notification is a UI event: command results and errors. Advisor nudges live
// on the session.
type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

// Deps are the collaborators a Model runs against. Nil fields get defaults.
type Deps struct {
	Session  *planner.Session
	Engine   *advisor.Engine
	Journal  storage.Journal
	Notifier DesktopNotifier
	IDFunc   func() string
}

type TickMsg struct {
	At time.Time
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type AddTaskMsg struct {
	Spec model.TaskSpec
}

type QuickAddMsg struct {
	Name string
}

type StartDayMsg struct{}

type CompleteTaskMsg struct{}

type AdjustScheduleMsg struct{}

type ResetDayMsg struct{}

func NewModel() Model {
	return NewModelWithConfig(config.DefaultRuntimeConfig(), Deps{})
}

func NewModelWithConfig(cfg config.RuntimeConfig, deps Deps) Model {
	m := Model{
		CurrentView:    ViewPlanner,
		Session:        deps.Session,
		Engine:         deps.Engine,
		Journal:        deps.Journal,
		DesktopEnabled: cfg.DesktopNotifications,
		notifier:       NoopDesktopNotifier{},
		newID:          deps.IDFunc,
		tick:           cfg.Tick(),
		Keys: GlobalKeyMap{
			Planner:   "1",
			Analytics: "2",
			Help:      "?",
			Quit:      "q",
		},
		PlannerKeys: DefaultPlannerKeyMap(),
	}
	if m.Session == nil {
		m.Session = planner.NewSession()
	}
	if m.Engine == nil {
		m.Engine = advisor.NewEngine(cfg.ResolvedSeed(time.Now()))
	}
	if deps.Notifier != nil {
		m.notifier = deps.Notifier
	}
	if m.newID == nil {
		m.newID = uuid.NewString
	}
	if m.tick <= 0 {
		m.tick = config.DefaultRuntimeConfig().Tick()
	}
	m.initBubbleComponents()
	m.Form = newAddForm()
	m.refresh()
	return m
}

func (m *Model) initBubbleComponents() {
	cols := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Task", Width: 20},
		{Title: "Priority", Width: 8},
		{Title: "Category", Width: 9},
		{Title: "Time", Width: 11},
		{Title: "Status", Width: 7},
	}
	m.scheduleTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.dayProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
	m.helpModel = help.New()
}
