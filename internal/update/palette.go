package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/dayplanner/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m, nil
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.report("", err)
		return m
	}

	res, err := commands.Execute(cmd, m.paletteHandlers())
	m.report(res.Message, err)
	return m
}

// paletteHandlers binds each palette command to the planner action it names.
// The closures capture m, so they must run before m is returned.
func (m *Model) paletteHandlers() commands.Handlers {
	wrap := func(msg string, err error) (commands.Result, error) {
		if err != nil {
			return commands.Result{}, err
		}
		return commands.Result{Message: msg}, nil
	}
	return commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m.CurrentView = ViewPlanner
			return wrap(m.addTask(a.Spec))
		},
		Quick: func(q commands.QuickArgs) (commands.Result, error) {
			m.CurrentView = ViewPlanner
			return wrap(m.quickAdd(q.Name))
		},
		Start: func() (commands.Result, error) {
			return wrap(m.startDay())
		},
		Done: func(d commands.DoneArgs) (commands.Result, error) {
			if d.Current {
				return wrap(m.completeCurrent())
			}
			return wrap(m.completeAt(d.Index))
		},
		Adjust: func() (commands.Result, error) {
			return wrap(m.adjustSchedule())
		},
		Reset: func() (commands.Result, error) {
			return wrap(m.resetDay())
		},
	}
}
