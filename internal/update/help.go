package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/dayplanner/internal/views"
)

// PlannerKeyMap holds the bindings of the planner view. The same bindings
// drive key matching and the help panel.
type PlannerKeyMap struct {
	Add    key.Binding
	Start  key.Binding
	Done   key.Binding
	Adjust key.Binding
	Reset  key.Binding
	Up     key.Binding
	Down   key.Binding
}

func DefaultPlannerKeyMap() PlannerKeyMap {
	return PlannerKeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add task"),
		),
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start day"),
		),
		Done: key.NewBinding(
			key.WithKeys("d", "enter"),
			key.WithHelp("d/enter", "complete current task"),
		),
		Adjust: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "accept schedule adjustment"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset day"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("k/up", "select previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("j/down", "select next"),
		),
	}
}

func (k PlannerKeyMap) bindings() []key.Binding {
	return []key.Binding{k.Add, k.Start, k.Done, k.Adjust, k.Reset, k.Up, k.Down}
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	var plain []string
	for _, b := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", b.Help().Key, b.Help().Desc))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView:    m.helpModel.FullHelpView([][]key.Binding{m.globalBindings()}),
	})
}

// globalBindings describes GlobalKeyMap, which stays a set of plain strings so
// the model can compare them against msg.String() directly.
func (m Model) globalBindings() []key.Binding {
	bind := func(k, desc string) key.Binding {
		return key.NewBinding(key.WithKeys(k), key.WithHelp(k, desc))
	}
	return []key.Binding{
		bind(m.Keys.Planner, "planner"),
		bind(m.Keys.Analytics, "analytics"),
		bind("/", "command palette"),
		bind(m.Keys.Help, "toggle help"),
		bind(m.Keys.Quit, "quit"),
	}
}

func (m Model) viewBindings() []key.Binding {
	switch m.CurrentView {
	case ViewPlanner:
		return m.PlannerKeys.bindings()
	case ViewAnalytics:
		return []key.Binding{key.NewBinding(key.WithKeys("/"), key.WithHelp("/quick <n>", "add a suggested task"))}
	default:
		return nil
	}
}
