package update

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/dayplanner/internal/commands"
	"github.com/sandeepkv93/dayplanner/internal/model"
)

const (
	fieldName = iota
	fieldDuration
	fieldPriority
	fieldCategory
	fieldNotes
)

var formLabels = []string{"name", "duration", "priority", "category", "notes"}

type AddFormState struct {
	Active bool
	Focus  int
	Inputs []textinput.Model
	Err    string
}

func newAddForm() AddFormState {
	defaults := []string{
		"",
		strconv.Itoa(commands.DefaultDurationMinutes),
		string(commands.DefaultPriority),
		string(commands.DefaultCategory),
		"",
	}
	inputs := make([]textinput.Model, len(formLabels))
	for i := range inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 256
		in.Width = 36
		in.SetValue(defaults[i])
		inputs[i] = in
	}
	inputs[fieldName].Placeholder = "What needs doing?"
	inputs[fieldNotes].Placeholder = "markdown, optional"
	return AddFormState{Inputs: inputs}
}

func (m Model) handleFormKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Form = newAddForm()
		m.Status = StatusBar{Text: "add cancelled", IsError: false}
		return m
	case "tab", "down":
		m.Form.focus((m.Form.Focus + 1) % len(m.Form.Inputs))
		return m
	case "shift+tab", "up":
		m.Form.focus((m.Form.Focus + len(m.Form.Inputs) - 1) % len(m.Form.Inputs))
		return m
	case "enter":
		return m.submitForm()
	}
	in := m.Form.Inputs[m.Form.Focus]
	if msg.Type == tea.KeyRunes {
		in.SetValue(in.Value() + string(msg.Runes))
	} else {
		in, _ = in.Update(msg)
	}
	m.Form.Inputs[m.Form.Focus] = in
	return m
}

func (f *AddFormState) focus(i int) {
	for j := range f.Inputs {
		if j == i {
			f.Inputs[j].Focus()
		} else {
			f.Inputs[j].Blur()
		}
	}
	f.Focus = i
}

func (m Model) submitForm() Model {
	spec, err := m.Form.spec()
	if err == nil {
		var msg string
		msg, err = m.addTask(spec)
		if err == nil {
			m.Form = newAddForm()
			m.report(msg, nil)
			return m
		}
	}
	m.Form.Err = err.Error()
	m.report("", err)
	return m
}

func (f AddFormState) spec() (model.TaskSpec, error) {
	value := func(i int) string { return strings.TrimSpace(f.Inputs[i].Value()) }
	minutes, err := strconv.Atoi(value(fieldDuration))
	if err != nil {
		return model.TaskSpec{}, fmt.Errorf("%w: duration %q is not a number of minutes", model.ErrValidation, value(fieldDuration))
	}
	priority, err := model.ParsePriority(value(fieldPriority))
	if err != nil {
		return model.TaskSpec{}, err
	}
	category, err := model.ParseCategory(value(fieldCategory))
	if err != nil {
		return model.TaskSpec{}, err
	}
	return model.TaskSpec{
		Name:            value(fieldName),
		DurationMinutes: minutes,
		Priority:        priority,
		Category:        category,
		Notes:           value(fieldNotes),
	}, nil
}
