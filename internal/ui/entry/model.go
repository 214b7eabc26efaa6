// Package entry implements the student identity form shown before a test
// starts and before a result lookup.
package entry

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dpsrawaljnv/mcq-test-application/internal/identity"
)

const (
	fieldRollNo = iota
	fieldName
	fieldSection
	fieldClassID
	fieldCount
)

// Options configures the form.
type Options struct {
	// RequireClassID asks for a class id in addition to the identity
	// fields. Starting a test needs it, looking up a result does not.
	RequireClassID bool
	// Prefill seeds the inputs from a previously saved identity.
	Prefill *identity.Student
	NoColor bool
}

// Model is the identity form.
type Model struct {
	inputs  []textinput.Model
	focus   int
	fields  int
	errMsg  string
	done    bool
	aborted bool
	noColor bool
}

// NewModel builds the form.
func NewModel(opts Options) Model {
	fields := fieldCount
	if !opts.RequireClassID {
		fields = fieldClassID
	}
	inputs := make([]textinput.Model, fields)
	labels := []string{"Roll number", "Name", "Section", "Class id"}
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = labels[i]
		in.CharLimit = 64
		inputs[i] = in
	}
	if opts.Prefill != nil {
		inputs[fieldRollNo].SetValue(opts.Prefill.RollNo)
		inputs[fieldName].SetValue(opts.Prefill.StudentName)
		inputs[fieldSection].SetValue(opts.Prefill.Section)
		if fields > fieldClassID {
			inputs[fieldClassID].SetValue(opts.Prefill.ClassID)
		}
	}
	inputs[0].Focus()
	return Model{inputs: inputs, fields: fields, noColor: opts.NoColor}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}
	switch key.String() {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	case "tab", "down":
		m.setFocus((m.focus + 1) % m.fields)
		return m, nil
	case "shift+tab", "up":
		m.setFocus((m.focus + m.fields - 1) % m.fields)
		return m, nil
	case "enter":
		if m.focus < m.fields-1 {
			m.setFocus(m.focus + 1)
			return m, nil
		}
		if _, err := m.student(); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	}
	return m.updateInputs(msg)
}

func (m *Model) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
	m.errMsg = ""
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString("Enter your details\n\n")
	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		msg := m.errMsg
		if !m.noColor {
			msg = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(msg)
		}
		b.WriteString("\n" + msg + "\n")
	}
	b.WriteString("\ntab to move, enter to confirm, esc to cancel\n")
	return b.String()
}

// student validates the inputs and builds the identity.
func (m Model) student() (identity.Student, error) {
	s := identity.Student{
		RollNo:      strings.TrimSpace(m.inputs[fieldRollNo].Value()),
		StudentName: strings.TrimSpace(m.inputs[fieldName].Value()),
		Section:     strings.TrimSpace(m.inputs[fieldSection].Value()),
	}
	if m.fields > fieldClassID {
		raw := strings.TrimSpace(m.inputs[fieldClassID].Value())
		if id, err := strconv.Atoi(raw); err != nil || id <= 0 {
			return s, &identity.Error{Kind: identity.KindIncomplete, Reason: "class id must be a positive number"}
		}
		s.ClassID = raw
	}
	if err := s.Validate(m.fields > fieldClassID); err != nil {
		return s, err
	}
	return s, nil
}

// Student returns the confirmed identity. ok is false when the form was
// cancelled or never completed.
func (m Model) Student() (identity.Student, bool) {
	if !m.done {
		return identity.Student{}, false
	}
	s, err := m.student()
	if err != nil {
		return identity.Student{}, false
	}
	return s, true
}

// Aborted reports whether the user cancelled the form.
func (m Model) Aborted() bool { return m.aborted }
