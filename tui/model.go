package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"go-midimsg/midi"
	"go-midimsg/theme"
)

// historySize is how many entered lines the view keeps
const historySize = 12

// Entry is one line typed into the editor and its outcome
type Entry struct {
	Line    string
	Message *midi.Message
	Err     error
}

// Model is a single line editor: each entered line is parsed as a message
// and shown with its encoding, or with the parse error.
type Model struct {
	Registry    *midi.Registry
	Theme       *theme.Theme
	IncludeTime bool
	Separator   string

	input    []rune
	history  []Entry
	quitting bool
}

func NewModel(reg *midi.Registry, th *theme.Theme) Model {
	return Model{
		Registry:  reg,
		Theme:     th,
		Separator: " ",
	}
}

// History returns the entered lines, oldest first
func (m Model) History() []Entry {
	return m.history
}

// Input returns the line being edited
func (m Model) Input() string {
	return string(m.input)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEnter:
		m = m.submit()

	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}

	case tea.KeyCtrlU:
		m.input = nil

	case tea.KeySpace:
		m.input = append(m.input, ' ')

	case tea.KeyRunes:
		m.input = append(m.input, key.Runes...)
	}

	return m, nil
}

func (m Model) submit() Model {
	line := strings.TrimSpace(string(m.input))
	m.input = nil
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	if line == "" {
		return m
	}

	msg, err := m.Registry.Parse(line)
	history := append([]Entry{}, m.history...)
	history = append(history, Entry{Line: line, Message: msg, Err: err})
	if len(history) > historySize {
		history = history[len(history)-historySize:]
	}
	m.history = history
	return m
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(m.Theme.Header("miditext"))
	out.WriteString("\n\n")

	for _, e := range m.history {
		if e.Err != nil {
			out.WriteString(fmt.Sprintf("  %s\n    %s\n", e.Line, m.Theme.Error(e.Err)))
			continue
		}
		out.WriteString(fmt.Sprintf("  %s\n    %s\n",
			m.Theme.Message(e.Message, m.IncludeTime),
			m.Theme.Hex(e.Message, m.Separator)))
	}

	out.WriteString("\n> ")
	out.WriteString(string(m.input))
	out.WriteString("_\n\n")
	out.WriteString(m.Theme.Dim("enter:encode  ctrl+u:clear  esc:quit"))
	return out.String()
}
