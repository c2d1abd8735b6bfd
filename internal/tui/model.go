// Package tui is the terminal front end of the menu manager: a menu tree
// over the same core.Service the web server uses.
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JonMunkholm/menumanager/internal/core"
)

// Messages returned by menu actions.
type (
	// WorkingMsg marks the start of a long-running action.
	WorkingMsg string
	// DoneMsg reports a finished action.
	DoneMsg string
	// ErrMsg reports a failed action.
	ErrMsg struct{ Err error }
	// ViewMsg replaces the output pane.
	ViewMsg string
)

// Model is the bubbletea model for the menu manager.
type Model struct {
	service *core.Service

	menu   *Menu
	cursor int

	status  string
	isError bool
	busy    bool
	output  string

	width  int
	height int
}

// New builds the model and its menu tree.
func New(service *core.Service) *Model {
	m := &Model{service: service}
	m.menu = buildMenuTree(m)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.showDashboard()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case WorkingMsg:
		m.busy = true
		m.isError = false
		m.status = string(msg)

	case DoneMsg:
		m.busy = false
		m.isError = false
		m.status = string(msg)

	case ErrMsg:
		m.busy = false
		m.isError = true
		m.status = core.FormatUserError(msg.Err)

	case ViewMsg:
		m.busy = false
		m.output = string(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.menu.Entries)-1 {
			m.cursor++
		}

	case "esc", "backspace", "left", "h":
		if m.menu.Parent != nil {
			m.enter(m.menu.Parent)
		}

	case "enter", " ", "right", "l":
		return m.selectEntry()
	}
	return nil
}

func (m *Model) selectEntry() tea.Cmd {
	if m.busy {
		return nil
	}

	e := m.menu.Entries[m.cursor]
	switch {
	case e.Submenu != nil:
		m.enter(e.Submenu)
		return nil
	case e.Label == backLabel:
		// Back on the root menu has no parent to return to.
		return nil
	case e.Action != nil:
		return e.Action()
	}
	return nil
}

func (m *Model) enter(menu *Menu) {
	m.menu = menu
	m.cursor = 0
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.menu.Title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", len(m.menu.Title)))
	b.WriteString("\n\n")

	for i, e := range m.menu.Entries {
		if i == m.cursor {
			b.WriteString("> ")
		} else {
			b.WriteString("  ")
		}
		b.WriteString(e.Label)
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.isError {
			b.WriteString("Error: ")
		} else if m.busy {
			b.WriteString("... ")
		}
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	if m.output != "" {
		b.WriteString("\n")
		b.WriteString(m.output)
		if !strings.HasSuffix(m.output, "\n") {
			b.WriteString("\n")
		}
	}

	b.WriteString("\nup/down: move  enter: select  esc: back  q: quit\n")
	return b.String()
}
