// Package tui provides the interactive board view.
// The board renders a snapshot of the columns and never changes tasks.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/git-board/internal/domain"
	"github.com/runoshun/git-board/internal/usecase"
)

// BoardLoader loads a board snapshot. *usecase.ListTasks satisfies it.
type BoardLoader interface {
	Execute(ctx context.Context, in usecase.ListTasksInput) (*usecase.ListTasksOutput, error)
}

// Model is the bubbletea model for the board.
// Fields are ordered to minimize memory padding.
type Model struct {
	// Dependencies
	loader BoardLoader
	err    error

	// State
	columns []usecase.ColumnTasks

	// Components
	keys   KeyMap
	styles Styles
	help   help.Model

	// Numeric state
	col    int // Focused column
	row    int // Selected card within the focused column
	width  int
	height int

	// Boolean state
	loading    bool
	showDetail bool
}

// New creates a new board model reading snapshots from loader.
func New(loader BoardLoader) *Model {
	return &Model{
		loader:  loader,
		keys:    DefaultKeyMap(),
		styles:  DefaultStyles(),
		help:    help.New(),
		loading: true,
	}
}

// Run shows the board until the user quits.
func Run(loader BoardLoader) error {
	p := tea.NewProgram(New(loader), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init loads the first snapshot.
func (m *Model) Init() tea.Cmd {
	return m.loadBoard()
}

// loadBoard returns a command that loads a board snapshot.
func (m *Model) loadBoard() tea.Cmd {
	return func() tea.Msg {
		out, err := m.loader.Execute(context.Background(), usecase.ListTasksInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgBoardLoaded{Columns: out.Columns}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case MsgBoardLoaded:
		m.columns = msg.Columns
		m.loading = false
		m.err = nil
		m.clampCursor()
		return m, nil

	case MsgError:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey handles key events.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.loadBoard()

	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
			m.clampCursor()
		}

	case key.Matches(msg, m.keys.Right):
		if m.col < len(m.columns)-1 {
			m.col++
			m.clampCursor()
		}

	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
		}

	case key.Matches(msg, m.keys.Down):
		if m.col < len(m.columns) && m.row < len(m.columns[m.col].Tasks)-1 {
			m.row++
		}

	case key.Matches(msg, m.keys.Detail):
		m.showDetail = !m.showDetail

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// clampCursor keeps the cursor on an existing column and card.
func (m *Model) clampCursor() {
	if m.col >= len(m.columns) {
		m.col = len(m.columns) - 1
	}
	if m.col < 0 {
		m.col = 0
	}
	n := 0
	if m.col < len(m.columns) {
		n = len(m.columns[m.col].Tasks)
	}
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

// SelectedTask returns the task under the cursor, or nil.
func (m *Model) SelectedTask() *domain.Task {
	if m.col >= len(m.columns) {
		return nil
	}
	tasks := m.columns[m.col].Tasks
	if m.row >= len(tasks) {
		return nil
	}
	return tasks[m.row]
}
