package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/git-board/internal/domain"
)

// Colors defines the color palette for the board.
var Colors = struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color

	// Column colors
	Backlog lipgloss.Color
	Todo    lipgloss.Color
	Doing   lipgloss.Color
	Review  lipgloss.Color
	Done    lipgloss.Color
}{
	Primary: lipgloss.Color("#6C5CE7"), // Purple
	Muted:   lipgloss.Color("#636E72"), // Gray
	Error:   lipgloss.Color("#D63031"), // Red
	Warning: lipgloss.Color("#FDCB6E"), // Yellow

	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow

	Backlog: lipgloss.Color("#B2BEC3"), // Silver
	Todo:    lipgloss.Color("#74B9FF"), // Light blue
	Doing:   lipgloss.Color("#FDCB6E"), // Yellow
	Review:  lipgloss.Color("#A29BFE"), // Lavender
	Done:    lipgloss.Color("#00B894"), // Green
}

// Styles contains the lipgloss styles for the board.
type Styles struct {
	Header lipgloss.Style
	Status lipgloss.Style

	Column       lipgloss.Style
	ColumnActive lipgloss.Style
	ColumnTitle  lipgloss.Style

	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardMeta     lipgloss.Style
	CardWarning  lipgloss.Style
	Empty        lipgloss.Style

	Detail      lipgloss.Style
	DetailLabel lipgloss.Style

	Error lipgloss.Style
	Help  lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),
		Status: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Column: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Muted).
			Padding(0, 1),
		ColumnActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary).
			Padding(0, 1),
		ColumnTitle: lipgloss.NewStyle().
			Bold(true),

		Card: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),
		CardSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.TitleSelected),
		CardMeta: lipgloss.NewStyle().
			Foreground(Colors.Muted),
		CardWarning: lipgloss.NewStyle().
			Foreground(Colors.Warning),
		Empty: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Italic(true),

		Detail: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary).
			Padding(0, 1),
		DetailLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Muted),

		Error: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(Colors.Muted),
	}
}

// ColumnColor returns the accent color of a column.
func ColumnColor(name string) lipgloss.Color {
	switch {
	case domain.SameColumnName(name, domain.ColumnBacklog):
		return Colors.Backlog
	case domain.SameColumnName(name, domain.ColumnTodo):
		return Colors.Todo
	case domain.SameColumnName(name, domain.ColumnDoing):
		return Colors.Doing
	case domain.SameColumnName(name, domain.ColumnReview):
		return Colors.Review
	case domain.SameColumnName(name, domain.ColumnDone):
		return Colors.Done
	default:
		return Colors.Muted
	}
}
