package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/runoshun/git-board/internal/domain"
	"github.com/runoshun/git-board/internal/usecase"
)

const (
	appPadding     = 2 // Left + right padding around the board
	columnGap      = 1
	columnChrome   = 4 // Border + horizontal padding of a column
	minColumnWidth = 18
	cardIndent     = 2 // Width of the cursor marker
)

// View renders the board.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(m.viewColumns())

	if m.showDetail {
		if task := m.SelectedTask(); task != nil {
			b.WriteString("\n")
			b.WriteString(m.viewDetail(task))
		}
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))

	return lipgloss.NewStyle().Padding(0, appPadding/2).Render(b.String())
}

func (m *Model) viewHeader() string {
	status := "loading..."
	if !m.loading {
		total := 0
		for _, col := range m.columns {
			total += len(col.Tasks)
		}
		status = fmt.Sprintf("%d tasks", total)
	}
	return m.styles.Header.Render("Project Board") + "  " + m.styles.Status.Render(status)
}

// columnWidth returns the outer width of one column.
func (m *Model) columnWidth() int {
	n := len(m.columns)
	if n == 0 {
		return 0
	}
	w := (m.width - appPadding - columnGap*(n-1)) / n
	if w < minColumnWidth {
		w = minColumnWidth
	}
	return w
}

func (m *Model) viewColumns() string {
	if len(m.columns) == 0 {
		if m.loading {
			return m.styles.Empty.Render("Loading board...")
		}
		return m.styles.Empty.Render("No columns (run 'pb init')")
	}

	outer := m.columnWidth()
	gap := strings.Repeat(" ", columnGap)
	parts := make([]string, 0, 2*len(m.columns))
	for i, col := range m.columns {
		if i > 0 {
			parts = append(parts, gap)
		}
		parts = append(parts, m.viewColumn(i, col, outer))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) viewColumn(index int, col usecase.ColumnTasks, outer int) string {
	inner := outer - columnChrome
	if inner < 1 {
		inner = 1
	}
	cardWidth := inner - cardIndent
	if cardWidth < 1 {
		cardWidth = 1
	}

	title := fmt.Sprintf("%s (%d)", col.Column.Name, len(col.Tasks))
	lines := []string{
		m.styles.ColumnTitle.Foreground(ColumnColor(col.Column.Name)).Render(clip(title, inner)),
		"",
	}

	if len(col.Tasks) == 0 {
		lines = append(lines, m.styles.Empty.Render("-"))
	}
	for j, task := range col.Tasks {
		selected := index == m.col && j == m.row
		marker, style := "  ", m.styles.Card
		if selected {
			marker, style = "▸ ", m.styles.CardSelected
		}
		lines = append(lines, marker+style.Render(clip(fmt.Sprintf("#%d %s", task.ID, task.Title), cardWidth)))

		switch {
		case task.PRFallback:
			lines = append(lines, "  "+m.styles.CardWarning.Render(clip("manual PR needed", cardWidth)))
		case task.HasBranch():
			lines = append(lines, "  "+m.styles.CardMeta.Render(clip(task.BranchName, cardWidth)))
		}
	}

	style := m.styles.Column
	if index == m.col {
		style = m.styles.ColumnActive
	}
	return style.Width(outer - 2).Render(strings.Join(lines, "\n"))
}

func (m *Model) viewDetail(task *domain.Task) string {
	width := m.width - appPadding - 2
	if width < minColumnWidth {
		width = minColumnWidth
	}
	inner := width - 2

	label := func(s string) string { return m.styles.DetailLabel.Render(s) }

	lines := []string{
		m.styles.CardSelected.Render(clip(fmt.Sprintf("#%d %s", task.ID, task.Title), inner)),
		label("Column:  ") + m.columns[m.col].Column.Name,
	}
	if task.HasBranch() {
		lines = append(lines, label("Branch:  ")+task.BranchName)
	}
	if task.HasReviewRequest() {
		pr := task.PRURL
		if task.PRFallback {
			pr += " " + m.styles.CardWarning.Render("(manual follow-up required)")
		}
		lines = append(lines, label("PR:      ")+pr)
	}
	if task.Assignee != "" {
		lines = append(lines, label("Assignee:")+" "+task.Assignee)
	}
	lines = append(lines, label("Updated: ")+humanize.Time(task.Updated))
	if task.Description != "" {
		lines = append(lines, "", wordwrap.String(task.Description, inner))
	}

	return m.styles.Detail.Width(width).Render(strings.Join(lines, "\n"))
}

// clip truncates s to width cells, marking the cut with an ellipsis.
func clip(s string, width int) string {
	return truncate.StringWithTail(s, uint(width), "…") //nolint:gosec // width is at least 1
}
