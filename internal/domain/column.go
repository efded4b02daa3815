package domain

import "strings"

// Column is an ordered pipeline stage of the board.
type Column struct {
	Name  string `json:"name" yaml:"name"`
	ID    int64  `json:"id" yaml:"id"`
	Order int    `json:"order" yaml:"order"`
}

// Fixed column names. The lifecycle engine refers to columns by name, never by ID.
const (
	ColumnBacklog = "Backlog"
	ColumnTodo    = "To Do"
	ColumnDoing   = "Doing"
	ColumnReview  = "Review"
	ColumnDone    = "Done"
)

// DefaultColumns returns the five columns created when a board is initialized.
func DefaultColumns() []Column {
	return []Column{
		{Name: ColumnBacklog, Order: 0},
		{Name: ColumnTodo, Order: 1},
		{Name: ColumnDoing, Order: 2},
		{Name: ColumnReview, Order: 3},
		{Name: ColumnDone, Order: 4},
	}
}

// SameColumnName reports whether two column names refer to the same column.
// Column names are unique ignoring case.
func SameColumnName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// FindColumn returns the column with the given ID from cols, or nil.
func FindColumn(cols []Column, id int64) *Column {
	for i := range cols {
		if cols[i].ID == id {
			return &cols[i]
		}
	}
	return nil
}

// ColumnName returns the name of the column with the given ID, or "Unknown".
func ColumnName(cols []Column, id int64) string {
	if c := FindColumn(cols, id); c != nil {
		return c.Name
	}
	return "Unknown"
}
