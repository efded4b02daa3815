package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/git-board/internal/domain"
	"github.com/runoshun/git-board/internal/usecase/shared"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Column string // Column name filter (optional, case-insensitive)
}

// ColumnTasks groups the tasks of one column.
type ColumnTasks struct {
	Tasks  []*domain.Task
	Column domain.Column
}

// ListTasksOutput contains the board grouped by column in column order.
type ListTasksOutput struct {
	Columns []ColumnTasks
}

// Total returns the number of tasks across all columns.
func (o *ListTasksOutput) Total() int {
	n := 0
	for _, c := range o.Columns {
		n += len(c.Tasks)
	}
	return n
}

// ListTasks is the use case for listing tasks.
type ListTasks struct {
	store domain.Store
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(store domain.Store) *ListTasks {
	return &ListTasks{store: store}
}

// Execute lists tasks by column. Within a column the most recent task comes first.
func (uc *ListTasks) Execute(ctx context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	var (
		cols   []domain.Column
		filter domain.TaskFilter
	)
	if name := strings.TrimSpace(in.Column); name != "" {
		col, err := shared.GetColumnByName(ctx, uc.store, name)
		if err != nil {
			return nil, err
		}
		cols = []domain.Column{*col}
		filter.ColumnID = &col.ID
	} else {
		var err error
		cols, err = uc.store.ListColumns(ctx)
		if err != nil {
			return nil, fmt.Errorf("list columns: %w", err)
		}
	}

	tasks, err := uc.store.ListTasks(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	byColumn := make(map[int64][]*domain.Task, len(cols))
	for _, t := range tasks {
		byColumn[t.ColumnID] = append(byColumn[t.ColumnID], t)
	}
	out := &ListTasksOutput{Columns: make([]ColumnTasks, 0, len(cols))}
	for _, c := range cols {
		out.Columns = append(out.Columns, ColumnTasks{Column: c, Tasks: byColumn[c.ID]})
	}
	return out, nil
}
