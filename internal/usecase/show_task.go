package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/git-board/internal/domain"
	"github.com/runoshun/git-board/internal/usecase/shared"
)

// ShowTaskInput contains the parameters for showing a task.
type ShowTaskInput struct {
	TaskID int64
}

// ShowTaskOutput contains the task with its column and comments.
type ShowTaskOutput struct {
	Task     *domain.Task
	Column   string // Column name, "Unknown" if the column is missing
	Comments []domain.Comment
}

// ShowTask is the use case for displaying task details.
type ShowTask struct {
	store domain.Store
}

// NewShowTask creates a new ShowTask use case.
func NewShowTask(store domain.Store) *ShowTask {
	return &ShowTask{store: store}
}

// Execute retrieves the task details.
func (uc *ShowTask) Execute(ctx context.Context, in ShowTaskInput) (*ShowTaskOutput, error) {
	task, err := shared.GetTask(ctx, uc.store, in.TaskID)
	if err != nil {
		return nil, err
	}
	cols, err := uc.store.ListColumns(ctx)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	comments, err := uc.store.ListComments(ctx, task.ID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return &ShowTaskOutput{
		Task:     task,
		Column:   domain.ColumnName(cols, task.ColumnID),
		Comments: comments,
	}, nil
}
