package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/git-board/internal/domain"
	"github.com/runoshun/git-board/internal/usecase/shared"
)

// MoveTaskInput contains the parameters for moving a task.
type MoveTaskInput struct {
	Column string // Target column name, case-insensitive
	TaskID int64
}

// MoveTaskOutput contains the result of moving a task.
type MoveTaskOutput struct {
	Task     *domain.Task
	From     string // Previous column name
	To       string // New column name
	Warnings []string
}

// MoveTask changes a task's column without any git side effect.
type MoveTask struct {
	store  domain.Store
	logger domain.Logger
}

// NewMoveTask creates a new MoveTask use case.
func NewMoveTask(store domain.Store, logger domain.Logger) *MoveTask {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &MoveTask{store: store, logger: logger}
}

// Execute moves a task to the named column.
func (uc *MoveTask) Execute(ctx context.Context, in MoveTaskInput) (*MoveTaskOutput, error) {
	task, err := shared.GetTask(ctx, uc.store, in.TaskID)
	if err != nil {
		return nil, err
	}
	target, err := shared.GetColumnByName(ctx, uc.store, in.Column)
	if err != nil {
		return nil, err
	}
	cols, err := uc.store.ListColumns(ctx)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	from := domain.ColumnName(cols, task.ColumnID)

	task.ColumnID = target.ID
	if err := uc.store.SaveTask(ctx, task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	uc.logger.Info(task.ID, "move", fmt.Sprintf("%s → %s", from, target.Name))
	warnings := shared.RecordActivity(ctx, uc.store, uc.logger, task.ID,
		domain.EventTaskMoved, fmt.Sprintf("Task #%d: %s → %s", task.ID, from, target.Name))

	return &MoveTaskOutput{Task: task, From: from, To: target.Name, Warnings: warnings}, nil
}
