// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/git-board/internal/domain"
	"github.com/runoshun/git-board/internal/usecase/shared"
)

// NewTaskInput contains the parameters for creating a new task.
type NewTaskInput struct {
	Title       string // Task title (required)
	Description string // Task description (optional)
	Assignee    string // Assignee (optional)
}

// NewTaskOutput contains the result of creating a new task.
type NewTaskOutput struct {
	Task     *domain.Task // The created task
	Warnings []string     // Non-fatal problems (activity log)
}

// NewTask is the use case for creating a new task in the Backlog.
type NewTask struct {
	store  domain.Store
	logger domain.Logger
}

// NewNewTask creates a new NewTask use case.
func NewNewTask(store domain.Store, logger domain.Logger) *NewTask {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &NewTask{store: store, logger: logger}
}

// Execute creates a new task with the given input.
func (uc *NewTask) Execute(ctx context.Context, in NewTaskInput) (*NewTaskOutput, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}

	backlog, err := shared.GetColumnByName(ctx, uc.store, domain.ColumnBacklog)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Assignee:    strings.TrimSpace(in.Assignee),
		ColumnID:    backlog.ID,
	}
	if err := uc.store.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	uc.logger.Info(task.ID, "task", fmt.Sprintf("created: %q", title))
	warnings := shared.RecordActivity(ctx, uc.store, uc.logger, task.ID,
		domain.EventTaskCreated, fmt.Sprintf("Task #%d: %s", task.ID, title))

	return &NewTaskOutput{Task: task, Warnings: warnings}, nil
}
