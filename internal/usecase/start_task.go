package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/git-board/internal/domain"
	"github.com/runoshun/git-board/internal/usecase/shared"
)

// StartTaskInput contains the parameters for starting a task.
type StartTaskInput struct {
	TaskID int64 // Task ID to start
}

// StartTaskOutput contains the result of starting a task.
// Fields are ordered to minimize memory padding.
type StartTaskOutput struct {
	Task          *domain.Task
	Branch        string   // Checked out branch
	Warnings      []string // Non-fatal problems (activity log)
	BranchCreated bool     // False when the task already had a branch
}

// StartTask creates the task's feature branch, checks it out and moves the
// task to Doing.
type StartTask struct {
	store  domain.Store
	git    domain.Git
	logger domain.Logger
}

// NewStartTask creates a new StartTask use case.
func NewStartTask(store domain.Store, git domain.Git, logger domain.Logger) *StartTask {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &StartTask{store: store, git: git, logger: logger}
}

// Execute starts work on a task. Git failures abort before anything is persisted.
func (uc *StartTask) Execute(ctx context.Context, in StartTaskInput) (*StartTaskOutput, error) {
	task, err := shared.GetTask(ctx, uc.store, in.TaskID)
	if err != nil {
		return nil, err
	}
	doing, err := shared.GetColumnByName(ctx, uc.store, domain.ColumnDoing)
	if err != nil {
		return nil, err
	}

	// A recorded branch is never re-derived. A derived branch left behind by an
	// earlier start whose checkout failed is picked up again.
	branch := task.BranchName
	created := false
	if branch == "" {
		branch = domain.BranchName(task.ID, task.Title)
		switch err := uc.git.CreateBranch(branch); {
		case err == nil:
			created = true
		case errors.Is(err, domain.ErrBranchExists):
			uc.logger.Info(task.ID, "start", fmt.Sprintf("branch %s already exists, reusing it", branch))
		default:
			uc.logger.Error(task.ID, "start", fmt.Sprintf("create branch %s failed: %v", branch, err))
			return nil, shared.ExternalToolError("create branch "+branch, err)
		}
	}
	if err := uc.git.CheckoutBranch(branch); err != nil {
		uc.logger.Error(task.ID, "start", fmt.Sprintf("checkout %s failed: %v", branch, err))
		return nil, shared.ExternalToolError("checkout "+branch, err)
	}

	task.BranchName = branch
	task.ColumnID = doing.ID
	if err := uc.store.SaveTask(ctx, task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	verb := "checked out"
	if created {
		verb = "created"
	}
	uc.logger.Info(task.ID, "start", fmt.Sprintf("%s branch %s, moved to %s", verb, branch, domain.ColumnDoing))
	warnings := shared.RecordActivity(ctx, uc.store, uc.logger, task.ID,
		domain.EventTaskStarted, fmt.Sprintf("Task #%d: %s branch %s", task.ID, verb, branch))

	return &StartTaskOutput{
		Task:          task,
		Branch:        branch,
		BranchCreated: created,
		Warnings:      warnings,
	}, nil
}
