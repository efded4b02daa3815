package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/git-board/internal/domain"
	"github.com/runoshun/git-board/internal/usecase/shared"
)

// CompleteTaskInput contains the parameters for completing a task.
type CompleteTaskInput struct {
	Message string // Commit message (optional, defaults to "Closes #<id>: <title>")
	TaskID  int64  // Task ID to complete
}

// CompleteTaskOutput contains the result of completing a task.
// Fields are ordered to minimize memory padding.
type CompleteTaskOutput struct {
	Task          *domain.Task
	CommitHash    string   // Empty when nothing was staged
	CommitMessage string   // Message used for the commit
	PushedBranch  string   // Empty when the task has no branch
	Warnings      []string // Non-fatal problems (activity log)
}

// CompleteTask commits staged work, pushes the task branch and moves the
// task to Done.
type CompleteTask struct {
	store  domain.Store
	git    domain.Git
	pusher domain.BranchPusher
	logger domain.Logger
}

// NewCompleteTask creates a new CompleteTask use case.
func NewCompleteTask(store domain.Store, git domain.Git, pusher domain.BranchPusher, logger domain.Logger) *CompleteTask {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &CompleteTask{store: store, git: git, pusher: pusher, logger: logger}
}

// Execute completes a task. Commit and push failures abort before the column changes.
func (uc *CompleteTask) Execute(ctx context.Context, in CompleteTaskInput) (*CompleteTaskOutput, error) {
	task, err := shared.GetTask(ctx, uc.store, in.TaskID)
	if err != nil {
		return nil, err
	}
	done, err := shared.GetColumnByName(ctx, uc.store, domain.ColumnDone)
	if err != nil {
		return nil, err
	}

	out := &CompleteTaskOutput{Task: task}

	staged, err := uc.git.HasStagedChanges()
	if err != nil {
		return nil, shared.ExternalToolError("check staged changes", err)
	}
	if staged {
		msg := strings.TrimSpace(in.Message)
		if msg == "" {
			msg = domain.DefaultCommitMessage(task.ID, task.Title)
		}
		hash, err := uc.git.Commit(msg)
		if err != nil {
			uc.logger.Error(task.ID, "done", fmt.Sprintf("commit failed: %v", err))
			return nil, shared.ExternalToolError("commit", err)
		}
		out.CommitHash = hash
		out.CommitMessage = msg
		uc.logger.Info(task.ID, "done", fmt.Sprintf("committed %s: %s", domain.ShortHash(hash), msg))
	}

	if task.HasBranch() {
		if err := uc.pusher.Push(ctx, task.BranchName); err != nil {
			uc.logger.Error(task.ID, "done", fmt.Sprintf("push %s failed: %v", task.BranchName, err))
			return nil, shared.ExternalToolError("push "+task.BranchName, err)
		}
		out.PushedBranch = task.BranchName
	}

	task.ColumnID = done.ID
	if err := uc.store.SaveTask(ctx, task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	uc.logger.Info(task.ID, "done", "moved to "+domain.ColumnDone)
	out.Warnings = shared.RecordActivity(ctx, uc.store, uc.logger, task.ID,
		domain.EventTaskCompleted, fmt.Sprintf("Task #%d: %s", task.ID, task.Title))
	return out, nil
}
