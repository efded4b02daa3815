package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/git-board/internal/domain"
	"github.com/runoshun/git-board/internal/usecase/shared"
)

// ReviewTaskInput contains the parameters for checking a task's review.
type ReviewTaskInput struct {
	TaskID int64
}

// ReviewTaskOutput contains the review state of a task.
// Fields are ordered to minimize memory padding.
type ReviewTaskOutput struct {
	Task        *domain.Task
	State       domain.ReviewState // Empty when the state could not be queried
	Warnings    []string
	Fallback    bool // The recorded link needs a manual follow-up
	MovedToDone bool // The request was merged and the task moved to Done
}

// ReviewTask reports the review request of a task and, when the review
// client can query it, completes the task once the request is merged.
// Fields are ordered to minimize memory padding.
type ReviewTask struct {
	store   domain.Store
	git     domain.Git
	checker domain.ReviewStatusChecker
	logger  domain.Logger
	remote  string
}

// NewReviewTask creates a new ReviewTask use case. checker may be nil.
func NewReviewTask(store domain.Store, git domain.Git, checker domain.ReviewStatusChecker, logger domain.Logger, remote string) *ReviewTask {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &ReviewTask{store: store, git: git, checker: checker, logger: logger, remote: remote}
}

// Execute reports the review request state.
func (uc *ReviewTask) Execute(ctx context.Context, in ReviewTaskInput) (*ReviewTaskOutput, error) {
	task, err := shared.GetTask(ctx, uc.store, in.TaskID)
	if err != nil {
		return nil, err
	}
	if !task.HasReviewRequest() {
		return nil, fmt.Errorf("#%d: %w", task.ID, domain.ErrNoReviewRequest)
	}

	out := &ReviewTaskOutput{Task: task, Fallback: task.PRFallback}
	if task.PRFallback || uc.checker == nil {
		return out, nil
	}

	remoteURL := ""
	if uc.git != nil {
		if u, err := uc.git.RemoteURL(uc.remote); err == nil {
			remoteURL = u
		}
	}
	state, err := uc.checker.ReviewStatus(ctx, remoteURL, task.PRURL)
	if err != nil {
		msg := fmt.Sprintf("review status unavailable: %v", err)
		uc.logger.Warn(task.ID, "review", msg)
		out.Warnings = append(out.Warnings, msg)
		return out, nil
	}
	out.State = state
	uc.logger.Debug(task.ID, "review", fmt.Sprintf("%s is %s", task.PRURL, state))

	if state != domain.ReviewMerged {
		return out, nil
	}
	done, err := shared.GetColumnByName(ctx, uc.store, domain.ColumnDone)
	if err != nil {
		return nil, err
	}
	if task.ColumnID == done.ID {
		return out, nil
	}
	task.ColumnID = done.ID
	if err := uc.store.SaveTask(ctx, task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}
	out.MovedToDone = true
	uc.logger.Info(task.ID, "review", "merged, moved to "+domain.ColumnDone)
	out.Warnings = append(out.Warnings, shared.RecordActivity(ctx, uc.store, uc.logger, task.ID,
		domain.EventTaskCompleted, fmt.Sprintf("Task #%d: %s (merged)", task.ID, task.Title))...)
	return out, nil
}
