package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/git-board/internal/domain"
	"github.com/runoshun/git-board/internal/usecase/shared"
)

// SubmitTaskInput contains the parameters for submitting a task for review.
type SubmitTaskInput struct {
	TaskID int64 // Task ID to submit
}

// SubmitTaskOutput contains the result of submitting a task.
// Fields are ordered to minimize memory padding.
type SubmitTaskOutput struct {
	Task      *domain.Task
	ReviewErr error             // Why no review request was opened (nil on success)
	Link      domain.ReviewLink // Recorded review link
	Warnings  []string          // Non-fatal problems (activity log)
}

// SubmitTask pushes the task branch, opens a review request and moves the
// task to Review. A review service failure never fails the submission: a
// fallback link is recorded instead.
// Fields are ordered to minimize memory padding.
type SubmitTask struct {
	store      domain.Store
	git        domain.Git
	pusher     domain.BranchPusher
	review     domain.ReviewRequester
	logger     domain.Logger
	remote     string // Remote name used to derive the repository
	baseBranch string // Branch the review request targets
}

// NewSubmitTask creates a new SubmitTask use case. review may be nil, in which
// case every submission records a fallback link.
func NewSubmitTask(
	store domain.Store,
	git domain.Git,
	pusher domain.BranchPusher,
	review domain.ReviewRequester,
	logger domain.Logger,
	remote string,
	baseBranch string,
) *SubmitTask {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &SubmitTask{
		store:      store,
		git:        git,
		pusher:     pusher,
		review:     review,
		logger:     logger,
		remote:     remote,
		baseBranch: baseBranch,
	}
}

// Execute submits a task for review.
func (uc *SubmitTask) Execute(ctx context.Context, in SubmitTaskInput) (*SubmitTaskOutput, error) {
	task, err := shared.GetTask(ctx, uc.store, in.TaskID)
	if err != nil {
		return nil, err
	}
	if !task.HasBranch() {
		return nil, fmt.Errorf("#%d: %w", task.ID, domain.ErrNoBranch)
	}
	reviewCol, err := shared.GetColumnByName(ctx, uc.store, domain.ColumnReview)
	if err != nil {
		return nil, err
	}

	if err := uc.pusher.Push(ctx, task.BranchName); err != nil {
		uc.logger.Error(task.ID, "submit", fmt.Sprintf("push %s failed: %v", task.BranchName, err))
		return nil, shared.ExternalToolError("push "+task.BranchName, err)
	}

	remoteURL, err := uc.git.RemoteURL(uc.remote)
	if err != nil {
		uc.logger.Warn(task.ID, "submit", fmt.Sprintf("read remote %s: %v", uc.remote, err))
		remoteURL = ""
	}

	link, reviewErr := uc.requestReview(ctx, task, remoteURL)
	if reviewErr != nil || link.URL == "" {
		link = domain.ReviewLink{
			URL:      domain.FallbackReviewURL(remoteURL, uc.baseBranch, task.BranchName),
			Fallback: true,
		}
		if reviewErr == nil {
			reviewErr = fmt.Errorf("empty review link: %w", domain.ErrReviewDegraded)
		}
		uc.logger.Warn(task.ID, "submit", fmt.Sprintf("review request not opened: %v; recorded %s", reviewErr, link.URL))
	} else {
		uc.logger.Info(task.ID, "submit", "review request opened: "+link.URL)
	}

	task.PRURL = link.URL
	task.PRFallback = link.Fallback
	task.ColumnID = reviewCol.ID
	if err := uc.store.SaveTask(ctx, task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	meta := fmt.Sprintf("Task #%d: PR created", task.ID)
	if link.Fallback {
		meta = fmt.Sprintf("Task #%d: manual PR needed", task.ID)
	}
	warnings := shared.RecordActivity(ctx, uc.store, uc.logger, task.ID, domain.EventTaskSubmitted, meta)

	return &SubmitTaskOutput{
		Task:      task,
		Link:      link,
		ReviewErr: reviewErr,
		Warnings:  warnings,
	}, nil
}

func (uc *SubmitTask) requestReview(ctx context.Context, task *domain.Task, remoteURL string) (domain.ReviewLink, error) {
	if uc.review == nil {
		return domain.ReviewLink{}, fmt.Errorf("no review client: %w", domain.ErrReviewDegraded)
	}
	if remoteURL == "" {
		return domain.ReviewLink{}, fmt.Errorf("remote %q not configured: %w", uc.remote, domain.ErrReviewDegraded)
	}
	link, err := uc.review.CreateReviewRequest(ctx, domain.ReviewRequest{
		Remote: remoteURL,
		Title:  domain.ReviewTitle(task.ID, task.Title),
		Body:   task.Description,
		Head:   task.BranchName,
		Base:   uc.baseBranch,
	})
	if err != nil && !errors.Is(err, domain.ErrReviewDegraded) {
		err = fmt.Errorf("%w: %w", domain.ErrReviewDegraded, err)
	}
	return link, err
}
