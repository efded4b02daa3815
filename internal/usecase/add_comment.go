package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/git-board/internal/domain"
	"github.com/runoshun/git-board/internal/usecase/shared"
)

// UnknownAuthor is recorded when git has no user.name.
const UnknownAuthor = "unknown"

// AddCommentInput contains the parameters for adding a comment.
type AddCommentInput struct {
	Message string // Comment text (required)
	TaskID  int64  // Task ID (required)
}

// AddCommentOutput contains the result of adding a comment.
type AddCommentOutput struct {
	Task     *domain.Task
	Comment  domain.Comment // The created comment
	Warnings []string
}

// AddComment is the use case for adding a comment to a task.
type AddComment struct {
	store  domain.Store
	git    domain.Git
	logger domain.Logger
}

// NewAddComment creates a new AddComment use case. git may be nil, in which
// case comments are attributed to UnknownAuthor.
func NewAddComment(store domain.Store, git domain.Git, logger domain.Logger) *AddComment {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &AddComment{store: store, git: git, logger: logger}
}

// Execute adds a comment to a task.
func (uc *AddComment) Execute(ctx context.Context, in AddCommentInput) (*AddCommentOutput, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, domain.ErrEmptyMessage
	}

	task, err := shared.GetTask(ctx, uc.store, in.TaskID)
	if err != nil {
		return nil, err
	}

	comment := domain.Comment{
		TaskID: task.ID,
		Author: uc.author(),
		Text:   message,
	}
	if err := uc.store.AddComment(ctx, &comment); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}

	uc.logger.Info(task.ID, "comment", "added by "+comment.Author)
	warnings := shared.RecordActivity(ctx, uc.store, uc.logger, task.ID,
		domain.EventCommentAdded, fmt.Sprintf("Task #%d: comment by %s", task.ID, comment.Author))

	return &AddCommentOutput{Task: task, Comment: comment, Warnings: warnings}, nil
}

func (uc *AddComment) author() string {
	if uc.git == nil {
		return UnknownAuthor
	}
	name, err := uc.git.UserName()
	if err != nil || strings.TrimSpace(name) == "" {
		return UnknownAuthor
	}
	return strings.TrimSpace(name)
}
