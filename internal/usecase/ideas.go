package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/git-board/internal/domain"
	"github.com/runoshun/git-board/internal/usecase/shared"
)

// NewIdeaInput contains the parameters for capturing an idea.
type NewIdeaInput struct {
	Content string
}

// NewIdeaOutput contains the created idea.
type NewIdeaOutput struct {
	Idea     *domain.Idea
	Warnings []string
}

// NewIdea captures a pre-task note.
type NewIdea struct {
	store  domain.Store
	logger domain.Logger
}

// NewNewIdea creates a new NewIdea use case.
func NewNewIdea(store domain.Store, logger domain.Logger) *NewIdea {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &NewIdea{store: store, logger: logger}
}

// Execute stores the idea.
func (uc *NewIdea) Execute(ctx context.Context, in NewIdeaInput) (*NewIdeaOutput, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, domain.ErrEmptyIdea
	}
	idea, err := uc.store.CreateIdea(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("create idea: %w", err)
	}
	uc.logger.Info(0, "idea", fmt.Sprintf("idea #%d created", idea.ID))
	warnings := shared.RecordActivity(ctx, uc.store, uc.logger, 0,
		domain.EventIdeaCreated, fmt.Sprintf("Idea #%d: %s", idea.ID, content))
	return &NewIdeaOutput{Idea: idea, Warnings: warnings}, nil
}

// DeleteIdeaInput contains the parameters for discarding an idea.
type DeleteIdeaInput struct {
	IdeaID int64
}

// DeleteIdeaOutput contains the discarded idea.
type DeleteIdeaOutput struct {
	Idea     *domain.Idea
	Warnings []string
}

// DeleteIdea discards an idea without promoting it.
type DeleteIdea struct {
	store  domain.Store
	logger domain.Logger
}

// NewDeleteIdea creates a new DeleteIdea use case.
func NewDeleteIdea(store domain.Store, logger domain.Logger) *DeleteIdea {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &DeleteIdea{store: store, logger: logger}
}

// Execute deletes the idea.
func (uc *DeleteIdea) Execute(ctx context.Context, in DeleteIdeaInput) (*DeleteIdeaOutput, error) {
	idea, err := shared.GetIdea(ctx, uc.store, in.IdeaID)
	if err != nil {
		return nil, err
	}
	if err := uc.store.DeleteIdea(ctx, idea.ID); err != nil {
		return nil, fmt.Errorf("delete idea: %w", err)
	}
	uc.logger.Info(0, "idea", fmt.Sprintf("idea #%d deleted", idea.ID))
	warnings := shared.RecordActivity(ctx, uc.store, uc.logger, 0,
		domain.EventIdeaDeleted, fmt.Sprintf("Idea #%d: %s", idea.ID, idea.Content))
	return &DeleteIdeaOutput{Idea: idea, Warnings: warnings}, nil
}

// PromoteIdeaInput contains the parameters for promoting an idea.
type PromoteIdeaInput struct {
	IdeaID int64
}

// PromoteIdeaOutput contains the promoted idea and the task created from it.
type PromoteIdeaOutput struct {
	Idea     *domain.Idea
	Task     *domain.Task
	Warnings []string
}

// PromoteIdea turns an idea into a Backlog task.
type PromoteIdea struct {
	store  domain.Store
	logger domain.Logger
}

// NewPromoteIdea creates a new PromoteIdea use case.
func NewPromoteIdea(store domain.Store, logger domain.Logger) *PromoteIdea {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &PromoteIdea{store: store, logger: logger}
}

// Execute deletes the idea and creates the task in one store transaction.
func (uc *PromoteIdea) Execute(ctx context.Context, in PromoteIdeaInput) (*PromoteIdeaOutput, error) {
	idea, err := shared.GetIdea(ctx, uc.store, in.IdeaID)
	if err != nil {
		return nil, err
	}
	backlog, err := shared.GetColumnByName(ctx, uc.store, domain.ColumnBacklog)
	if err != nil {
		return nil, err
	}

	task, err := uc.store.PromoteIdea(ctx, idea.ID, backlog.ID)
	if err != nil {
		return nil, fmt.Errorf("promote idea: %w", err)
	}

	uc.logger.Info(task.ID, "idea", fmt.Sprintf("promoted from idea #%d", idea.ID))
	warnings := shared.RecordActivity(ctx, uc.store, uc.logger, task.ID,
		domain.EventIdeaPromoted, fmt.Sprintf("Idea #%d → Task #%d: %s", idea.ID, task.ID, idea.Content))

	return &PromoteIdeaOutput{Idea: idea, Task: task, Warnings: warnings}, nil
}

// ListIdeasOutput contains the ideas, newest first.
type ListIdeasOutput struct {
	Ideas []domain.Idea
}

// ListIdeas lists captured ideas.
type ListIdeas struct {
	ideas domain.IdeaRepository
}

// NewListIdeas creates a new ListIdeas use case.
func NewListIdeas(ideas domain.IdeaRepository) *ListIdeas {
	return &ListIdeas{ideas: ideas}
}

// Execute returns all ideas.
func (uc *ListIdeas) Execute(ctx context.Context) (*ListIdeasOutput, error) {
	ideas, err := uc.ideas.ListIdeas(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ideas: %w", err)
	}
	return &ListIdeasOutput{Ideas: ideas}, nil
}
