// Package shared holds lookups and helpers used by several use cases.
package shared

import (
	"context"
	"fmt"

	"github.com/runoshun/git-board/internal/domain"
)

// GetTask retrieves a task by ID and returns domain.ErrTaskNotFound if not found.
// This centralizes the common pattern of:
//
//	task, err := repo.GetTask(ctx, taskID)
//	if err != nil { return nil, fmt.Errorf("get task: %w", err) }
//	if task == nil { return nil, domain.ErrTaskNotFound }
func GetTask(ctx context.Context, repo domain.TaskRepository, taskID int64) (*domain.Task, error) {
	task, err := repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return nil, fmt.Errorf("#%d: %w", taskID, domain.ErrTaskNotFound)
	}
	return task, nil
}

// GetColumnByName resolves a column by name, ignoring case.
// Returns domain.ErrColumnNotFound if no column matches.
func GetColumnByName(ctx context.Context, repo domain.ProjectRepository, name string) (*domain.Column, error) {
	col, err := repo.GetColumnByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get column: %w", err)
	}
	if col == nil {
		return nil, fmt.Errorf("%q: %w", name, domain.ErrColumnNotFound)
	}
	return col, nil
}

// GetColumn resolves a column by ID. Returns domain.ErrColumnNotFound if absent.
func GetColumn(ctx context.Context, repo domain.ProjectRepository, id int64) (*domain.Column, error) {
	col, err := repo.GetColumn(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get column: %w", err)
	}
	if col == nil {
		return nil, fmt.Errorf("id %d: %w", id, domain.ErrColumnNotFound)
	}
	return col, nil
}

// GetIdea retrieves an idea by ID and returns domain.ErrIdeaNotFound if not found.
func GetIdea(ctx context.Context, repo domain.IdeaRepository, ideaID int64) (*domain.Idea, error) {
	idea, err := repo.GetIdea(ctx, ideaID)
	if err != nil {
		return nil, fmt.Errorf("get idea: %w", err)
	}
	if idea == nil {
		return nil, fmt.Errorf("#%d: %w", ideaID, domain.ErrIdeaNotFound)
	}
	return idea, nil
}
