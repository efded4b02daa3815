package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy. Specific errors wrap one of these so callers can classify
// failures with errors.Is.
var (
	ErrNotInitialized = errors.New("board not initialized (run 'pb init' first)")
	ErrNotFound       = errors.New("not found")
	ErrExternalTool   = errors.New("git operation failed")
	ErrReviewDegraded = errors.New("review request not opened")
	ErrPersistence    = errors.New("board store write failed")
)

// Domain errors.
var (
	ErrTaskNotFound   = fmt.Errorf("task %w", ErrNotFound)
	ErrColumnNotFound = fmt.Errorf("column %w", ErrNotFound)
	ErrIdeaNotFound   = fmt.Errorf("idea %w", ErrNotFound)

	ErrUnsupportedRemote = fmt.Errorf("unsupported remote host: %w", ErrReviewDegraded)
	ErrNoCredential      = fmt.Errorf("no access token configured: %w", ErrReviewDegraded)

	ErrNotGitRepository    = errors.New("not a git repository (or any of the parent directories)")
	ErrAlreadyInitialized  = errors.New("board already initialized in this repository")
	ErrEmptyTitle          = errors.New("title cannot be empty")
	ErrEmptyMessage        = errors.New("message cannot be empty")
	ErrEmptyIdea           = errors.New("idea content cannot be empty")
	ErrNoBranch            = errors.New("task has no associated branch (run 'pb start' first)")
	ErrNoReviewRequest     = errors.New("task has no associated review request")
	ErrInvalidExportFormat = errors.New("invalid export format")
	ErrBranchExists        = errors.New("branch already exists")
	ErrConfigExists        = errors.New("config file already exists")
)
