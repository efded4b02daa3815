package domain

import (
	"context"
	"time"
)

// StoreInitializer initializes the data store.
type StoreInitializer interface {
	// Initialize creates the database and applies migrations.
	Initialize(ctx context.Context) error

	// IsInitialized reports whether the database exists.
	IsInitialized() bool
}

// ProjectRepository manages the project row and the fixed columns.
type ProjectRepository interface {
	// CreateProject inserts the project row.
	CreateProject(ctx context.Context, name, repoPath string) (*Project, error)

	// GetProject returns the project. Returns ErrNotFound if absent.
	GetProject(ctx context.Context) (*Project, error)

	// CreateDefaultColumns inserts the five fixed columns.
	CreateDefaultColumns(ctx context.Context) error

	// ListColumns returns all columns ordered by position.
	ListColumns(ctx context.Context) ([]Column, error)

	// GetColumn returns a column by ID. Returns nil if not found.
	GetColumn(ctx context.Context, id int64) (*Column, error)

	// GetColumnByName returns a column by name, ignoring case. Returns nil if not found.
	GetColumnByName(ctx context.Context, name string) (*Column, error)
}

// TaskRepository manages task persistence.
type TaskRepository interface {
	// CreateTask inserts a task. ID, Created and Updated are assigned by the store.
	CreateTask(ctx context.Context, task *Task) error

	// GetTask retrieves a task by ID. Returns nil if not found.
	GetTask(ctx context.Context, id int64) (*Task, error)

	// ListTasks retrieves tasks ordered by column position, then most recent first.
	ListTasks(ctx context.Context, filter TaskFilter) ([]*Task, error)

	// SaveTask writes every mutable field of an existing task in one update
	// and refreshes Updated.
	SaveTask(ctx context.Context, task *Task) error

	// AddComment appends a comment to a task.
	AddComment(ctx context.Context, comment *Comment) error

	// ListComments returns the comments of a task in creation order.
	ListComments(ctx context.Context, taskID int64) ([]Comment, error)
}

// TaskFilter specifies criteria for listing tasks.
type TaskFilter struct {
	ColumnID *int64 // nil = all columns
}

// IdeaRepository manages ideas.
type IdeaRepository interface {
	// CreateIdea inserts an idea.
	CreateIdea(ctx context.Context, content string) (*Idea, error)

	// GetIdea retrieves an idea by ID. Returns nil if not found.
	GetIdea(ctx context.Context, id int64) (*Idea, error)

	// ListIdeas returns all ideas, newest first.
	ListIdeas(ctx context.Context) ([]Idea, error)

	// DeleteIdea removes an idea. Returns ErrIdeaNotFound if absent.
	DeleteIdea(ctx context.Context, id int64) error

	// PromoteIdea deletes the idea and creates a task with its content as title
	// in the given column, as one transaction.
	PromoteIdea(ctx context.Context, ideaID, columnID int64) (*Task, error)
}

// ActivityLog is the append-only audit trail.
type ActivityLog interface {
	// AppendActivity records one event.
	AppendActivity(ctx context.Context, event EventType, metadata string) error

	// ListActivity returns the latest entries, newest first.
	ListActivity(ctx context.Context, limit int) ([]Activity, error)
}

// Store combines every persistence port.
type Store interface {
	StoreInitializer
	ProjectRepository
	TaskRepository
	IdeaRepository
	ActivityLog
}

// Git provides the version control operations the lifecycle needs.
type Git interface {
	// CreateBranch creates a branch at HEAD. Fails if it already exists.
	CreateBranch(name string) error

	// CheckoutBranch switches to an existing branch, keeping working tree changes.
	CheckoutBranch(name string) error

	// HasStagedChanges reports whether the index differs from HEAD.
	HasStagedChanges() (bool, error)

	// Commit records the staged changes and returns the commit hash.
	Commit(message string) (string, error)

	// RemoteURL returns the first URL of the named remote, or "" if it does not exist.
	RemoteURL(name string) (string, error)

	// CurrentBranch returns the checked out branch, or "" when HEAD is detached.
	CurrentBranch() (string, error)

	// UserName returns the configured user.name, or "".
	UserName() (string, error)

	// RepoRoot returns the working tree root.
	RepoRoot() string
}

// BranchPusher publishes a branch. A nil error expresses that the push was
// requested; it does not guarantee the branch is visible on the remote.
type BranchPusher interface {
	Push(ctx context.Context, branch string) error
}

// ReviewRequester opens review requests on a hosted service.
type ReviewRequester interface {
	// CreateReviewRequest opens a request and returns its link.
	// Errors wrapping ErrReviewDegraded mean the request was not opened; the
	// returned link may still carry a usable fallback URL.
	CreateReviewRequest(ctx context.Context, req ReviewRequest) (ReviewLink, error)
}

// ReviewStatusChecker is implemented by review clients that can query the
// state of an opened request.
type ReviewStatusChecker interface {
	ReviewStatus(ctx context.Context, remoteURL, requestURL string) (ReviewState, error)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (repo + global + defaults).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration over defaults.
	LoadGlobal() (*Config, error)
}

// ConfigManager inspects and creates configuration files.
type ConfigManager interface {
	// RepoConfigInfo describes the repository config file.
	RepoConfigInfo() ConfigInfo

	// GlobalConfigInfo describes the global config file.
	GlobalConfigInfo() ConfigInfo

	// InitRepoConfig writes the repository config. Returns ErrConfigExists if present.
	InitRepoConfig(cfg *Config) error

	// InitGlobalConfig writes the global config. Returns ErrConfigExists if present.
	InitGlobalConfig(cfg *Config) error
}

// ConfigInfo describes one config file.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// Logger writes operation logs. taskID 0 means a board-wide entry.
type Logger interface {
	Debug(taskID int64, category, msg string)
	Info(taskID int64, category, msg string)
	Warn(taskID int64, category, msg string)
	Error(taskID int64, category, msg string)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(int64, string, string) {}
func (NopLogger) Info(int64, string, string)  {}
func (NopLogger) Warn(int64, string, string)  {}
func (NopLogger) Error(int64, string, string) {}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
