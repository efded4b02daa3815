// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/runoshun/git-board/internal/domain"
	"github.com/runoshun/git-board/internal/infra/config"
	"github.com/runoshun/git-board/internal/infra/git"
	"github.com/runoshun/git-board/internal/infra/logging"
	"github.com/runoshun/git-board/internal/infra/review"
	"github.com/runoshun/git-board/internal/infra/sqlite"
	"github.com/runoshun/git-board/internal/usecase"
)

// Config holds the application configuration paths.
type Config struct {
	RepoRoot     string // Root directory of the git working tree
	BoardDir     string // Path to .projectboard directory
	DatabasePath string // Path to board.sqlite
}

// newConfig derives the board paths from the working tree root.
func newConfig(repoRoot string) Config {
	boardDir := domain.BoardDir(repoRoot)
	return Config{
		RepoRoot:     repoRoot,
		BoardDir:     boardDir,
		DatabasePath: domain.DatabasePath(boardDir),
	}
}

// Options carries the process environment into the container. The use cases
// never read the environment themselves.
type Options struct {
	Getenv func(string) string // Reads the access token variable; nil = no token
	Stderr io.Writer           // Diagnostics output; nil = os.Stderr
}

// closer is implemented by ports holding open files or connections.
type closer interface {
	Close() error
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Store         domain.Store
	Clock         domain.Clock
	Git           domain.Git
	Pusher        domain.BranchPusher
	Review        domain.ReviewRequester
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Logger        domain.Logger

	// Pointer fields
	AppConfig *domain.Config
	Diag      *slog.Logger // Container-level diagnostics on stderr

	// Configuration
	Config Config
}

// New creates a new Container by detecting the git repository from the given directory.
func New(dir string, opts Options) (*Container, error) {
	gitClient, err := git.NewClient(dir)
	if err != nil {
		return nil, err
	}
	cfg := newConfig(gitClient.RepoRoot())

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	diag := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	configLoader := config.NewLoader(cfg.BoardDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		diag.Warn("config not loaded, using defaults", "error", err)
		appConfig = domain.NewDefaultConfig()
	}
	for _, w := range appConfig.Warnings {
		diag.Warn("config", "warning", w)
	}

	clock := domain.RealClock{}
	logger := logging.New(cfg.BoardDir, logging.ParseLevel(appConfig.Log.Level), clock)

	var pusher domain.BranchPusher
	if appConfig.Git.Push == domain.PushGit {
		pusher = git.NewCLIPusher(cfg.RepoRoot, appConfig.Git.Remote, logger)
	} else {
		pusher = git.NewSimulatedPusher(appConfig.Git.Remote, logger)
	}

	reviewClient, err := newReviewClient(appConfig.Review, opts.Getenv)
	if err != nil {
		diag.Warn("review client not configured, recording fallback links", "error", err)
		reviewClient = review.FallbackClient{}
	}

	return &Container{
		Store:         sqlite.New(cfg.DatabasePath, clock),
		Clock:         clock,
		Git:           gitClient,
		Pusher:        pusher,
		Review:        reviewClient,
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(cfg.BoardDir),
		Logger:        logger,
		AppConfig:     appConfig,
		Diag:          diag,
		Config:        cfg,
	}, nil
}

// newReviewClient returns the GitHub client when an access token is available
// and the fallback client otherwise.
func newReviewClient(cfg domain.ReviewConfig, getenv func(string) string) (domain.ReviewRequester, error) {
	token := ""
	if getenv != nil && cfg.TokenEnv != "" {
		token = getenv(cfg.TokenEnv)
	}
	if token == "" {
		return review.FallbackClient{}, nil
	}
	client, err := review.NewGitHubClient(token, review.GitHubOptions{
		APIURL:    cfg.APIURL,
		UploadURL: cfg.UploadURL,
	})
	if err != nil {
		return nil, fmt.Errorf("github client: %w", err)
	}
	return client, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, store domain.Store, gitPort domain.Git, pusher domain.BranchPusher, reviewer domain.ReviewRequester, clock domain.Clock) *Container {
	return &Container{
		Store:         store,
		Clock:         clock,
		Git:           gitPort,
		Pusher:        pusher,
		Review:        reviewer,
		ConfigLoader:  config.NewLoaderWithGlobalDir(cfg.BoardDir, ""),
		ConfigManager: config.NewManagerWithGlobalDir(cfg.BoardDir, ""),
		Logger:        domain.NopLogger{},
		AppConfig:     domain.NewDefaultConfig(),
		Diag:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:        cfg,
	}
}

// Close releases the store connection and open log files.
func (c *Container) Close() error {
	var errs []error
	for _, p := range []any{c.Store, c.Logger} {
		if cl, ok := p.(closer); ok {
			errs = append(errs, cl.Close())
		}
	}
	return errors.Join(errs...)
}

// ReviewStatusChecker returns the review client when it can query request state.
func (c *Container) ReviewStatusChecker() domain.ReviewStatusChecker {
	if checker, ok := c.Review.(domain.ReviewStatusChecker); ok {
		return checker
	}
	return nil
}

// UseCase factory methods

// InitBoardUseCase returns a new InitBoard use case.
func (c *Container) InitBoardUseCase() *usecase.InitBoard {
	return usecase.NewInitBoard(c.Store, c.ConfigManager, c.Logger)
}

// NewTaskUseCase returns a new NewTask use case.
func (c *Container) NewTaskUseCase() *usecase.NewTask {
	return usecase.NewNewTask(c.Store, c.Logger)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Store)
}

// ShowTaskUseCase returns a new ShowTask use case.
func (c *Container) ShowTaskUseCase() *usecase.ShowTask {
	return usecase.NewShowTask(c.Store)
}

// MoveTaskUseCase returns a new MoveTask use case.
func (c *Container) MoveTaskUseCase() *usecase.MoveTask {
	return usecase.NewMoveTask(c.Store, c.Logger)
}

// AddCommentUseCase returns a new AddComment use case.
func (c *Container) AddCommentUseCase() *usecase.AddComment {
	return usecase.NewAddComment(c.Store, c.Git, c.Logger)
}

// NewIdeaUseCase returns a new NewIdea use case.
func (c *Container) NewIdeaUseCase() *usecase.NewIdea {
	return usecase.NewNewIdea(c.Store, c.Logger)
}

// ListIdeasUseCase returns a new ListIdeas use case.
func (c *Container) ListIdeasUseCase() *usecase.ListIdeas {
	return usecase.NewListIdeas(c.Store)
}

// DeleteIdeaUseCase returns a new DeleteIdea use case.
func (c *Container) DeleteIdeaUseCase() *usecase.DeleteIdea {
	return usecase.NewDeleteIdea(c.Store, c.Logger)
}

// PromoteIdeaUseCase returns a new PromoteIdea use case.
func (c *Container) PromoteIdeaUseCase() *usecase.PromoteIdea {
	return usecase.NewPromoteIdea(c.Store, c.Logger)
}

// StartTaskUseCase returns a new StartTask use case.
func (c *Container) StartTaskUseCase() *usecase.StartTask {
	return usecase.NewStartTask(c.Store, c.Git, c.Logger)
}

// CompleteTaskUseCase returns a new CompleteTask use case.
func (c *Container) CompleteTaskUseCase() *usecase.CompleteTask {
	return usecase.NewCompleteTask(c.Store, c.Git, c.Pusher, c.Logger)
}

// SubmitTaskUseCase returns a new SubmitTask use case.
func (c *Container) SubmitTaskUseCase() *usecase.SubmitTask {
	return usecase.NewSubmitTask(c.Store, c.Git, c.Pusher, c.Review, c.Logger,
		c.AppConfig.Git.Remote, c.AppConfig.Review.BaseBranch)
}

// ReviewTaskUseCase returns a new ReviewTask use case.
func (c *Container) ReviewTaskUseCase() *usecase.ReviewTask {
	return usecase.NewReviewTask(c.Store, c.Git, c.ReviewStatusChecker(), c.Logger, c.AppConfig.Git.Remote)
}

// ShowActivityUseCase returns a new ShowActivity use case.
func (c *Container) ShowActivityUseCase() *usecase.ShowActivity {
	return usecase.NewShowActivity(c.Store)
}

// ExportTasksUseCase returns a new ExportTasks use case.
func (c *Container) ExportTasksUseCase() *usecase.ExportTasks {
	return usecase.NewExportTasks(c.Store)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigLoader, c.ConfigManager)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}
