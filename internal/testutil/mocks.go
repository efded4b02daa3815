// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/runoshun/git-board/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockStore is an in-memory test double for domain.Store.
// Tasks are copied on read and write so a failed save never leaks
// mutations made by the caller.
// Fields are ordered to minimize memory padding.
type MockStore struct {
	Clock       domain.Clock
	Project     *domain.Project
	Tasks       map[int64]*domain.Task
	Comments    map[int64][]domain.Comment
	Ideas       map[int64]*domain.Idea
	InitErr     error
	GetErr      error
	ListErr     error
	CreateErr   error
	SaveErr     error
	CommentErr  error
	IdeaErr     error
	PromoteErr  error
	ActivityErr error
	ColumnErr   error
	Columns     []domain.Column
	Activities  []domain.Activity
	SaveCalls   int
	nextID      int64
	Initialized bool
}

// Ensure MockStore implements domain.Store interface.
var _ domain.Store = (*MockStore)(nil)

// NewMockStore creates an initialized MockStore holding the default columns
// with IDs 1 to 5.
func NewMockStore() *MockStore {
	cols := domain.DefaultColumns()
	for i := range cols {
		cols[i].ID = int64(i + 1)
	}
	return &MockStore{
		Clock:       &MockClock{NowTime: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)},
		Tasks:       make(map[int64]*domain.Task),
		Comments:    make(map[int64][]domain.Comment),
		Ideas:       make(map[int64]*domain.Idea),
		Columns:     cols,
		nextID:      100,
		Initialized: true,
	}
}

// ColumnID returns the ID of the named column, or 0.
func (m *MockStore) ColumnID(name string) int64 {
	for _, c := range m.Columns {
		if domain.SameColumnName(c.Name, name) {
			return c.ID
		}
	}
	return 0
}

// Events returns the recorded activity event types in append order.
func (m *MockStore) Events() []domain.EventType {
	events := make([]domain.EventType, 0, len(m.Activities))
	for _, a := range m.Activities {
		events = append(events, a.Event)
	}
	return events
}

func (m *MockStore) id() int64 {
	m.nextID++
	return m.nextID
}

// Initialize marks the store initialized.
func (m *MockStore) Initialize(_ context.Context) error {
	if m.InitErr != nil {
		return m.InitErr
	}
	m.Initialized = true
	return nil
}

// IsInitialized returns the configured state.
func (m *MockStore) IsInitialized() bool {
	return m.Initialized
}

// CreateProject stores the project row.
func (m *MockStore) CreateProject(_ context.Context, name, repoPath string) (*domain.Project, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.Project = &domain.Project{ID: 1, Name: name, RepoPath: repoPath}
	return m.Project, nil
}

// GetProject returns the stored project.
func (m *MockStore) GetProject(_ context.Context) (*domain.Project, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.Project == nil {
		return nil, fmt.Errorf("project %w", domain.ErrNotFound)
	}
	return m.Project, nil
}

// CreateDefaultColumns resets the columns to the defaults.
func (m *MockStore) CreateDefaultColumns(_ context.Context) error {
	if m.ColumnErr != nil {
		return m.ColumnErr
	}
	if len(m.Columns) > 0 {
		return nil
	}
	m.Columns = domain.DefaultColumns()
	for i := range m.Columns {
		m.Columns[i].ID = int64(i + 1)
	}
	return nil
}

// ListColumns returns the columns ordered by position.
func (m *MockStore) ListColumns(_ context.Context) ([]domain.Column, error) {
	if m.ColumnErr != nil {
		return nil, m.ColumnErr
	}
	cols := append([]domain.Column(nil), m.Columns...)
	sort.SliceStable(cols, func(i, j int) bool { return cols[i].Order < cols[j].Order })
	return cols, nil
}

// GetColumn returns a column by ID, or nil.
func (m *MockStore) GetColumn(_ context.Context, id int64) (*domain.Column, error) {
	if m.ColumnErr != nil {
		return nil, m.ColumnErr
	}
	if c := domain.FindColumn(m.Columns, id); c != nil {
		col := *c
		return &col, nil
	}
	return nil, nil
}

// GetColumnByName returns a column by name ignoring case, or nil.
func (m *MockStore) GetColumnByName(_ context.Context, name string) (*domain.Column, error) {
	if m.ColumnErr != nil {
		return nil, m.ColumnErr
	}
	for _, c := range m.Columns {
		if domain.SameColumnName(c.Name, name) {
			col := c
			return &col, nil
		}
	}
	return nil, nil
}

// CreateTask stores a copy of the task and assigns ID and timestamps.
func (m *MockStore) CreateTask(_ context.Context, task *domain.Task) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	now := m.Clock.Now()
	task.ID = m.id()
	task.Created = now
	task.Updated = now
	stored := *task
	m.Tasks[task.ID] = &stored
	return nil
}

// GetTask returns a copy of the task, or nil.
func (m *MockStore) GetTask(_ context.Context, id int64) (*domain.Task, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	task, ok := m.Tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *task
	return &cp, nil
}

// ListTasks returns copies ordered by column position, then most recent first.
func (m *MockStore) ListTasks(_ context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	position := func(colID int64) int {
		if c := domain.FindColumn(m.Columns, colID); c != nil {
			return c.Order
		}
		return len(m.Columns)
	}
	var tasks []*domain.Task
	for _, t := range m.Tasks {
		if filter.ColumnID != nil && t.ColumnID != *filter.ColumnID {
			continue
		}
		cp := *t
		tasks = append(tasks, &cp)
	}
	sort.Slice(tasks, func(i, j int) bool {
		pi, pj := position(tasks[i].ColumnID), position(tasks[j].ColumnID)
		if pi != pj {
			return pi < pj
		}
		if !tasks[i].Created.Equal(tasks[j].Created) {
			return tasks[i].Created.After(tasks[j].Created)
		}
		return tasks[i].ID > tasks[j].ID
	})
	return tasks, nil
}

// SaveTask replaces the stored task and refreshes Updated.
func (m *MockStore) SaveTask(_ context.Context, task *domain.Task) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if _, ok := m.Tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	task.Updated = m.Clock.Now()
	stored := *task
	m.Tasks[task.ID] = &stored
	return nil
}

// AddComment appends a comment.
func (m *MockStore) AddComment(_ context.Context, comment *domain.Comment) error {
	if m.CommentErr != nil {
		return m.CommentErr
	}
	comment.ID = m.id()
	comment.Created = m.Clock.Now()
	m.Comments[comment.TaskID] = append(m.Comments[comment.TaskID], *comment)
	return nil
}

// ListComments returns the comments of a task.
func (m *MockStore) ListComments(_ context.Context, taskID int64) ([]domain.Comment, error) {
	if m.CommentErr != nil {
		return nil, m.CommentErr
	}
	return m.Comments[taskID], nil
}

// CreateIdea stores an idea.
func (m *MockStore) CreateIdea(_ context.Context, content string) (*domain.Idea, error) {
	if m.IdeaErr != nil {
		return nil, m.IdeaErr
	}
	idea := &domain.Idea{ID: m.id(), Content: content, Created: m.Clock.Now()}
	m.Ideas[idea.ID] = idea
	return idea, nil
}

// GetIdea returns an idea, or nil.
func (m *MockStore) GetIdea(_ context.Context, id int64) (*domain.Idea, error) {
	if m.IdeaErr != nil {
		return nil, m.IdeaErr
	}
	idea, ok := m.Ideas[id]
	if !ok {
		return nil, nil
	}
	cp := *idea
	return &cp, nil
}

// ListIdeas returns ideas newest first.
func (m *MockStore) ListIdeas(_ context.Context) ([]domain.Idea, error) {
	if m.IdeaErr != nil {
		return nil, m.IdeaErr
	}
	ideas := make([]domain.Idea, 0, len(m.Ideas))
	for _, idea := range m.Ideas {
		ideas = append(ideas, *idea)
	}
	sort.Slice(ideas, func(i, j int) bool {
		if !ideas[i].Created.Equal(ideas[j].Created) {
			return ideas[i].Created.After(ideas[j].Created)
		}
		return ideas[i].ID > ideas[j].ID
	})
	return ideas, nil
}

// DeleteIdea removes an idea.
func (m *MockStore) DeleteIdea(_ context.Context, id int64) error {
	if m.IdeaErr != nil {
		return m.IdeaErr
	}
	if _, ok := m.Ideas[id]; !ok {
		return domain.ErrIdeaNotFound
	}
	delete(m.Ideas, id)
	return nil
}

// PromoteIdea deletes the idea and creates a task, or changes nothing on error.
func (m *MockStore) PromoteIdea(ctx context.Context, ideaID, columnID int64) (*domain.Task, error) {
	if m.PromoteErr != nil {
		return nil, m.PromoteErr
	}
	idea, ok := m.Ideas[ideaID]
	if !ok {
		return nil, domain.ErrIdeaNotFound
	}
	task := &domain.Task{Title: idea.Content, ColumnID: columnID}
	if err := m.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	delete(m.Ideas, ideaID)
	return task, nil
}

// AppendActivity records an activity entry.
func (m *MockStore) AppendActivity(_ context.Context, event domain.EventType, metadata string) error {
	if m.ActivityErr != nil {
		return m.ActivityErr
	}
	m.Activities = append(m.Activities, domain.Activity{
		ID:       m.id(),
		Event:    event,
		Metadata: metadata,
		Created:  m.Clock.Now(),
	})
	return nil
}

// ListActivity returns the latest entries, newest first.
func (m *MockStore) ListActivity(_ context.Context, limit int) ([]domain.Activity, error) {
	if m.ActivityErr != nil {
		return nil, m.ActivityErr
	}
	var out []domain.Activity
	for i := len(m.Activities) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, m.Activities[i])
	}
	return out, nil
}

// MockGit is a test double for domain.Git.
// Fields are ordered to minimize memory padding.
type MockGit struct {
	CreateBranchErr   error
	CheckoutErr       error
	StagedErr         error
	CommitErr         error
	RemoteErr         error
	CurrentBranchErr  error
	UserNameErr       error
	Remotes           map[string]string
	Branches          map[string]bool
	CurrentBranchName string
	User              string
	Root              string
	CommitHash        string
	CreatedBranches   []string
	CheckedOut        []string
	Commits           []string
	HasStaged         bool
}

// Ensure MockGit implements domain.Git interface.
var _ domain.Git = (*MockGit)(nil)

// NewMockGit creates a MockGit on branch main with an origin remote.
func NewMockGit() *MockGit {
	return &MockGit{
		Remotes:           map[string]string{"origin": "git@github.com:acme/widgets.git"},
		Branches:          map[string]bool{"main": true},
		CurrentBranchName: "main",
		User:              "Test User",
		Root:              "/repo",
		CommitHash:        "0123456789abcdef0123456789abcdef01234567",
	}
}

// CreateBranch records the branch or returns the configured error.
func (m *MockGit) CreateBranch(name string) error {
	if m.CreateBranchErr != nil {
		return m.CreateBranchErr
	}
	if m.Branches == nil {
		m.Branches = make(map[string]bool)
	}
	if m.Branches[name] {
		return fmt.Errorf("create branch %q: %w", name, domain.ErrBranchExists)
	}
	m.Branches[name] = true
	m.CreatedBranches = append(m.CreatedBranches, name)
	return nil
}

// CheckoutBranch switches the current branch or returns the configured error.
func (m *MockGit) CheckoutBranch(name string) error {
	if m.CheckoutErr != nil {
		return m.CheckoutErr
	}
	if !m.Branches[name] {
		return fmt.Errorf("checkout %q: reference not found", name)
	}
	m.CurrentBranchName = name
	m.CheckedOut = append(m.CheckedOut, name)
	return nil
}

// HasStagedChanges returns the configured value or error.
func (m *MockGit) HasStagedChanges() (bool, error) {
	if m.StagedErr != nil {
		return false, m.StagedErr
	}
	return m.HasStaged, nil
}

// Commit records the message and clears staged changes.
func (m *MockGit) Commit(message string) (string, error) {
	if m.CommitErr != nil {
		return "", m.CommitErr
	}
	m.Commits = append(m.Commits, message)
	m.HasStaged = false
	return m.CommitHash, nil
}

// RemoteURL returns the configured remote URL, or "".
func (m *MockGit) RemoteURL(name string) (string, error) {
	if m.RemoteErr != nil {
		return "", m.RemoteErr
	}
	return m.Remotes[name], nil
}

// CurrentBranch returns the configured branch name or error.
func (m *MockGit) CurrentBranch() (string, error) {
	if m.CurrentBranchErr != nil {
		return "", m.CurrentBranchErr
	}
	return m.CurrentBranchName, nil
}

// UserName returns the configured user name or error.
func (m *MockGit) UserName() (string, error) {
	if m.UserNameErr != nil {
		return "", m.UserNameErr
	}
	return m.User, nil
}

// RepoRoot returns the configured root.
func (m *MockGit) RepoRoot() string {
	return m.Root
}

// MockPusher is a test double for domain.BranchPusher.
type MockPusher struct {
	PushErr error
	Pushed  []string
}

// Ensure MockPusher implements domain.BranchPusher interface.
var _ domain.BranchPusher = (*MockPusher)(nil)

// Push records the branch or returns the configured error.
func (m *MockPusher) Push(_ context.Context, branch string) error {
	if m.PushErr != nil {
		return m.PushErr
	}
	m.Pushed = append(m.Pushed, branch)
	return nil
}

// MockReviewRequester is a test double for domain.ReviewRequester and
// domain.ReviewStatusChecker.
// Fields are ordered to minimize memory padding.
type MockReviewRequester struct {
	CreateErr error
	StatusErr error
	Link      domain.ReviewLink
	State     domain.ReviewState
	Requests  []domain.ReviewRequest
	Checked   []string
}

// Ensure MockReviewRequester implements the review interfaces.
var (
	_ domain.ReviewRequester     = (*MockReviewRequester)(nil)
	_ domain.ReviewStatusChecker = (*MockReviewRequester)(nil)
)

// CreateReviewRequest records the request and returns the configured link and error.
func (m *MockReviewRequester) CreateReviewRequest(_ context.Context, req domain.ReviewRequest) (domain.ReviewLink, error) {
	m.Requests = append(m.Requests, req)
	return m.Link, m.CreateErr
}

// ReviewStatus records the URL and returns the configured state or error.
func (m *MockReviewRequester) ReviewStatus(_ context.Context, _, requestURL string) (domain.ReviewState, error) {
	m.Checked = append(m.Checked, requestURL)
	if m.StatusErr != nil {
		return "", m.StatusErr
	}
	return m.State, nil
}

// LogEntry is one message captured by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
	TaskID   int64
}

// MockLogger is a test double for domain.Logger that records entries.
type MockLogger struct {
	Entries []LogEntry
}

// Ensure MockLogger implements domain.Logger interface.
var _ domain.Logger = (*MockLogger)(nil)

func (m *MockLogger) add(level string, taskID int64, category, msg string) {
	m.Entries = append(m.Entries, LogEntry{Level: level, TaskID: taskID, Category: category, Msg: msg})
}

// Debug records a debug entry.
func (m *MockLogger) Debug(taskID int64, category, msg string) { m.add("DEBUG", taskID, category, msg) }

// Info records an info entry.
func (m *MockLogger) Info(taskID int64, category, msg string) { m.add("INFO", taskID, category, msg) }

// Warn records a warning entry.
func (m *MockLogger) Warn(taskID int64, category, msg string) { m.add("WARN", taskID, category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(taskID int64, category, msg string) { m.add("ERROR", taskID, category, msg) }

// Contains reports whether any entry at level contains substr.
func (m *MockLogger) Contains(level, substr string) bool {
	for _, e := range m.Entries {
		if e.Level == level && strings.Contains(e.Msg, substr) {
			return true
		}
	}
	return false
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config       *domain.Config
	GlobalConfig *domain.Config
	LoadErr      error
	GlobalErr    error
}

// NewMockConfigLoader creates a new MockConfigLoader with default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config: domain.NewDefaultConfig(),
	}
}

// Ensure MockConfigLoader implements domain.ConfigLoader interface.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config or error.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// LoadGlobal returns the configured config or error.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	if m.GlobalErr != nil {
		return nil, m.GlobalErr
	}
	if m.GlobalConfig != nil {
		return m.GlobalConfig, nil
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitRepoErr      error
	InitGlobalErr    error
	RepoInfo         domain.ConfigInfo
	GlobalInfo       domain.ConfigInfo
	InitRepoCalled   bool
	InitGlobalCalled bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		RepoInfo: domain.ConfigInfo{
			Path: "/repo/.projectboard/config.toml",
		},
		GlobalInfo: domain.ConfigInfo{
			Path: "/home/test/.config/git-board/config.toml",
		},
	}
}

// Ensure MockConfigManager implements domain.ConfigManager interface.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// RepoConfigInfo returns the configured repo config info.
func (m *MockConfigManager) RepoConfigInfo() domain.ConfigInfo {
	return m.RepoInfo
}

// GlobalConfigInfo returns the configured global config info.
func (m *MockConfigManager) GlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalInfo
}

// InitRepoConfig records the call and returns configured error.
func (m *MockConfigManager) InitRepoConfig(_ *domain.Config) error {
	m.InitRepoCalled = true
	if m.InitRepoErr != nil {
		return m.InitRepoErr
	}
	if m.RepoInfo.Exists {
		return domain.ErrConfigExists
	}
	m.RepoInfo.Exists = true
	return nil
}

// InitGlobalConfig records the call and returns configured error.
func (m *MockConfigManager) InitGlobalConfig(_ *domain.Config) error {
	m.InitGlobalCalled = true
	if m.InitGlobalErr != nil {
		return m.InitGlobalErr
	}
	if m.GlobalInfo.Exists {
		return domain.ErrConfigExists
	}
	m.GlobalInfo.Exists = true
	return nil
}

// ErrMock is a generic error for injecting failures.
var ErrMock = errors.New("mock failure")
