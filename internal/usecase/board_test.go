package usecase

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/runoshun/git-board/internal/domain"
	"github.com/runoshun/git-board/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewTask_Execute_Success(t *testing.T) {
	// Setup
	store := testutil.NewMockStore()
	logger := &testutil.MockLogger{}
	uc := NewNewTask(store, logger)

	// Execute
	out, err := uc.Execute(context.Background(), NewTaskInput{
		Title:       "  Test task ",
		Description: "Test description",
	})

	// Assert
	require.NoError(t, err)
	task := store.Tasks[out.Task.ID]
	require.NotNil(t, task)
	assert.Equal(t, "Test task", task.Title)
	assert.Equal(t, "Test description", task.Description)
	assert.Equal(t, store.ColumnID(domain.ColumnBacklog), task.ColumnID)
	assert.Empty(t, task.BranchName)
	require.Len(t, store.Activities, 1)
	assert.Equal(t, domain.EventTaskCreated, store.Activities[0].Event)
	assert.Equal(t, "Task #"+itoa(out.Task.ID)+": Test task", store.Activities[0].Metadata)
	assert.True(t, logger.Contains("INFO", `created: "Test task"`))
}

func TestNewTask_Execute_EmptyTitle(t *testing.T) {
	store := testutil.NewMockStore()
	uc := NewNewTask(store, nil)

	_, err := uc.Execute(context.Background(), NewTaskInput{Title: "   "})

	assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	assert.Empty(t, store.Tasks)
}

func TestNewTask_Execute_CreateError(t *testing.T) {
	store := testutil.NewMockStore()
	store.CreateErr = domain.ErrPersistence
	uc := NewNewTask(store, nil)

	_, err := uc.Execute(context.Background(), NewTaskInput{Title: "x"})

	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Empty(t, store.Activities)
}

func TestAddComment_Execute_Success(t *testing.T) {
	store := testutil.NewMockStore()
	git := testutil.NewMockGit()
	git.User = "Ada"
	task := seedTask(t, store, domain.ColumnDoing, domain.Task{Title: "x"})
	uc := NewAddComment(store, git, nil)

	out, err := uc.Execute(context.Background(), AddCommentInput{TaskID: task.ID, Message: "  looks good  "})

	require.NoError(t, err)
	assert.Equal(t, "looks good", out.Comment.Text)
	assert.Equal(t, "Ada", out.Comment.Author)
	require.Len(t, store.Comments[task.ID], 1)
	assert.Equal(t, domain.EventCommentAdded, store.Activities[0].Event)
	assert.Contains(t, store.Activities[0].Metadata, "comment by Ada")
}

func TestAddComment_Execute_UnknownAuthor(t *testing.T) {
	tests := []struct {
		git  domain.Git
		name string
	}{
		{name: "no git", git: nil},
		{name: "empty user", git: &testutil.MockGit{}},
		{name: "git error", git: &testutil.MockGit{UserNameErr: testutil.ErrMock}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewMockStore()
			task := seedTask(t, store, domain.ColumnDoing, domain.Task{Title: "x"})
			uc := NewAddComment(store, tt.git, nil)

			out, err := uc.Execute(context.Background(), AddCommentInput{TaskID: task.ID, Message: "hi"})

			require.NoError(t, err)
			assert.Equal(t, UnknownAuthor, out.Comment.Author)
		})
	}
}

func TestAddComment_Execute_Errors(t *testing.T) {
	store := testutil.NewMockStore()
	uc := NewAddComment(store, nil, nil)

	_, err := uc.Execute(context.Background(), AddCommentInput{TaskID: 1, Message: " "})
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)

	_, err = uc.Execute(context.Background(), AddCommentInput{TaskID: 1, Message: "hi"})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestIdeas_CreatePromoteDelete(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMockStore()

	created, err := NewNewIdea(store, nil).Execute(ctx, NewIdeaInput{Content: "Dark mode"})
	require.NoError(t, err)
	other, err := NewNewIdea(store, nil).Execute(ctx, NewIdeaInput{Content: "Offline sync"})
	require.NoError(t, err)

	list, err := NewListIdeas(store).Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, list.Ideas, 2)

	promoted, err := NewPromoteIdea(store, nil).Execute(ctx, PromoteIdeaInput{IdeaID: created.Idea.ID})
	require.NoError(t, err)
	assert.Equal(t, "Dark mode", promoted.Task.Title)
	assert.Equal(t, store.ColumnID(domain.ColumnBacklog), promoted.Task.ColumnID)
	assert.NotContains(t, store.Ideas, created.Idea.ID, "idea and task never coexist")
	assert.Contains(t, store.Tasks, promoted.Task.ID)

	deleted, err := NewDeleteIdea(store, nil).Execute(ctx, DeleteIdeaInput{IdeaID: other.Idea.ID})
	require.NoError(t, err)
	assert.Equal(t, "Offline sync", deleted.Idea.Content)
	assert.Empty(t, store.Ideas)

	assert.Equal(t, []domain.EventType{
		domain.EventIdeaCreated,
		domain.EventIdeaCreated,
		domain.EventIdeaPromoted,
		domain.EventIdeaDeleted,
	}, store.Events())
	assert.Equal(t, "Idea #"+itoa(created.Idea.ID)+" → Task #"+itoa(promoted.Task.ID)+": Dark mode", store.Activities[2].Metadata)
}

func TestIdeas_Errors(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMockStore()

	_, err := NewNewIdea(store, nil).Execute(ctx, NewIdeaInput{Content: "\t"})
	assert.ErrorIs(t, err, domain.ErrEmptyIdea)

	_, err = NewPromoteIdea(store, nil).Execute(ctx, PromoteIdeaInput{IdeaID: 5})
	assert.ErrorIs(t, err, domain.ErrIdeaNotFound)

	_, err = NewDeleteIdea(store, nil).Execute(ctx, DeleteIdeaInput{IdeaID: 5})
	assert.ErrorIs(t, err, domain.ErrIdeaNotFound)

	idea, err := store.CreateIdea(ctx, "keep me")
	require.NoError(t, err)
	store.PromoteErr = domain.ErrPersistence
	_, err = NewPromoteIdea(store, nil).Execute(ctx, PromoteIdeaInput{IdeaID: idea.ID})
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Contains(t, store.Ideas, idea.ID)
	assert.Empty(t, store.Tasks)
}

func TestInitBoard_Execute_Success(t *testing.T) {
	repoRoot := filepath.Join(t.TempDir(), "widgets")
	require.NoError(t, os.MkdirAll(repoRoot, 0o755))
	boardDir := domain.BoardDir(repoRoot)

	store := testutil.NewMockStore()
	store.Columns = nil
	store.Initialized = false
	manager := testutil.NewMockConfigManager()
	uc := NewInitBoard(store, manager, nil)

	out, err := uc.Execute(context.Background(), InitBoardInput{BoardDir: boardDir, RepoRoot: repoRoot})

	require.NoError(t, err)
	assert.DirExists(t, boardDir)
	assert.True(t, store.Initialized)
	assert.Len(t, out.Columns, 5)
	assert.Equal(t, "widgets", out.Project.Name)
	assert.Equal(t, repoRoot, out.Project.RepoPath)
	assert.Equal(t, domain.DatabasePath(boardDir), out.DatabasePath)
	assert.True(t, manager.InitRepoCalled)
	assert.True(t, out.GitignoreNeedsAdd)
	assert.Equal(t, []domain.EventType{domain.EventProjectInitialized}, store.Events())
	assert.Equal(t, "Project: widgets", store.Activities[0].Metadata)
}

func TestInitBoard_Execute_Gitignore(t *testing.T) {
	for _, entry := range []string{".projectboard", ".projectboard/", "/.projectboard/"} {
		t.Run(entry, func(t *testing.T) {
			repoRoot := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(repoRoot, ".gitignore"), []byte("bin/\n"+entry+"\n"), 0o644))
			uc := NewInitBoard(testutil.NewMockStore(), testutil.NewMockConfigManager(), nil)

			out, err := uc.Execute(context.Background(), InitBoardInput{BoardDir: domain.BoardDir(repoRoot), RepoRoot: repoRoot})

			require.NoError(t, err)
			assert.False(t, out.GitignoreNeedsAdd)
		})
	}
}

func TestInitBoard_Execute_Errors(t *testing.T) {
	t.Run("not a repository", func(t *testing.T) {
		uc := NewInitBoard(testutil.NewMockStore(), testutil.NewMockConfigManager(), nil)
		_, err := uc.Execute(context.Background(), InitBoardInput{BoardDir: filepath.Join(t.TempDir(), ".projectboard")})
		assert.ErrorIs(t, err, domain.ErrNotGitRepository)
	})

	t.Run("already initialized", func(t *testing.T) {
		repoRoot := t.TempDir()
		boardDir := domain.BoardDir(repoRoot)
		require.NoError(t, os.MkdirAll(boardDir, 0o755))
		store := testutil.NewMockStore()
		uc := NewInitBoard(store, testutil.NewMockConfigManager(), nil)

		_, err := uc.Execute(context.Background(), InitBoardInput{BoardDir: boardDir, RepoRoot: repoRoot})

		assert.ErrorIs(t, err, domain.ErrAlreadyInitialized)
		assert.Nil(t, store.Project)
	})

	t.Run("store failure", func(t *testing.T) {
		repoRoot := t.TempDir()
		store := testutil.NewMockStore()
		store.InitErr = domain.ErrPersistence
		uc := NewInitBoard(store, testutil.NewMockConfigManager(), nil)

		_, err := uc.Execute(context.Background(), InitBoardInput{BoardDir: domain.BoardDir(repoRoot), RepoRoot: repoRoot})

		assert.ErrorIs(t, err, domain.ErrPersistence)
		assert.NoDirExists(t, domain.BoardDir(repoRoot))
	})
}

func TestInitBoard_Execute_RetryAfterFailure(t *testing.T) {
	repoRoot := t.TempDir()
	in := InitBoardInput{BoardDir: domain.BoardDir(repoRoot), RepoRoot: repoRoot}
	store := testutil.NewMockStore()
	store.Columns = nil
	store.Initialized = false
	configManager := testutil.NewMockConfigManager()
	configManager.InitRepoErr = testutil.ErrMock
	uc := NewInitBoard(store, configManager, nil)

	_, err := uc.Execute(context.Background(), in)
	require.ErrorIs(t, err, testutil.ErrMock)
	assert.NoDirExists(t, in.BoardDir)

	configManager.InitRepoErr = nil
	out, err := uc.Execute(context.Background(), in)

	require.NoError(t, err)
	assert.DirExists(t, in.BoardDir)
	assert.Equal(t, filepath.Base(repoRoot), out.Project.Name)
}

func boardFixture(t *testing.T) *testutil.MockStore {
	t.Helper()
	store := testutil.NewMockStore()
	clock := &testutil.MockClock{NowTime: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	store.Clock = clock
	seedTask(t, store, domain.ColumnBacklog, domain.Task{Title: "Older backlog"})
	clock.NowTime = clock.NowTime.Add(time.Hour)
	seedTask(t, store, domain.ColumnBacklog, domain.Task{Title: "Newer backlog", Description: "has, comma"})
	seedTask(t, store, domain.ColumnDoing, domain.Task{Title: `Say "hi"`, BranchName: "feature/3-say-hi"})
	seedTask(t, store, domain.ColumnReview, domain.Task{
		Title: "Ship", BranchName: "feature/4-ship",
		PRURL: "https://github.com/acme/widgets/pull/4",
	})
	return store
}

func TestListTasks_Execute_GroupsByColumn(t *testing.T) {
	store := boardFixture(t)

	out, err := NewListTasks(store).Execute(context.Background(), ListTasksInput{})

	require.NoError(t, err)
	require.Len(t, out.Columns, 5)
	assert.Equal(t, 4, out.Total())
	assert.Equal(t, domain.ColumnBacklog, out.Columns[0].Column.Name)
	require.Len(t, out.Columns[0].Tasks, 2)
	assert.Equal(t, "Newer backlog", out.Columns[0].Tasks[0].Title, "most recent first")
	assert.Empty(t, out.Columns[1].Tasks)
	assert.Len(t, out.Columns[2].Tasks, 1)
}

func TestListTasks_Execute_ColumnFilter(t *testing.T) {
	store := boardFixture(t)

	out, err := NewListTasks(store).Execute(context.Background(), ListTasksInput{Column: "REVIEW"})
	require.NoError(t, err)
	require.Len(t, out.Columns, 1)
	assert.Equal(t, domain.ColumnReview, out.Columns[0].Column.Name)
	assert.Equal(t, 1, out.Total())

	_, err = NewListTasks(store).Execute(context.Background(), ListTasksInput{Column: "Icebox"})
	assert.ErrorIs(t, err, domain.ErrColumnNotFound)
}

func TestShowTask_Execute(t *testing.T) {
	store := boardFixture(t)
	task := seedTask(t, store, domain.ColumnDone, domain.Task{Title: "Finished"})
	require.NoError(t, store.AddComment(context.Background(), &domain.Comment{TaskID: task.ID, Author: "Ada", Text: "nice"}))

	out, err := NewShowTask(store).Execute(context.Background(), ShowTaskInput{TaskID: task.ID})

	require.NoError(t, err)
	assert.Equal(t, "Finished", out.Task.Title)
	assert.Equal(t, domain.ColumnDone, out.Column)
	require.Len(t, out.Comments, 1)
	assert.Equal(t, "nice", out.Comments[0].Text)

	_, err = NewShowTask(store).Execute(context.Background(), ShowTaskInput{TaskID: 12345})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestShowActivity_Execute(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMockStore()
	for i := 0; i < 25; i++ {
		require.NoError(t, store.AppendActivity(ctx, domain.EventTaskMoved, "m"+itoa(int64(i))))
	}
	uc := NewShowActivity(store)

	out, err := uc.Execute(ctx, ShowActivityInput{})
	require.NoError(t, err)
	assert.Len(t, out.Entries, DefaultActivityLimit)
	assert.Equal(t, "m24", out.Entries[0].Metadata, "newest first")

	out, err = uc.Execute(ctx, ShowActivityInput{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, out.Entries, 3)

	out, err = uc.Execute(ctx, ShowActivityInput{Limit: -1})
	require.NoError(t, err)
	assert.Len(t, out.Entries, 25)
}

func TestExportTasks_CSV(t *testing.T) {
	store := boardFixture(t)

	out, err := NewExportTasks(store).Execute(context.Background(), ExportTasksInput{Format: ExportCSV})

	require.NoError(t, err)
	assert.Equal(t, 4, out.Count)
	lines := strings.Split(strings.TrimSuffix(out.Content, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "ID,Title,Description,Column,Created,Updated,Branch,PR", lines[0])
	assert.Equal(t, `102,Newer backlog,"has, comma",Backlog,2026-01-02 04:04:05,2026-01-02 04:04:05,,`, lines[1])
	assert.Equal(t, `103,"Say ""hi""",,Doing,2026-01-02 04:04:05,2026-01-02 04:04:05,feature/3-say-hi,`, lines[3])
}

func TestEscapeCSV(t *testing.T) {
	tests := map[string]string{
		"plain":           "plain",
		"a,b":             `"a,b"`,
		`say "hi"`:        `"say ""hi"""`,
		"line1\nline2":    "\"line1\nline2\"",
		"line1\r\nline2":  "\"line1\nline2\"",
		"":                "",
		"semi;colon done": "semi;colon done",
	}
	for in, want := range tests {
		assert.Equal(t, want, escapeCSV(in), in)
	}
}

func TestRenderCSV_ParsesBack(t *testing.T) {
	cols := domain.DefaultColumns()
	for i := range cols {
		cols[i].ID = int64(i + 1)
	}
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tasks := []*domain.Task{
		{ID: 1, Title: "Write docs, then ship", Description: `Say "hi", then "bye"`, ColumnID: 1, Created: created, Updated: created},
		{ID: 2, Title: `"quoted"`, Description: "line1\nline2\n", ColumnID: 3, Created: created, Updated: created,
			BranchName: "feature/2-quoted", PRURL: "https://github.com/acme/widgets/compare/main...feature/2-quoted?a=1,2"},
		{ID: 3, Title: "plain", Description: "l1\r\nl2", ColumnID: 5, Created: created, Updated: created},
	}

	records, err := csv.NewReader(strings.NewReader(renderCSV(tasks, cols))).ReadAll()

	require.NoError(t, err)
	require.Len(t, records, len(tasks)+1)
	assert.Equal(t, []string{"ID", "Title", "Description", "Column", "Created", "Updated", "Branch", "PR"}, records[0])
	for i, task := range tasks {
		rec := records[i+1]
		require.Len(t, rec, 8)
		assert.Equal(t, strconv.FormatInt(task.ID, 10), rec[0])
		assert.Equal(t, task.Title, rec[1])
		assert.Equal(t, strings.ReplaceAll(task.Description, "\r\n", "\n"), rec[2])
		assert.Equal(t, domain.ColumnName(cols, task.ColumnID), rec[3])
		assert.Equal(t, task.BranchName, rec[6])
		assert.Equal(t, task.PRURL, rec[7])
	}
	assert.Equal(t, "l1\nl2", records[3][2])
}

func TestExportTasks_Markdown(t *testing.T) {
	store := boardFixture(t)

	out, err := NewExportTasks(store).Execute(context.Background(), ExportTasksInput{Format: "md"})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.Content, "# ProjectBoard Export\n\n## Backlog (2)\n\n- **#102**: Newer backlog\n  - has, comma\n\n"))
	assert.Contains(t, out.Content, "## To Do (0)\n\n## Doing (1)\n")
	assert.Contains(t, out.Content, "  - Branch: `feature/4-ship`\n  - PR: https://github.com/acme/widgets/pull/4\n")
	assert.Contains(t, out.Content, "## Done (0)\n")
}

func TestExportTasks_JSONAndYAML(t *testing.T) {
	store := boardFixture(t)
	uc := NewExportTasks(store)

	jsonOut, err := uc.Execute(context.Background(), ExportTasksInput{Format: ExportJSON})
	require.NoError(t, err)
	var fromJSON []map[string]any
	require.NoError(t, json.Unmarshal([]byte(jsonOut.Content), &fromJSON))
	require.Len(t, fromJSON, 4)
	assert.Equal(t, "Backlog", fromJSON[0]["column"])
	assert.Equal(t, "Review", fromJSON[3]["column"])
	assert.Equal(t, "https://github.com/acme/widgets/pull/4", fromJSON[3]["pr"])

	yamlOut, err := uc.Execute(context.Background(), ExportTasksInput{Format: ExportYAML})
	require.NoError(t, err)
	var fromYAML []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(yamlOut.Content), &fromYAML))
	require.Len(t, fromYAML, 4)
	assert.Equal(t, "Doing", fromYAML[2]["column"])
	assert.Equal(t, "feature/3-say-hi", fromYAML[2]["branch"])
}

func TestParseExportFormat(t *testing.T) {
	for in, want := range map[string]ExportFormat{"CSV": ExportCSV, "md": ExportMarkdown, "markdown": ExportMarkdown, "json": ExportJSON, "yml": ExportYAML} {
		got, err := ParseExportFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseExportFormat("xml")
	assert.ErrorIs(t, err, domain.ErrInvalidExportFormat)

	_, err = NewExportTasks(testutil.NewMockStore()).Execute(context.Background(), ExportTasksInput{Format: "pdf"})
	assert.ErrorIs(t, err, domain.ErrInvalidExportFormat)
}

func TestShowConfig_Execute(t *testing.T) {
	loader := testutil.NewMockConfigLoader()
	loader.Config.Git.Push = domain.PushGit
	manager := testutil.NewMockConfigManager()
	manager.RepoInfo.Exists = true

	out, err := NewShowConfig(loader, manager).Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.PushGit, out.Effective.Git.Push)
	assert.Contains(t, out.Rendered, "[git]")
	assert.Regexp(t, `push = ['"]git['"]`, out.Rendered)
	assert.NotContains(t, out.Rendered, "Warnings")
	assert.True(t, out.RepoConfig.Exists)

	loader.LoadErr = testutil.ErrMock
	_, err = NewShowConfig(loader, manager).Execute(context.Background())
	assert.ErrorIs(t, err, testutil.ErrMock)
}

func TestInitConfig_Execute(t *testing.T) {
	manager := testutil.NewMockConfigManager()
	uc := NewInitConfig(manager)

	out, err := uc.Execute(context.Background(), InitConfigInput{Global: true})
	require.NoError(t, err)
	assert.Equal(t, manager.GlobalInfo.Path, out.Path)
	assert.True(t, manager.InitGlobalCalled)

	_, err = uc.Execute(context.Background(), InitConfigInput{Global: true})
	assert.ErrorIs(t, err, domain.ErrConfigExists)

	out, err = uc.Execute(context.Background(), InitConfigInput{})
	require.NoError(t, err)
	assert.Equal(t, manager.RepoInfo.Path, out.Path)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
