package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/runoshun/git-board/internal/domain"
	"github.com/runoshun/git-board/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errGitFailed = errors.New("exit status 128")

func seedTask(t *testing.T, store *testutil.MockStore, column string, task domain.Task) *domain.Task {
	t.Helper()
	task.ColumnID = store.ColumnID(column)
	require.NotZero(t, task.ColumnID, "unknown column %q", column)
	require.NoError(t, store.CreateTask(context.Background(), &task))
	return &task
}

func TestStartTask_Execute_Success(t *testing.T) {
	// Setup
	store := testutil.NewMockStore()
	git := testutil.NewMockGit()
	logger := &testutil.MockLogger{}
	task := seedTask(t, store, domain.ColumnBacklog, domain.Task{Title: "Add Login Page!"})
	later := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	store.Clock = &testutil.MockClock{NowTime: later}
	uc := NewStartTask(store, git, logger)

	// Execute
	out, err := uc.Execute(context.Background(), StartTaskInput{TaskID: task.ID})

	// Assert
	require.NoError(t, err)
	branch := domain.BranchName(task.ID, "Add Login Page!")
	assert.Equal(t, branch, out.Branch)
	assert.True(t, out.BranchCreated)
	assert.Empty(t, out.Warnings)
	assert.Equal(t, []string{branch}, git.CreatedBranches)
	assert.Equal(t, branch, git.CurrentBranchName)

	saved := store.Tasks[task.ID]
	assert.Equal(t, branch, saved.BranchName)
	assert.Equal(t, store.ColumnID(domain.ColumnDoing), saved.ColumnID)
	assert.Equal(t, later, saved.Updated)
	assert.Equal(t, 1, store.SaveCalls, "branch and column are written together")

	assert.Equal(t, []domain.EventType{domain.EventTaskStarted}, store.Events())
	assert.True(t, logger.Contains("INFO", "created branch "+branch))
}

func TestStartTask_Execute_ReusesRecordedBranch(t *testing.T) {
	store := testutil.NewMockStore()
	git := testutil.NewMockGit()
	git.Branches["feature/7-old-title"] = true
	task := seedTask(t, store, domain.ColumnTodo, domain.Task{Title: "Renamed title", BranchName: "feature/7-old-title"})
	uc := NewStartTask(store, git, nil)

	out, err := uc.Execute(context.Background(), StartTaskInput{TaskID: task.ID})

	require.NoError(t, err)
	assert.False(t, out.BranchCreated)
	assert.Equal(t, "feature/7-old-title", out.Branch)
	assert.Empty(t, git.CreatedBranches)
	assert.Equal(t, "feature/7-old-title", store.Tasks[task.ID].BranchName)
	assert.Equal(t, store.ColumnID(domain.ColumnDoing), store.Tasks[task.ID].ColumnID)
}

func TestStartTask_Execute_GitFailureLeavesTaskUntouched(t *testing.T) {
	tests := []struct {
		setup func(g *testutil.MockGit)
		name  string
	}{
		{name: "create fails", setup: func(g *testutil.MockGit) { g.CreateBranchErr = errGitFailed }},
		{name: "checkout fails", setup: func(g *testutil.MockGit) { g.CheckoutErr = errGitFailed }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewMockStore()
			git := testutil.NewMockGit()
			tt.setup(git)
			task := seedTask(t, store, domain.ColumnBacklog, domain.Task{Title: "x"})
			uc := NewStartTask(store, git, nil)

			_, err := uc.Execute(context.Background(), StartTaskInput{TaskID: task.ID})

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrExternalTool)
			assert.ErrorIs(t, err, errGitFailed)
			assert.Zero(t, store.SaveCalls)
			assert.Empty(t, store.Tasks[task.ID].BranchName)
			assert.Equal(t, store.ColumnID(domain.ColumnBacklog), store.Tasks[task.ID].ColumnID)
			assert.Empty(t, store.Activities)
		})
	}
}

func TestStartTask_Execute_RetryAfterCheckoutFailure(t *testing.T) {
	store := testutil.NewMockStore()
	git := testutil.NewMockGit()
	task := seedTask(t, store, domain.ColumnBacklog, domain.Task{Title: "Fix crash"})
	branch := domain.BranchName(task.ID, "Fix crash")
	uc := NewStartTask(store, git, nil)

	git.CheckoutErr = errGitFailed
	_, err := uc.Execute(context.Background(), StartTaskInput{TaskID: task.ID})
	require.ErrorIs(t, err, domain.ErrExternalTool)
	require.True(t, git.Branches[branch], "branch was created before checkout failed")

	git.CheckoutErr = nil
	out, err := uc.Execute(context.Background(), StartTaskInput{TaskID: task.ID})

	require.NoError(t, err)
	assert.False(t, out.BranchCreated)
	assert.Equal(t, branch, out.Branch)
	assert.Equal(t, []string{branch}, git.CreatedBranches)
	assert.Equal(t, branch, git.CurrentBranchName)
	assert.Equal(t, branch, store.Tasks[task.ID].BranchName)
	assert.Equal(t, store.ColumnID(domain.ColumnDoing), store.Tasks[task.ID].ColumnID)
}

func TestStartTask_Execute_TaskNotFound(t *testing.T) {
	uc := NewStartTask(testutil.NewMockStore(), testutil.NewMockGit(), nil)

	_, err := uc.Execute(context.Background(), StartTaskInput{TaskID: 404})

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStartTask_Execute_ActivityFailureIsWarning(t *testing.T) {
	store := testutil.NewMockStore()
	task := seedTask(t, store, domain.ColumnBacklog, domain.Task{Title: "x"})
	store.ActivityErr = testutil.ErrMock
	uc := NewStartTask(store, testutil.NewMockGit(), nil)

	out, err := uc.Execute(context.Background(), StartTaskInput{TaskID: task.ID})

	require.NoError(t, err)
	require.Len(t, out.Warnings, 1)
	assert.Equal(t, store.ColumnID(domain.ColumnDoing), store.Tasks[task.ID].ColumnID, "not rolled back")
}

func TestCompleteTask_Execute_CommitsPushesAndMoves(t *testing.T) {
	store := testutil.NewMockStore()
	git := testutil.NewMockGit()
	git.HasStaged = true
	pusher := &testutil.MockPusher{}
	task := seedTask(t, store, domain.ColumnDoing, domain.Task{Title: "Fix bug", BranchName: "feature/1-fix-bug"})
	uc := NewCompleteTask(store, git, pusher, nil)

	out, err := uc.Execute(context.Background(), CompleteTaskInput{TaskID: task.ID})

	require.NoError(t, err)
	wantMsg := domain.DefaultCommitMessage(task.ID, "Fix bug")
	assert.Equal(t, []string{wantMsg}, git.Commits)
	assert.Equal(t, wantMsg, out.CommitMessage)
	assert.Equal(t, git.CommitHash, out.CommitHash)
	assert.Equal(t, []string{"feature/1-fix-bug"}, pusher.Pushed)
	assert.Equal(t, "feature/1-fix-bug", out.PushedBranch)
	assert.Equal(t, store.ColumnID(domain.ColumnDone), store.Tasks[task.ID].ColumnID)
	assert.Equal(t, []domain.EventType{domain.EventTaskCompleted}, store.Events())
}

func TestCompleteTask_Execute_CustomMessage(t *testing.T) {
	store := testutil.NewMockStore()
	git := testutil.NewMockGit()
	git.HasStaged = true
	task := seedTask(t, store, domain.ColumnDoing, domain.Task{Title: "Fix bug"})
	uc := NewCompleteTask(store, git, &testutil.MockPusher{}, nil)

	_, err := uc.Execute(context.Background(), CompleteTaskInput{TaskID: task.ID, Message: "  wip: polish  "})

	require.NoError(t, err)
	assert.Equal(t, []string{"wip: polish"}, git.Commits)
}

func TestCompleteTask_Execute_NothingStagedNoBranch(t *testing.T) {
	store := testutil.NewMockStore()
	git := testutil.NewMockGit()
	pusher := &testutil.MockPusher{}
	task := seedTask(t, store, domain.ColumnTodo, domain.Task{Title: "Docs"})
	uc := NewCompleteTask(store, git, pusher, nil)

	out, err := uc.Execute(context.Background(), CompleteTaskInput{TaskID: task.ID})

	require.NoError(t, err)
	assert.Empty(t, git.Commits)
	assert.Empty(t, out.CommitHash)
	assert.Empty(t, pusher.Pushed)
	assert.Equal(t, store.ColumnID(domain.ColumnDone), store.Tasks[task.ID].ColumnID)
}

func TestCompleteTask_Execute_FailuresAbortBeforeMove(t *testing.T) {
	tests := []struct {
		setup func(g *testutil.MockGit, p *testutil.MockPusher)
		name  string
	}{
		{name: "staged check", setup: func(g *testutil.MockGit, _ *testutil.MockPusher) { g.StagedErr = errGitFailed }},
		{name: "commit", setup: func(g *testutil.MockGit, _ *testutil.MockPusher) { g.HasStaged = true; g.CommitErr = errGitFailed }},
		{name: "push", setup: func(_ *testutil.MockGit, p *testutil.MockPusher) { p.PushErr = errGitFailed }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewMockStore()
			git := testutil.NewMockGit()
			pusher := &testutil.MockPusher{}
			tt.setup(git, pusher)
			task := seedTask(t, store, domain.ColumnDoing, domain.Task{Title: "x", BranchName: "feature/1-x"})
			uc := NewCompleteTask(store, git, pusher, nil)

			_, err := uc.Execute(context.Background(), CompleteTaskInput{TaskID: task.ID})

			assert.ErrorIs(t, err, domain.ErrExternalTool)
			assert.Equal(t, store.ColumnID(domain.ColumnDoing), store.Tasks[task.ID].ColumnID)
			assert.Zero(t, store.SaveCalls)
			assert.Empty(t, store.Activities)
		})
	}
}

func TestSubmitTask_Execute_OpensReviewRequest(t *testing.T) {
	store := testutil.NewMockStore()
	git := testutil.NewMockGit()
	pusher := &testutil.MockPusher{}
	review := &testutil.MockReviewRequester{Link: domain.ReviewLink{URL: "https://github.com/acme/widgets/pull/12"}}
	task := seedTask(t, store, domain.ColumnDoing, domain.Task{Title: "Add API", Description: "REST endpoints", BranchName: "feature/3-add-api"})
	uc := NewSubmitTask(store, git, pusher, review, nil, "origin", "develop")

	out, err := uc.Execute(context.Background(), SubmitTaskInput{TaskID: task.ID})

	require.NoError(t, err)
	assert.NoError(t, out.ReviewErr)
	assert.Equal(t, []string{"feature/3-add-api"}, pusher.Pushed)
	require.Len(t, review.Requests, 1)
	assert.Equal(t, domain.ReviewRequest{
		Remote: "git@github.com:acme/widgets.git",
		Title:  domain.ReviewTitle(task.ID, "Add API"),
		Body:   "REST endpoints",
		Head:   "feature/3-add-api",
		Base:   "develop",
	}, review.Requests[0])

	saved := store.Tasks[task.ID]
	assert.Equal(t, "https://github.com/acme/widgets/pull/12", saved.PRURL)
	assert.False(t, saved.PRFallback)
	assert.Equal(t, store.ColumnID(domain.ColumnReview), saved.ColumnID)
	assert.Equal(t, 1, store.SaveCalls)
	require.Len(t, store.Activities, 1)
	assert.Equal(t, domain.EventTaskSubmitted, store.Activities[0].Event)
	assert.Contains(t, store.Activities[0].Metadata, "PR created")
}

func TestSubmitTask_Execute_FallsBackOnReviewFailure(t *testing.T) {
	tests := []struct {
		review  *testutil.MockReviewRequester
		name    string
		remote  string
		wantURL string
	}{
		{
			name:    "service error",
			review:  &testutil.MockReviewRequester{CreateErr: errors.New("502 bad gateway")},
			remote:  "https://github.com/acme/widgets.git",
			wantURL: "https://github.com/acme/widgets/compare/main...feature/1-x",
		},
		{
			name:    "unsupported host",
			review:  &testutil.MockReviewRequester{CreateErr: domain.ErrUnsupportedRemote},
			remote:  "git@gitlab.com:acme/widgets.git",
			wantURL: "https://gitlab.com/acme/widgets/compare/main...feature/1-x",
		},
		{
			name:    "empty link",
			review:  &testutil.MockReviewRequester{},
			remote:  "git@github.com:acme/widgets.git",
			wantURL: "https://github.com/acme/widgets/compare/main...feature/1-x",
		},
		{
			name:    "no remote",
			review:  &testutil.MockReviewRequester{},
			remote:  "",
			wantURL: "Manual PR needed for branch: feature/1-x",
		},
		{
			name:    "no client",
			review:  nil,
			remote:  "git@github.com:acme/widgets.git",
			wantURL: "https://github.com/acme/widgets/compare/main...feature/1-x",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewMockStore()
			git := testutil.NewMockGit()
			git.Remotes = map[string]string{}
			if tt.remote != "" {
				git.Remotes["origin"] = tt.remote
			}
			logger := &testutil.MockLogger{}
			task := seedTask(t, store, domain.ColumnDoing, domain.Task{Title: "x", BranchName: "feature/1-x"})
			var review domain.ReviewRequester
			if tt.review != nil {
				review = tt.review
			}
			uc := NewSubmitTask(store, git, &testutil.MockPusher{}, review, logger, "origin", "main")

			out, err := uc.Execute(context.Background(), SubmitTaskInput{TaskID: task.ID})

			require.NoError(t, err)
			assert.ErrorIs(t, out.ReviewErr, domain.ErrReviewDegraded)
			assert.True(t, out.Link.Fallback)
			assert.Equal(t, tt.wantURL, out.Link.URL)
			saved := store.Tasks[task.ID]
			assert.Equal(t, tt.wantURL, saved.PRURL)
			assert.True(t, saved.PRFallback)
			assert.Equal(t, store.ColumnID(domain.ColumnReview), saved.ColumnID)
			assert.Contains(t, store.Activities[0].Metadata, "manual PR needed")
			assert.True(t, logger.Contains("WARN", "review request not opened"))
		})
	}
}

func TestSubmitTask_Execute_ResubmitOverwritesLink(t *testing.T) {
	store := testutil.NewMockStore()
	task := seedTask(t, store, domain.ColumnReview, domain.Task{
		Title: "x", BranchName: "feature/1-x",
		PRURL: "https://github.com/acme/widgets/compare/main...feature/1-x", PRFallback: true,
	})
	review := &testutil.MockReviewRequester{Link: domain.ReviewLink{URL: "https://github.com/acme/widgets/pull/9"}}
	uc := NewSubmitTask(store, testutil.NewMockGit(), &testutil.MockPusher{}, review, nil, "origin", "main")

	_, err := uc.Execute(context.Background(), SubmitTaskInput{TaskID: task.ID})

	require.NoError(t, err)
	assert.Equal(t, "https://github.com/acme/widgets/pull/9", store.Tasks[task.ID].PRURL)
	assert.False(t, store.Tasks[task.ID].PRFallback)
}

func TestSubmitTask_Execute_NoBranch(t *testing.T) {
	store := testutil.NewMockStore()
	pusher := &testutil.MockPusher{}
	task := seedTask(t, store, domain.ColumnTodo, domain.Task{Title: "x"})
	uc := NewSubmitTask(store, testutil.NewMockGit(), pusher, &testutil.MockReviewRequester{}, nil, "origin", "main")

	_, err := uc.Execute(context.Background(), SubmitTaskInput{TaskID: task.ID})

	assert.ErrorIs(t, err, domain.ErrNoBranch)
	assert.Empty(t, pusher.Pushed)
	assert.Zero(t, store.SaveCalls)
}

func TestSubmitTask_Execute_PushFailureAborts(t *testing.T) {
	store := testutil.NewMockStore()
	review := &testutil.MockReviewRequester{}
	task := seedTask(t, store, domain.ColumnDoing, domain.Task{Title: "x", BranchName: "feature/1-x"})
	uc := NewSubmitTask(store, testutil.NewMockGit(), &testutil.MockPusher{PushErr: errGitFailed}, review, nil, "origin", "main")

	_, err := uc.Execute(context.Background(), SubmitTaskInput{TaskID: task.ID})

	assert.ErrorIs(t, err, domain.ErrExternalTool)
	assert.Empty(t, review.Requests)
	assert.Empty(t, store.Tasks[task.ID].PRURL)
	assert.Equal(t, store.ColumnID(domain.ColumnDoing), store.Tasks[task.ID].ColumnID)
}

func TestMoveTask_Execute(t *testing.T) {
	store := testutil.NewMockStore()
	task := seedTask(t, store, domain.ColumnBacklog, domain.Task{Title: "x"})
	uc := NewMoveTask(store, nil)

	out, err := uc.Execute(context.Background(), MoveTaskInput{TaskID: task.ID, Column: "to do"})

	require.NoError(t, err)
	assert.Equal(t, domain.ColumnBacklog, out.From)
	assert.Equal(t, domain.ColumnTodo, out.To)
	assert.Equal(t, store.ColumnID(domain.ColumnTodo), store.Tasks[task.ID].ColumnID)
	require.Len(t, store.Activities, 1)
	assert.Equal(t, fmt.Sprintf("Task #%d: Backlog → To Do", task.ID), store.Activities[0].Metadata)
}

func TestMoveTask_Execute_Errors(t *testing.T) {
	store := testutil.NewMockStore()
	task := seedTask(t, store, domain.ColumnBacklog, domain.Task{Title: "x"})
	uc := NewMoveTask(store, nil)

	_, err := uc.Execute(context.Background(), MoveTaskInput{TaskID: task.ID, Column: "Archive"})
	assert.ErrorIs(t, err, domain.ErrColumnNotFound)

	_, err = uc.Execute(context.Background(), MoveTaskInput{TaskID: 999, Column: "Done"})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	store.SaveErr = fmt.Errorf("update task: %w", domain.ErrPersistence)
	_, err = uc.Execute(context.Background(), MoveTaskInput{TaskID: task.ID, Column: "Done"})
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Empty(t, store.Activities)
}

func TestReviewTask_Execute_FallbackLink(t *testing.T) {
	store := testutil.NewMockStore()
	checker := &testutil.MockReviewRequester{State: domain.ReviewMerged}
	task := seedTask(t, store, domain.ColumnReview, domain.Task{Title: "x", PRURL: "Manual PR needed for branch: feature/1-x", PRFallback: true})
	uc := NewReviewTask(store, testutil.NewMockGit(), checker, nil, "origin")

	out, err := uc.Execute(context.Background(), ReviewTaskInput{TaskID: task.ID})

	require.NoError(t, err)
	assert.True(t, out.Fallback)
	assert.Empty(t, out.State)
	assert.Empty(t, checker.Checked, "fallback links are not queried")
}

func TestReviewTask_Execute_MergedMovesToDone(t *testing.T) {
	store := testutil.NewMockStore()
	checker := &testutil.MockReviewRequester{State: domain.ReviewMerged}
	task := seedTask(t, store, domain.ColumnReview, domain.Task{Title: "x", PRURL: "https://github.com/acme/widgets/pull/4"})
	uc := NewReviewTask(store, testutil.NewMockGit(), checker, nil, "origin")

	out, err := uc.Execute(context.Background(), ReviewTaskInput{TaskID: task.ID})

	require.NoError(t, err)
	assert.Equal(t, domain.ReviewMerged, out.State)
	assert.True(t, out.MovedToDone)
	assert.Equal(t, store.ColumnID(domain.ColumnDone), store.Tasks[task.ID].ColumnID)
	assert.Equal(t, []domain.EventType{domain.EventTaskCompleted}, store.Events())

	// Already done: nothing more to record.
	out, err = uc.Execute(context.Background(), ReviewTaskInput{TaskID: task.ID})
	require.NoError(t, err)
	assert.False(t, out.MovedToDone)
	assert.Len(t, store.Activities, 1)
}

func TestReviewTask_Execute_OpenAndUnavailable(t *testing.T) {
	store := testutil.NewMockStore()
	task := seedTask(t, store, domain.ColumnReview, domain.Task{Title: "x", PRURL: "https://github.com/acme/widgets/pull/4"})

	open := NewReviewTask(store, testutil.NewMockGit(), &testutil.MockReviewRequester{State: domain.ReviewOpen}, nil, "origin")
	out, err := open.Execute(context.Background(), ReviewTaskInput{TaskID: task.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewOpen, out.State)
	assert.False(t, out.MovedToDone)

	broken := NewReviewTask(store, testutil.NewMockGit(), &testutil.MockReviewRequester{StatusErr: domain.ErrReviewDegraded}, nil, "origin")
	out, err = broken.Execute(context.Background(), ReviewTaskInput{TaskID: task.ID})
	require.NoError(t, err)
	assert.Empty(t, out.State)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "review status unavailable")

	noChecker := NewReviewTask(store, testutil.NewMockGit(), nil, nil, "origin")
	out, err = noChecker.Execute(context.Background(), ReviewTaskInput{TaskID: task.ID})
	require.NoError(t, err)
	assert.Empty(t, out.State)
	assert.Empty(t, out.Warnings)
}

func TestReviewTask_Execute_NoReviewRequest(t *testing.T) {
	store := testutil.NewMockStore()
	task := seedTask(t, store, domain.ColumnDoing, domain.Task{Title: "x"})
	uc := NewReviewTask(store, nil, nil, nil, "origin")

	_, err := uc.Execute(context.Background(), ReviewTaskInput{TaskID: task.ID})

	assert.ErrorIs(t, err, domain.ErrNoReviewRequest)
}
