package review

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/runoshun/git-board/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRemote = "http://127.0.0.1/acme/widgets.git"

func newTestClient(t *testing.T, handler http.HandlerFunc) *GitHubClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewGitHubClient("test-token", GitHubOptions{
		HTTPClient: server.Client(),
		APIURL:     server.URL,
	})
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", client.Host())
	return client
}

func testRequest() domain.ReviewRequest {
	return domain.ReviewRequest{
		Remote: testRemote,
		Title:  "Task #3: Add login",
		Body:   "OAuth flow",
		Head:   "feature/3-add-login",
		Base:   "main",
	}
}

func TestGitHubClient_CreateReviewRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v3/repos/acme/widgets/pulls", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Task #3: Add login", body["title"])
		assert.Equal(t, "feature/3-add-login", body["head"])
		assert.Equal(t, "main", body["base"])
		assert.Equal(t, "OAuth flow", body["body"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"number": 17, "html_url": "https://github.com/acme/widgets/pull/17"}`))
	})

	link, err := client.CreateReviewRequest(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/acme/widgets/pull/17", link.URL)
	assert.False(t, link.Fallback)
}

func TestGitHubClient_CreateReviewRequest_ExistingPullRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message": "Validation Failed", "errors": [{"message": "A pull request already exists"}]}`))
		case http.MethodGet:
			assert.Equal(t, "acme:feature/3-add-login", r.URL.Query().Get("head"))
			_, _ = w.Write([]byte(`[{"number": 9, "html_url": "https://github.com/acme/widgets/pull/9"}]`))
		}
	})

	link, err := client.CreateReviewRequest(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/acme/widgets/pull/9", link.URL)
}

func TestGitHubClient_CreateReviewRequest_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.CreateReviewRequest(context.Background(), testRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrReviewDegraded)
}

func TestGitHubClient_CreateReviewRequest_UnsupportedRemote(t *testing.T) {
	client := newTestClient(t, func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("request must not reach the server")
	})

	for _, remote := range []string{"git@gitlab.com:acme/widgets.git", "", "/srv/git/widgets.git"} {
		req := testRequest()
		req.Remote = remote
		_, err := client.CreateReviewRequest(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrUnsupportedRemote, remote)
		assert.ErrorIs(t, err, domain.ErrReviewDegraded, remote)
	}
}

func TestGitHubClient_ServerUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client, err := NewGitHubClient("", GitHubOptions{HTTPClient: server.Client(), APIURL: server.URL})
	require.NoError(t, err)

	_, err = client.CreateReviewRequest(context.Background(), testRequest())
	assert.ErrorIs(t, err, domain.ErrReviewDegraded)
}

func TestGitHubClient_ReviewStatus(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     domain.ReviewState
	}{
		{"open", `{"number": 17, "state": "open", "merged": false}`, domain.ReviewOpen},
		{"closed", `{"number": 17, "state": "closed", "merged": false}`, domain.ReviewClosed},
		{"merged", `{"number": 17, "state": "closed", "merged": true}`, domain.ReviewMerged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v3/repos/acme/widgets/pulls/17", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.response))
			})

			state, err := client.ReviewStatus(context.Background(), testRemote, "https://github.com/acme/widgets/pull/17")
			require.NoError(t, err)
			assert.Equal(t, tt.want, state)
		})
	}
}

func TestGitHubClient_DefaultHost(t *testing.T) {
	client, err := NewGitHubClient("token", GitHubOptions{})
	require.NoError(t, err)
	assert.Equal(t, "github.com", client.Host())
}

func TestPullRequestNumber(t *testing.T) {
	n, err := PullRequestNumber("https://github.com/acme/widgets/pull/42")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	for _, bad := range []string{
		"https://github.com/acme/widgets/compare/main...feature/1-x",
		"Manual PR needed for branch: feature/1-x",
		"https://github.com/acme/widgets/pull/abc",
	} {
		_, err := PullRequestNumber(bad)
		assert.Error(t, err, bad)
	}
}

func TestFallbackClient(t *testing.T) {
	link, err := FallbackClient{}.CreateReviewRequest(context.Background(), domain.ReviewRequest{
		Remote: "git@github.com:acme/widgets.git",
		Head:   "feature/3-add-login",
		Base:   "main",
	})
	assert.ErrorIs(t, err, domain.ErrReviewDegraded)
	assert.True(t, link.Fallback)
	assert.Equal(t, "https://github.com/acme/widgets/compare/main...feature/3-add-login", link.URL)
}
