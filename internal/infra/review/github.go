// Package review provides review system clients: a GitHub pull request
// client and a fallback that only builds compare links.
package review

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
	"github.com/runoshun/git-board/internal/domain"
)

const requestTimeout = 10 * time.Second

var (
	_ domain.ReviewRequester     = (*GitHubClient)(nil)
	_ domain.ReviewStatusChecker = (*GitHubClient)(nil)
)

// GitHubOptions configures a GitHubClient.
type GitHubOptions struct {
	HTTPClient *http.Client // nil = http.DefaultClient
	APIURL     string       // Enterprise API base URL; empty = api.github.com
	UploadURL  string       // Enterprise upload URL; defaults to APIURL
}

// GitHubClient opens pull requests through the GitHub REST API.
type GitHubClient struct {
	client *github.Client
	host   string // Remote host this client serves
}

// NewGitHubClient creates a client authenticated with token.
func NewGitHubClient(token string, opts GitHubOptions) (*GitHubClient, error) {
	client := github.NewClient(opts.HTTPClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	host := "github.com"
	if opts.APIURL != "" {
		uploadURL := opts.UploadURL
		if uploadURL == "" {
			uploadURL = opts.APIURL
		}
		var err error
		client, err = client.WithEnterpriseURLs(opts.APIURL, uploadURL)
		if err != nil {
			return nil, fmt.Errorf("configure enterprise URLs: %w", err)
		}
		u, err := url.Parse(opts.APIURL)
		if err != nil {
			return nil, fmt.Errorf("parse api url: %w", err)
		}
		host = strings.ToLower(u.Hostname())
	}

	return &GitHubClient{client: client, host: host}, nil
}

// Host returns the remote host this client serves.
func (c *GitHubClient) Host() string {
	return c.host
}

// CreateReviewRequest opens a pull request from req.Head into req.Base.
// If a pull request for the branch is already open, its link is returned.
func (c *GitHubClient) CreateReviewRequest(ctx context.Context, req domain.ReviewRequest) (domain.ReviewLink, error) {
	remote, err := c.resolveRemote(req.Remote)
	if err != nil {
		return domain.ReviewLink{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	pr, resp, err := c.client.PullRequests.Create(ctx, remote.Owner, remote.Repo, &github.NewPullRequest{
		Title: github.Ptr(req.Title),
		Head:  github.Ptr(req.Head),
		Base:  github.Ptr(req.Base),
		Body:  github.Ptr(req.Body),
	})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnprocessableEntity {
			if existing, findErr := c.findOpenPullRequest(ctx, remote, req.Head); findErr == nil && existing != "" {
				return domain.ReviewLink{URL: existing}, nil
			}
		}
		return domain.ReviewLink{}, classify("create pull request", err)
	}
	return domain.ReviewLink{URL: pr.GetHTMLURL()}, nil
}

// ReviewStatus returns the state of the pull request at requestURL.
func (c *GitHubClient) ReviewStatus(ctx context.Context, remoteURL, requestURL string) (domain.ReviewState, error) {
	remote, err := c.resolveRemote(remoteURL)
	if err != nil {
		return "", err
	}
	number, err := PullRequestNumber(requestURL)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	pr, _, err := c.client.PullRequests.Get(ctx, remote.Owner, remote.Repo, number)
	if err != nil {
		return "", classify("get pull request", err)
	}
	switch {
	case pr.GetMerged():
		return domain.ReviewMerged, nil
	case pr.GetState() == "closed":
		return domain.ReviewClosed, nil
	default:
		return domain.ReviewOpen, nil
	}
}

func (c *GitHubClient) resolveRemote(remoteURL string) (domain.Remote, error) {
	remote, err := domain.ParseRemote(remoteURL)
	if err != nil {
		return domain.Remote{}, fmt.Errorf("%w: %w", domain.ErrUnsupportedRemote, err)
	}
	if remote.Host != c.host {
		return domain.Remote{}, fmt.Errorf("%s: %w", remote.Host, domain.ErrUnsupportedRemote)
	}
	return remote, nil
}

func (c *GitHubClient) findOpenPullRequest(ctx context.Context, remote domain.Remote, head string) (string, error) {
	prs, _, err := c.client.PullRequests.List(ctx, remote.Owner, remote.Repo, &github.PullRequestListOptions{
		State: "open",
		Head:  remote.Owner + ":" + head,
	})
	if err != nil {
		return "", err
	}
	if len(prs) == 0 {
		return "", nil
	}
	return prs[0].GetHTMLURL(), nil
}

// classify marks an API failure as a degraded review service.
func classify(op string, err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%s: rate limited: %w: %w", op, domain.ErrReviewDegraded, err)
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return fmt.Errorf("%s: abuse rate limited: %w: %w", op, domain.ErrReviewDegraded, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrReviewDegraded, err)
}

// PullRequestNumber extracts the number from a pull request web URL such as
// https://github.com/owner/repo/pull/42.
func PullRequestNumber(requestURL string) (int, error) {
	u, err := url.Parse(requestURL)
	if err != nil {
		return 0, fmt.Errorf("parse pull request url: %w", err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[len(parts)-2] != "pull" {
		return 0, fmt.Errorf("not a pull request url: %s", requestURL)
	}
	n, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("not a pull request url: %s", requestURL)
	}
	return n, nil
}
