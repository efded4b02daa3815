package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// Remote identifies a repository on a hosted review system.
type Remote struct {
	Host  string // e.g. "github.com"
	Owner string
	Repo  string
}

// String returns host/owner/repo.
func (r Remote) String() string {
	return r.Host + "/" + r.Owner + "/" + r.Repo
}

// ParseRemote parses a git remote URL into host, owner and repository.
// Supported forms:
//
//	git@host:owner/repo(.git)
//	ssh://git@host(:port)/owner/repo(.git)
//	https://(user:token@)host/owner/repo(.git)
//	http://host/owner/repo(.git)
func ParseRemote(remoteURL string) (Remote, error) {
	raw := strings.TrimSpace(remoteURL)
	if raw == "" {
		return Remote{}, fmt.Errorf("empty remote URL")
	}

	var host, path string
	switch {
	case strings.Contains(raw, "://"):
		u, err := url.Parse(raw)
		if err != nil {
			return Remote{}, fmt.Errorf("parse remote %q: %w", raw, err)
		}
		switch u.Scheme {
		case "https", "http", "ssh", "git":
		default:
			return Remote{}, fmt.Errorf("unsupported remote scheme %q", u.Scheme)
		}
		host = u.Hostname()
		path = u.Path
	default:
		// scp-like syntax: [user@]host:owner/repo
		at := strings.LastIndex(raw, "@")
		rest := raw[at+1:]
		colon := strings.Index(rest, ":")
		if colon < 0 {
			return Remote{}, fmt.Errorf("unrecognized remote URL %q", raw)
		}
		host = rest[:colon]
		path = rest[colon+1:]
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	parts := strings.Split(path, "/")
	if host == "" || len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Remote{}, fmt.Errorf("unrecognized remote URL %q", raw)
	}
	return Remote{Host: strings.ToLower(host), Owner: parts[0], Repo: parts[1]}, nil
}

// ReviewRequest describes a pull request to open.
type ReviewRequest struct {
	Remote string // Remote URL of the repository
	Title  string
	Body   string
	Head   string // Branch with the changes
	Base   string // Branch to merge into
}

// ReviewLink is the outcome of opening a review request.
type ReviewLink struct {
	URL      string
	Fallback bool // URL does not point at an opened request; a manual follow-up is needed
}

// FallbackReviewURL builds the link recorded when no review request could be opened.
// With a parseable remote it is the compare page of the hosting service, otherwise
// a plain instruction naming the branch.
func FallbackReviewURL(remoteURL, base, head string) string {
	remote, err := ParseRemote(remoteURL)
	if err != nil {
		return ManualReviewText(head)
	}
	return fmt.Sprintf("https://%s/%s/%s/compare/%s...%s", remote.Host, remote.Owner, remote.Repo, base, head)
}

// ManualReviewText is the fallback link used when the repository has no usable remote.
func ManualReviewText(head string) string {
	return "Manual PR needed for branch: " + head
}

// ReviewState is the state of an opened review request.
type ReviewState string

// Review states.
const (
	ReviewOpen   ReviewState = "open"
	ReviewClosed ReviewState = "closed"
	ReviewMerged ReviewState = "merged"
)
