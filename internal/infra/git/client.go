// Package git provides the version control adapter on top of go-git.
package git

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/runoshun/git-board/internal/domain"
)

// Identity used for commits when neither the repository nor the global git
// config names a user.
const (
	FallbackUserName  = "ProjectBoard User"
	FallbackUserEmail = "user@projectboard.dev"
)

// Ensure Client implements domain.Git.
var _ domain.Git = (*Client)(nil)

// Client provides git operations on one working tree.
type Client struct {
	repo     *gogit.Repository
	repoRoot string // Working tree root
}

// NewClient opens the repository containing dir.
// Returns domain.ErrNotGitRepository if dir is not inside a git working tree.
func NewClient(dir string) (*Client, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		return nil, domain.ErrNotGitRepository
	}
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no working tree to put a board in.
		return nil, domain.ErrNotGitRepository
	}
	return &Client{repo: repo, repoRoot: wt.Filesystem.Root()}, nil
}

// RepoRoot returns the working tree root directory.
func (c *Client) RepoRoot() string {
	return c.repoRoot
}

// CreateBranch creates a branch pointing at HEAD.
func (c *Client) CreateBranch(name string) error {
	refName := plumbing.NewBranchReferenceName(name)
	if _, err := c.repo.Reference(refName, false); err == nil {
		return fmt.Errorf("create branch %s: %w", name, domain.ErrBranchExists)
	}

	head, err := c.repo.Head()
	if err != nil {
		return fmt.Errorf("create branch %s: resolve HEAD: %w", name, err)
	}
	if err := c.repo.Storer.SetReference(plumbing.NewHashReference(refName, head.Hash())); err != nil {
		return fmt.Errorf("create branch %s: %w", name, err)
	}
	return nil
}

// CheckoutBranch switches HEAD to an existing branch with the git command line.
// Untracked files (the board itself among them) survive, and local changes carry
// over unless the target branch would overwrite them, in which case git refuses
// and HEAD stays put.
func (c *Client) CheckoutBranch(name string) error {
	refName := plumbing.NewBranchReferenceName(name)
	if _, err := c.repo.Reference(refName, false); err != nil {
		return fmt.Errorf("checkout %s: %w", name, err)
	}

	cmd := exec.Command("git", "-C", c.repoRoot, "checkout", "--quiet", name) //nolint:gosec // name is an existing local branch
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("checkout %s: %s: %w", name, strings.TrimSpace(string(output)), err)
	}
	return nil
}

// HasStagedChanges reports whether the index differs from HEAD.
func (c *Client) HasStagedChanges() (bool, error) {
	wt, err := c.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("read status: %w", err)
	}
	for _, s := range status {
		if s.Staging != gogit.Unmodified && s.Staging != gogit.Untracked {
			return true, nil
		}
	}
	return false, nil
}

// Commit records the staged changes and returns the new commit hash.
func (c *Client) Commit(message string) (string, error) {
	wt, err := c.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("open worktree: %w", err)
	}
	hash, err := wt.Commit(message, &gogit.CommitOptions{Author: c.signature()})
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return hash.String(), nil
}

// RemoteURL returns the first URL of the named remote, or "" if the remote
// does not exist.
func (c *Client) RemoteURL(name string) (string, error) {
	remote, err := c.repo.Remote(name)
	if errors.Is(err, gogit.ErrRemoteNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get remote %s: %w", name, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", nil
	}
	return urls[0], nil
}

// CurrentBranch returns the checked out branch name, or "" when HEAD is detached.
// An unborn branch (no commits yet) is still reported by name.
func (c *Client) CurrentBranch() (string, error) {
	head, err := c.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", fmt.Errorf("read HEAD: %w", err)
	}
	if head.Type() == plumbing.SymbolicReference && head.Target().IsBranch() {
		return head.Target().Short(), nil
	}
	return "", nil
}

// UserName returns user.name from the repository or global git config.
func (c *Client) UserName() (string, error) {
	cfg, err := c.repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		return "", fmt.Errorf("read git config: %w", err)
	}
	return cfg.User.Name, nil
}

// signature returns the commit identity, falling back to a fixed one.
func (c *Client) signature() *object.Signature {
	sig := &object.Signature{
		Name:  FallbackUserName,
		Email: FallbackUserEmail,
		When:  time.Now(),
	}
	cfg, err := c.repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		return sig
	}
	if cfg.User.Name != "" {
		sig.Name = cfg.User.Name
	}
	if cfg.User.Email != "" {
		sig.Email = cfg.User.Email
	}
	return sig
}
