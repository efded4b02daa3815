package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/runoshun/git-board/internal/domain"
)

var (
	_ domain.BranchPusher = (*SimulatedPusher)(nil)
	_ domain.BranchPusher = (*CLIPusher)(nil)
)

// SimulatedPusher records the intent to push without contacting a remote.
// It is the default push mode: branches stay local until pushed by hand.
type SimulatedPusher struct {
	logger domain.Logger
	remote string
}

// NewSimulatedPusher creates a SimulatedPusher for the given remote.
func NewSimulatedPusher(remote string, logger domain.Logger) *SimulatedPusher {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &SimulatedPusher{remote: remote, logger: logger}
}

// Push logs the push request and always succeeds.
func (p *SimulatedPusher) Push(_ context.Context, branch string) error {
	p.logger.Info(0, "git", fmt.Sprintf("push requested: %s -> %s (simulated)", branch, p.remote))
	return nil
}

// CLIPusher pushes with the git command line, reusing the user's credential helpers.
type CLIPusher struct {
	logger   domain.Logger
	repoRoot string
	remote   string
}

// NewCLIPusher creates a CLIPusher for the repository at repoRoot.
func NewCLIPusher(repoRoot, remote string, logger domain.Logger) *CLIPusher {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &CLIPusher{repoRoot: repoRoot, remote: remote, logger: logger}
}

// Push runs git push -u <remote> <branch>.
func (p *CLIPusher) Push(ctx context.Context, branch string) error {
	cmd := exec.CommandContext(ctx, "git", "-C", p.repoRoot, "push", "-u", p.remote, branch) //nolint:gosec // branch names are derived from task titles with a restricted alphabet
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("push %s to %s: %s: %w", branch, p.remote, strings.TrimSpace(string(output)), err)
	}
	p.logger.Info(0, "git", fmt.Sprintf("pushed %s -> %s", branch, p.remote))
	return nil
}
