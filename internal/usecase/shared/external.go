package shared

import (
	"errors"
	"fmt"

	"github.com/runoshun/git-board/internal/domain"
)

// ExternalToolError tags a git adapter or pusher failure with
// domain.ErrExternalTool, once.
func ExternalToolError(op string, err error) error {
	if errors.Is(err, domain.ErrExternalTool) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrExternalTool, err)
}
