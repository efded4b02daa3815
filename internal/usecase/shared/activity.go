package shared

import (
	"context"
	"fmt"

	"github.com/runoshun/git-board/internal/domain"
)

// RecordActivity appends one activity entry after an operation has been
// persisted. A failed append does not undo the operation: it is logged and
// returned as a warning for the caller to surface.
func RecordActivity(ctx context.Context, log domain.ActivityLog, logger domain.Logger, taskID int64, event domain.EventType, metadata string) []string {
	if err := log.AppendActivity(ctx, event, metadata); err != nil {
		msg := fmt.Sprintf("activity %s not recorded: %v", event, err)
		if logger != nil {
			logger.Warn(taskID, "activity", msg)
		}
		return []string{msg}
	}
	return nil
}
