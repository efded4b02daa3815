package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/git-board/internal/domain"
)

// DefaultActivityLimit is the number of entries shown when no limit is given.
const DefaultActivityLimit = 20

// ShowActivityInput contains the parameters for reading the activity log.
type ShowActivityInput struct {
	Limit int // 0 = DefaultActivityLimit, negative = everything
}

// ShowActivityOutput contains activity entries, newest first.
type ShowActivityOutput struct {
	Entries []domain.Activity
}

// ShowActivity reads the audit trail.
type ShowActivity struct {
	log domain.ActivityLog
}

// NewShowActivity creates a new ShowActivity use case.
func NewShowActivity(log domain.ActivityLog) *ShowActivity {
	return &ShowActivity{log: log}
}

// Execute returns the latest activity entries.
func (uc *ShowActivity) Execute(ctx context.Context, in ShowActivityInput) (*ShowActivityOutput, error) {
	limit := in.Limit
	if limit == 0 {
		limit = DefaultActivityLimit
	}
	entries, err := uc.log.ListActivity(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return &ShowActivityOutput{Entries: entries}, nil
}
