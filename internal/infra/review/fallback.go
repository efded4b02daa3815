package review

import (
	"context"

	"github.com/runoshun/git-board/internal/domain"
)

var _ domain.ReviewRequester = FallbackClient{}

// FallbackClient is used when no access token is configured. It never opens a
// request; it returns the compare link for a manual follow-up.
type FallbackClient struct{}

// CreateReviewRequest returns the fallback link together with domain.ErrNoCredential.
func (FallbackClient) CreateReviewRequest(_ context.Context, req domain.ReviewRequest) (domain.ReviewLink, error) {
	link := domain.ReviewLink{
		URL:      domain.FallbackReviewURL(req.Remote, req.Base, req.Head),
		Fallback: true,
	}
	return link, domain.ErrNoCredential
}
