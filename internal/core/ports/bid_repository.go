package ports

import (
	"context"

	"github.com/influconnect/marketplace-api/internal/core/domain"
)

// BidRepository defines persistence operations for bids.
type BidRepository interface {
	// Create inserts a new bid. The (project, influencer) unique compound
	// index is the authority against double bidding; violations map to
	// domain.ErrDuplicateBid.
	Create(ctx context.Context, b *domain.Bid) (*domain.Bid, error)
	FindByID(ctx context.Context, id string) (*domain.Bid, error)
	// UpdateStatusIf atomically moves the bid from expected to next in a
	// single compare-and-swap write. When the stored status no longer equals
	// expected the swap fails with domain.ErrInvalidTransition, so two
	// concurrent terminal transitions cannot both succeed.
	UpdateStatusIf(ctx context.Context, id string, expected, next domain.BidStatus) (*domain.Bid, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Bid, error)
	ListByInfluencer(ctx context.Context, influencerID string) ([]*domain.Bid, error)
}
