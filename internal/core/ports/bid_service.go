package ports

import (
	"context"

	"github.com/influconnect/marketplace-api/internal/core/domain"
)

// PlaceBidInput carries the data needed to bid on a project.
type PlaceBidInput struct {
	ProjectID    string
	InfluencerID string
	Amount       float64
	Message      string
}

// BidProject is a project the influencer has bid on, joined with the owning
// client's summary and the influencer's own bid.
type BidProject struct {
	Project *domain.Project
	Client  *UserSummary
	Bid     *domain.Bid
}

// BidService enforces bid creation preconditions and lifecycle transitions.
// All transition operations check ownership before state, so a caller who is
// neither party always receives domain.ErrForbidden without learning whether
// the bid is still pending.
type BidService interface {
	Place(ctx context.Context, in PlaceBidInput) (*domain.Bid, error)
	// Accept and Reject require the acting user to be the client who owns the
	// bid's project; Withdraw requires the bid's influencer. All three require
	// the bid to be pending and fail with domain.ErrInvalidTransition when it
	// is already in a terminal state.
	Accept(ctx context.Context, bidID, actorID string) (*domain.Bid, error)
	Reject(ctx context.Context, bidID, actorID string) (*domain.Bid, error)
	Withdraw(ctx context.Context, bidID, actorID string) (*domain.Bid, error)
	// ListMine returns the projects the influencer has bid on, newest first.
	// Bids whose project no longer resolves are skipped.
	ListMine(ctx context.Context, influencerID string) ([]*BidProject, error)
}
