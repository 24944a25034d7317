package ports

import (
	"context"

	"github.com/influconnect/marketplace-api/internal/core/domain"
	"github.com/influconnect/marketplace-api/internal/core/filter"
)

// CreateProjectInput carries the data needed to post a project.
type CreateProjectInput struct {
	ClientID    string
	Title       string
	Description string
	BudgetMin   float64
	BudgetMax   float64
	Niches      []string
	Platforms   []string
}

// UserSummary is the minimal public view of a user embedded in joined
// responses.
type UserSummary struct {
	ID   string
	Name string
	Slug string
}

// ProjectWithClient pairs a project with its owning client's summary. Client
// is nil when the owning account no longer resolves.
type ProjectWithClient struct {
	Project *domain.Project
	Client  *UserSummary
}

// ProjectPage is a filtered, paginated slice of projects.
type ProjectPage struct {
	Items      []*ProjectWithClient
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// BidWithInfluencer pairs a bid with the bidding influencer's summary.
type BidWithInfluencer struct {
	Bid        *domain.Bid
	Influencer *UserSummary
}

// ProjectService covers project creation and reads.
type ProjectService interface {
	Create(ctx context.Context, in CreateProjectInput) (*domain.Project, error)
	GetByID(ctx context.Context, id string) (*ProjectWithClient, error)
	GetBySlug(ctx context.Context, slug string) (*ProjectWithClient, error)
	List(ctx context.Context, q *filter.Query) (*ProjectPage, error)
	ListBids(ctx context.Context, projectID string) ([]*BidWithInfluencer, error)
}
