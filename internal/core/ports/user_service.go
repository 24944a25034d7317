package ports

import (
	"context"

	"github.com/influconnect/marketplace-api/internal/core/domain"
	"github.com/influconnect/marketplace-api/internal/core/filter"
)

// ProfileUpdateInput is a partial profile update from the transport layer.
// Nil fields are left untouched. A name change triggers slug re-resolution.
type ProfileUpdateInput struct {
	Name      *string
	Bio       *string
	AvatarURL *string
	Platforms *[]string
	Niches    *[]string
	Stats     *domain.Stats
}

// UserPage is a filtered, paginated slice of users plus the total count over
// the whole filter.
type UserPage struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService covers profile reads, updates, and filtered listings.
type UserService interface {
	// GetByID and GetBySlug scope the lookup to role when non-empty, so an
	// influencer endpoint never serves a client profile.
	GetByID(ctx context.Context, id, role string) (*domain.User, error)
	GetBySlug(ctx context.Context, slug, role string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileUpdateInput) (*domain.User, error)
	SetAvatar(ctx context.Context, userID, avatarURL string) (*domain.User, error)
	List(ctx context.Context, q *filter.Query) (*UserPage, error)
}
