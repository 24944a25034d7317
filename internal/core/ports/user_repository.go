package ports

import (
	"context"

	"github.com/influconnect/marketplace-api/internal/core/domain"
	"github.com/influconnect/marketplace-api/internal/core/filter"
)

// UserProfileUpdate carries a partial profile update. Nil fields are left
// untouched.
type UserProfileUpdate struct {
	Name      *string
	Slug      *string
	Bio       *string
	AvatarURL *string
	Platforms *[]string
	Niches    *[]string
	Stats     *domain.Stats
}

// UserRepository defines persistence operations for users. Create relies on
// the storage layer's unique indexes: a duplicate email maps to
// domain.ErrEmailTaken and a duplicate slug to domain.ErrConflict.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindBySlug retrieves a user by slug. When role is non-empty the lookup
	// is additionally scoped to that role.
	FindBySlug(ctx context.Context, slug, role string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, upd UserProfileUpdate) (*domain.User, error)
	// List returns a page of users matching q and the total count over the
	// whole filter.
	List(ctx context.Context, q *filter.Query) ([]*domain.User, int64, error)
}
