package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/influconnect/marketplace-api/internal/core/domain"
	"github.com/influconnect/marketplace-api/internal/core/filter"
	"github.com/influconnect/marketplace-api/internal/core/ports"
)

// UserService covers profile reads, updates, and filtered listings.
type UserService struct {
	users ports.UserRepository
	slugs ports.SlugResolver
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, slugs ports.SlugResolver, log zerolog.Logger) *UserService {
	return &UserService{users: users, slugs: slugs, log: log}
}

// GetByID retrieves a user, scoped to role when non-empty.
func (s *UserService) GetByID(ctx context.Context, id, role string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != "" && user.Role != role {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

// GetBySlug retrieves a user by slug, scoped to role when non-empty.
func (s *UserService) GetBySlug(ctx context.Context, slug, role string) (*domain.User, error) {
	return s.users.FindBySlug(ctx, slug, role)
}

// UpdateProfile applies a partial update. Changing the name re-resolves the
// slug, excluding the user's own record from the collision probe so an
// unchanged base keeps the current slug.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ports.ProfileUpdateInput) (*domain.User, error) {
	current, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	upd := ports.UserProfileUpdate{
		Bio:       in.Bio,
		AvatarURL: in.AvatarURL,
		Platforms: in.Platforms,
		Niches:    in.Niches,
		Stats:     in.Stats,
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrValidation)
		}
		upd.Name = &name
		if name != current.Name {
			newSlug, err := s.slugs.Resolve(ctx, name, ports.SlugKindUser, userID)
			if err != nil {
				return nil, err
			}
			upd.Slug = &newSlug
		}
	}

	updated, err := s.users.UpdateProfile(ctx, userID, upd)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Msg("profile updated")
	return updated, nil
}

// SetAvatar stores the public URL of an uploaded avatar.
func (s *UserService) SetAvatar(ctx context.Context, userID, avatarURL string) (*domain.User, error) {
	return s.users.UpdateProfile(ctx, userID, ports.UserProfileUpdate{AvatarURL: &avatarURL})
}

// List runs an assembled filter query and wraps the result page.
func (s *UserService) List(ctx context.Context, q *filter.Query) (*ports.UserPage, error) {
	if q == nil {
		return nil, fmt.Errorf("%w: missing query", domain.ErrValidation)
	}
	items, total, err := s.users.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &ports.UserPage{
		Items:      items,
		Total:      total,
		Page:       q.Page.Page,
		Limit:      q.Page.Limit,
		TotalPages: totalPages(total, q.Page.Limit),
	}, nil
}

// totalPages is ceil(total/limit) with a floor of 0 pages for empty results.
func totalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// errIsNotFound is a readability helper for join paths that tolerate missing
// references.
func errIsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
