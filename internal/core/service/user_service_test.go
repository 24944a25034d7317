package service

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/rs/zerolog"

	"github.com/influconnect/marketplace-api/internal/core/domain"
	"github.com/influconnect/marketplace-api/internal/core/filter"
	"github.com/influconnect/marketplace-api/internal/core/ports"
)

func TestGetByID_RoleScoped(t *testing.T) {
	users := &stubUserRepo{findByID: func(ctx context.Context, id string) (*domain.User, error) {
		return &domain.User{ID: id, Role: domain.RoleClient}, nil
	}}
	svc := NewUserService(users, &stubResolver{}, zerolog.Nop())

	if _, err := svc.GetByID(context.Background(), "u1", domain.RoleClient); err != nil {
		t.Fatalf("same role: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), "u1", domain.RoleInfluencer); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("cross-role lookup must 404, got %v", err)
	}
}

func TestUpdateProfile_NameChangeReResolvesSlug(t *testing.T) {
	var resolvedExclude string
	users := &stubUserRepo{
		findByID: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Name: "Old Name", Slug: "old-name"}, nil
		},
		updateProfile: func(ctx context.Context, id string, upd ports.UserProfileUpdate) (*domain.User, error) {
			if upd.Slug == nil || *upd.Slug != "new-name" {
				t.Fatalf("expected slug update to new-name, got %+v", upd.Slug)
			}
			return &domain.User{ID: id, Name: *upd.Name, Slug: *upd.Slug}, nil
		},
	}
	resolver := &stubResolver{resolve: func(ctx context.Context, sourceText string, kind ports.SlugKind, excludeID string) (string, error) {
		resolvedExclude = excludeID
		return "new-name", nil
	}}
	svc := NewUserService(users, resolver, zerolog.Nop())

	name := "New Name"
	updated, err := svc.UpdateProfile(context.Background(), "u1", ports.ProfileUpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "new-name" {
		t.Fatalf("slug not updated: %q", updated.Slug)
	}
	if resolvedExclude != "u1" {
		t.Fatalf("own record must be excluded from the probe, got %q", resolvedExclude)
	}
}

func TestUpdateProfile_SameNameKeepsSlug(t *testing.T) {
	users := &stubUserRepo{
		findByID: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Name: "Alice", Slug: "alice"}, nil
		},
		updateProfile: func(ctx context.Context, id string, upd ports.UserProfileUpdate) (*domain.User, error) {
			if upd.Slug != nil {
				t.Fatalf("slug must not change when the name is unchanged")
			}
			return &domain.User{ID: id, Name: "Alice", Slug: "alice"}, nil
		},
	}
	resolver := &stubResolver{resolve: func(ctx context.Context, sourceText string, kind ports.SlugKind, excludeID string) (string, error) {
		t.Fatalf("resolver must not be called")
		return "", nil
	}}
	svc := NewUserService(users, resolver, zerolog.Nop())

	name := "Alice"
	bio := "hello"
	if _, err := svc.UpdateProfile(context.Background(), "u1", ports.ProfileUpdateInput{Name: &name, Bio: &bio}); err != nil {
		t.Fatalf("update: %v", err)
	}
}

func TestUpdateProfile_EmptyName(t *testing.T) {
	users := &stubUserRepo{findByID: func(ctx context.Context, id string) (*domain.User, error) {
		return &domain.User{ID: id, Name: "Alice"}, nil
	}}
	svc := NewUserService(users, &stubResolver{}, zerolog.Nop())

	name := "   "
	_, err := svc.UpdateProfile(context.Background(), "u1", ports.ProfileUpdateInput{Name: &name})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestList_PageMath(t *testing.T) {
	users := &stubUserRepo{list: func(ctx context.Context, q *filter.Query) ([]*domain.User, int64, error) {
		return []*domain.User{{ID: "u1"}}, 41, nil
	}}
	svc := NewUserService(users, &stubResolver{}, zerolog.Nop())

	q, err := filter.Build(url.Values{"page": {"2"}, "limit": {"10"}}, filter.KindInfluencers)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	page, err := svc.List(context.Background(), q)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 41 || page.Page != 2 || page.Limit != 10 || page.TotalPages != 5 {
		t.Fatalf("unexpected page meta %+v", page)
	}
}
