package service

import (
	"context"

	"github.com/influconnect/marketplace-api/internal/core/domain"
	"github.com/influconnect/marketplace-api/internal/core/filter"
	"github.com/influconnect/marketplace-api/internal/core/ports"
)

// Function-field stubs so each test wires only the calls it expects. A nil
// field that gets called panics, which is exactly the signal we want.

type stubUserRepo struct {
	create        func(ctx context.Context, u *domain.User) (*domain.User, error)
	findByID      func(ctx context.Context, id string) (*domain.User, error)
	findByIDs     func(ctx context.Context, ids []string) ([]*domain.User, error)
	findByEmail   func(ctx context.Context, email string) (*domain.User, error)
	findBySlug    func(ctx context.Context, slug, role string) (*domain.User, error)
	updateProfile func(ctx context.Context, id string, upd ports.UserProfileUpdate) (*domain.User, error)
	list          func(ctx context.Context, q *filter.Query) ([]*domain.User, int64, error)
}

func (s *stubUserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	return s.create(ctx, u)
}
func (s *stubUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.findByID(ctx, id)
}
func (s *stubUserRepo) FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	return s.findByIDs(ctx, ids)
}
func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findByEmail(ctx, email)
}
func (s *stubUserRepo) FindBySlug(ctx context.Context, slug, role string) (*domain.User, error) {
	return s.findBySlug(ctx, slug, role)
}
func (s *stubUserRepo) UpdateProfile(ctx context.Context, id string, upd ports.UserProfileUpdate) (*domain.User, error) {
	return s.updateProfile(ctx, id, upd)
}
func (s *stubUserRepo) List(ctx context.Context, q *filter.Query) ([]*domain.User, int64, error) {
	return s.list(ctx, q)
}

type stubProjectRepo struct {
	create     func(ctx context.Context, p *domain.Project) (*domain.Project, error)
	findByID   func(ctx context.Context, id string) (*domain.Project, error)
	findByIDs  func(ctx context.Context, ids []string) ([]*domain.Project, error)
	findBySlug func(ctx context.Context, slug string) (*domain.Project, error)
	list       func(ctx context.Context, q *filter.Query) ([]*domain.Project, int64, error)
}

func (s *stubProjectRepo) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	return s.create(ctx, p)
}
func (s *stubProjectRepo) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.findByID(ctx, id)
}
func (s *stubProjectRepo) FindByIDs(ctx context.Context, ids []string) ([]*domain.Project, error) {
	return s.findByIDs(ctx, ids)
}
func (s *stubProjectRepo) FindBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	return s.findBySlug(ctx, slug)
}
func (s *stubProjectRepo) List(ctx context.Context, q *filter.Query) ([]*domain.Project, int64, error) {
	return s.list(ctx, q)
}

type stubBidRepo struct {
	create           func(ctx context.Context, b *domain.Bid) (*domain.Bid, error)
	findByID         func(ctx context.Context, id string) (*domain.Bid, error)
	updateStatusIf   func(ctx context.Context, id string, expected, next domain.BidStatus) (*domain.Bid, error)
	listByProject    func(ctx context.Context, projectID string) ([]*domain.Bid, error)
	listByInfluencer func(ctx context.Context, influencerID string) ([]*domain.Bid, error)
}

func (s *stubBidRepo) Create(ctx context.Context, b *domain.Bid) (*domain.Bid, error) {
	return s.create(ctx, b)
}
func (s *stubBidRepo) FindByID(ctx context.Context, id string) (*domain.Bid, error) {
	return s.findByID(ctx, id)
}
func (s *stubBidRepo) UpdateStatusIf(ctx context.Context, id string, expected, next domain.BidStatus) (*domain.Bid, error) {
	return s.updateStatusIf(ctx, id, expected, next)
}
func (s *stubBidRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Bid, error) {
	return s.listByProject(ctx, projectID)
}
func (s *stubBidRepo) ListByInfluencer(ctx context.Context, influencerID string) ([]*domain.Bid, error) {
	return s.listByInfluencer(ctx, influencerID)
}

type stubQueryRepo struct {
	create func(ctx context.Context, q *domain.ContactQuery) (*domain.ContactQuery, error)
	list   func(ctx context.Context) ([]*domain.ContactQuery, error)
}

func (s *stubQueryRepo) Create(ctx context.Context, q *domain.ContactQuery) (*domain.ContactQuery, error) {
	return s.create(ctx, q)
}
func (s *stubQueryRepo) List(ctx context.Context) ([]*domain.ContactQuery, error) {
	return s.list(ctx)
}

type stubProber struct {
	exists func(ctx context.Context, kind ports.SlugKind, slug, excludeID string) (bool, error)
}

func (s *stubProber) ExistsSlug(ctx context.Context, kind ports.SlugKind, slug, excludeID string) (bool, error) {
	return s.exists(ctx, kind, slug, excludeID)
}

type stubResolver struct {
	resolve func(ctx context.Context, sourceText string, kind ports.SlugKind, excludeID string) (string, error)
}

func (s *stubResolver) Resolve(ctx context.Context, sourceText string, kind ports.SlugKind, excludeID string) (string, error) {
	return s.resolve(ctx, sourceText, kind, excludeID)
}

type stubDedup struct {
	isDuplicate func(ctx context.Context, email, subject string) (bool, error)
	mark        func(ctx context.Context, email, subject string) error
}

func (s *stubDedup) IsDuplicate(ctx context.Context, email, subject string) (bool, error) {
	return s.isDuplicate(ctx, email, subject)
}
func (s *stubDedup) Mark(ctx context.Context, email, subject string) error {
	return s.mark(ctx, email, subject)
}
