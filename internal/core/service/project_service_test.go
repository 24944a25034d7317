package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/influconnect/marketplace-api/internal/core/domain"
	"github.com/influconnect/marketplace-api/internal/core/ports"
)

func projectResolver() *stubResolver {
	return &stubResolver{resolve: func(ctx context.Context, sourceText string, kind ports.SlugKind, excludeID string) (string, error) {
		if kind != ports.SlugKindProject {
			return "", errors.New("wrong kind")
		}
		return "summer-campaign-1700000000000", nil
	}}
}

func TestProjectCreate_Success(t *testing.T) {
	projects := &stubProjectRepo{create: func(ctx context.Context, p *domain.Project) (*domain.Project, error) {
		if p.Status != domain.ProjectOpen {
			t.Fatalf("new project must be open, got %s", p.Status)
		}
		if p.Slug != "summer-campaign-1700000000000" {
			t.Fatalf("slug not resolved: %q", p.Slug)
		}
		if p.Niches == nil || p.Platforms == nil {
			t.Fatalf("nil slices must be normalized to empty")
		}
		created := *p
		created.ID = "p1"
		return &created, nil
	}}
	svc := NewProjectService(projects, &stubUserRepo{}, &stubBidRepo{}, projectResolver(), zerolog.Nop())

	project, err := svc.Create(context.Background(), ports.CreateProjectInput{
		ClientID: "c1", Title: "Summer Campaign", Description: "promote things",
		BudgetMin: 100, BudgetMax: 500,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if project.ID != "p1" {
		t.Fatalf("unexpected project %+v", project)
	}
}

func TestProjectCreate_InvalidBudget(t *testing.T) {
	svc := NewProjectService(&stubProjectRepo{}, &stubUserRepo{}, &stubBidRepo{}, projectResolver(), zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateProjectInput{
		ClientID: "c1", Title: "Campaign", Description: "d", BudgetMin: 500, BudgetMax: 100,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestProjectGetByID_DanglingClient(t *testing.T) {
	projects := &stubProjectRepo{findByID: func(ctx context.Context, id string) (*domain.Project, error) {
		return openProject("p1", "gone"), nil
	}}
	users := &stubUserRepo{findByID: func(ctx context.Context, id string) (*domain.User, error) {
		return nil, domain.ErrNotFound
	}}
	svc := NewProjectService(projects, users, &stubBidRepo{}, projectResolver(), zerolog.Nop())

	got, err := svc.GetByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Client != nil {
		t.Fatalf("dangling client reference must yield nil summary")
	}
}

func TestProjectListBids_ProjectMissing(t *testing.T) {
	projects := &stubProjectRepo{findByID: func(ctx context.Context, id string) (*domain.Project, error) {
		return nil, domain.ErrNotFound
	}}
	svc := NewProjectService(projects, &stubUserRepo{}, &stubBidRepo{}, projectResolver(), zerolog.Nop())

	_, err := svc.ListBids(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProjectListBids_JoinsInfluencers(t *testing.T) {
	projects := &stubProjectRepo{findByID: func(ctx context.Context, id string) (*domain.Project, error) {
		return openProject("p1", "c1"), nil
	}}
	bids := &stubBidRepo{listByProject: func(ctx context.Context, projectID string) ([]*domain.Bid, error) {
		return []*domain.Bid{pendingBid("b1", "p1", "i1"), pendingBid("b2", "p1", "i2")}, nil
	}}
	users := &stubUserRepo{findByIDs: func(ctx context.Context, ids []string) ([]*domain.User, error) {
		return []*domain.User{{ID: "i1", Name: "Alice", Slug: "alice"}}, nil
	}}
	svc := NewProjectService(projects, users, bids, projectResolver(), zerolog.Nop())

	out, err := svc.ListBids(context.Background(), "p1")
	if err != nil {
		t.Fatalf("list bids: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 bids, got %d", len(out))
	}
	if out[0].Influencer == nil || out[0].Influencer.Slug != "alice" {
		t.Fatalf("missing influencer join on first bid")
	}
	if out[1].Influencer != nil {
		t.Fatalf("unknown influencer must yield nil summary")
	}
}
