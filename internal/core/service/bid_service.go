package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/influconnect/marketplace-api/internal/core/domain"
	"github.com/influconnect/marketplace-api/internal/core/ports"
)

// BidService enforces bid creation preconditions and lifecycle transitions.
type BidService struct {
	bids     ports.BidRepository
	projects ports.ProjectRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewBidService(
	bids ports.BidRepository,
	projects ports.ProjectRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *BidService {
	return &BidService{bids: bids, projects: projects, users: users, log: log}
}

// Place creates a pending bid on an open project. The (project, influencer)
// unique index rejects a second bid for the same pair no matter what state
// the first one is in.
func (s *BidService) Place(ctx context.Context, in ports.PlaceBidInput) (*domain.Bid, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}

	project, err := s.projects.FindByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if !project.Status.AcceptsBids() {
		return nil, domain.ErrProjectNotOpen
	}

	now := time.Now().UTC()
	bid := &domain.Bid{
		ProjectID:    project.ID,
		InfluencerID: in.InfluencerID,
		Amount:       in.Amount,
		Message:      in.Message,
		Status:       domain.BidPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.bids.Create(ctx, bid)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("bid_id", created.ID).
		Str("project_id", project.ID).
		Str("influencer_id", in.InfluencerID).
		Float64("amount", in.Amount).
		Msg("bid placed")
	return created, nil
}

// Accept transitions a pending bid to accepted. Only the client who owns the
// bid's project may accept.
func (s *BidService) Accept(ctx context.Context, bidID, actorID string) (*domain.Bid, error) {
	return s.transition(ctx, bidID, actorID, domain.ActionAccept)
}

// Reject transitions a pending bid to rejected. Same ownership rule as Accept.
func (s *BidService) Reject(ctx context.Context, bidID, actorID string) (*domain.Bid, error) {
	return s.transition(ctx, bidID, actorID, domain.ActionReject)
}

// Withdraw transitions a pending bid to withdrawn. Only the influencer who
// placed the bid may withdraw it.
func (s *BidService) Withdraw(ctx context.Context, bidID, actorID string) (*domain.Bid, error) {
	return s.transition(ctx, bidID, actorID, domain.ActionWithdraw)
}

// transition authorizes the actor against the specific referenced owner, maps
// the action through the transition table, and applies the result with a
// compare-and-swap on the pending status. Ownership is checked first so an
// unauthorized caller cannot distinguish a pending bid from a resolved one.
func (s *BidService) transition(ctx context.Context, bidID, actorID string, action domain.BidAction) (*domain.Bid, error) {
	bid, err := s.bids.FindByID(ctx, bidID)
	if err != nil {
		return nil, err
	}

	switch action {
	case domain.ActionAccept, domain.ActionReject:
		project, err := s.projects.FindByID(ctx, bid.ProjectID)
		if err != nil {
			return nil, err
		}
		if project.ClientID != actorID {
			return nil, domain.ErrForbidden
		}
	case domain.ActionWithdraw:
		if bid.InfluencerID != actorID {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, fmt.Errorf("%w: unknown action %q", domain.ErrValidation, action)
	}

	next, err := bid.Status.Next(action)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot %s a %s bid", domain.ErrInvalidTransition, action, bid.Status)
	}

	// CAS on pending: if a concurrent call already resolved the bid, the
	// swap misses and reports an invalid transition instead of overwriting.
	updated, err := s.bids.UpdateStatusIf(ctx, bid.ID, domain.BidPending, next)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("bid_id", bid.ID).
		Str("action", string(action)).
		Str("status", string(updated.Status)).
		Msg("bid transitioned")
	return updated, nil
}

// ListMine returns the projects the influencer has bid on, each joined with
// the owning client's summary and the influencer's own bid. Bids whose
// project no longer resolves are skipped.
func (s *BidService) ListMine(ctx context.Context, influencerID string) ([]*ports.BidProject, error) {
	bids, err := s.bids.ListByInfluencer(ctx, influencerID)
	if err != nil {
		return nil, err
	}
	if len(bids) == 0 {
		return []*ports.BidProject{}, nil
	}

	projectIDs := make([]string, 0, len(bids))
	for _, b := range bids {
		projectIDs = append(projectIDs, b.ProjectID)
	}
	projects, err := s.projects.FindByIDs(ctx, projectIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}

	clients, err := s.clientSummaries(ctx, projectClientIDs(projects))
	if err != nil {
		return nil, err
	}

	out := make([]*ports.BidProject, 0, len(bids))
	for _, b := range bids {
		project, ok := byID[b.ProjectID]
		if !ok {
			continue
		}
		out = append(out, &ports.BidProject{
			Project: project,
			Client:  clients[project.ClientID],
			Bid:     b,
		})
	}
	return out, nil
}

func (s *BidService) clientSummaries(ctx context.Context, ids []string) (map[string]*ports.UserSummary, error) {
	out := make(map[string]*ports.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = &ports.UserSummary{ID: u.ID, Name: u.Name, Slug: u.Slug}
	}
	return out, nil
}
