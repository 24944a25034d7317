package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/influconnect/marketplace-api/internal/core/domain"
	"github.com/influconnect/marketplace-api/internal/core/filter"
	"github.com/influconnect/marketplace-api/internal/core/ports"
)

// ProjectService covers project creation and reads.
type ProjectService struct {
	projects ports.ProjectRepository
	users    ports.UserRepository
	bids     ports.BidRepository
	slugs    ports.SlugResolver
	log      zerolog.Logger
}

func NewProjectService(
	projects ports.ProjectRepository,
	users ports.UserRepository,
	bids ports.BidRepository,
	slugs ports.SlugResolver,
	log zerolog.Logger,
) *ProjectService {
	return &ProjectService{projects: projects, users: users, bids: bids, slugs: slugs, log: log}
}

// Create posts a new open project for the client. The slug is resolved
// explicitly before the write so persistence stays a single atomic insert.
func (s *ProjectService) Create(ctx context.Context, in ports.CreateProjectInput) (*domain.Project, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: title and description are required", domain.ErrValidation)
	}
	if in.BudgetMin < 0 || in.BudgetMax < in.BudgetMin {
		return nil, fmt.Errorf("%w: budget range is invalid", domain.ErrValidation)
	}

	projectSlug, err := s.slugs.Resolve(ctx, title, ports.SlugKindProject, "")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	project := &domain.Project{
		ClientID:    in.ClientID,
		Title:       title,
		Description: in.Description,
		BudgetMin:   in.BudgetMin,
		BudgetMax:   in.BudgetMax,
		Niches:      orEmpty(in.Niches),
		Platforms:   orEmpty(in.Platforms),
		Status:      domain.ProjectOpen,
		Slug:        projectSlug,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.projects.Create(ctx, project)
	if err != nil {
		// A slug index collision is surfaced as-is: retrying with the same
		// candidate would hit the same conflict.
		return nil, err
	}

	s.log.Info().Str("project_id", created.ID).Str("client_id", in.ClientID).Str("slug", created.Slug).Msg("project created")
	return created, nil
}

// GetByID returns a project joined with its owning client's summary.
func (s *ProjectService) GetByID(ctx context.Context, id string) (*ports.ProjectWithClient, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withClient(ctx, project), nil
}

// GetBySlug returns a project joined with its owning client's summary.
func (s *ProjectService) GetBySlug(ctx context.Context, slug string) (*ports.ProjectWithClient, error) {
	project, err := s.projects.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.withClient(ctx, project), nil
}

// List runs an assembled filter query and joins client summaries in one
// batch lookup.
func (s *ProjectService) List(ctx context.Context, q *filter.Query) (*ports.ProjectPage, error) {
	if q == nil {
		return nil, fmt.Errorf("%w: missing query", domain.ErrValidation)
	}
	projects, total, err := s.projects.List(ctx, q)
	if err != nil {
		return nil, err
	}

	clients, err := s.clientSummaries(ctx, projectClientIDs(projects))
	if err != nil {
		return nil, err
	}

	items := make([]*ports.ProjectWithClient, 0, len(projects))
	for _, p := range projects {
		items = append(items, &ports.ProjectWithClient{Project: p, Client: clients[p.ClientID]})
	}

	return &ports.ProjectPage{
		Items:      items,
		Total:      total,
		Page:       q.Page.Page,
		Limit:      q.Page.Limit,
		TotalPages: totalPages(total, q.Page.Limit),
	}, nil
}

// ListBids returns all bids on a project joined with influencer summaries,
// newest first.
func (s *ProjectService) ListBids(ctx context.Context, projectID string) ([]*ports.BidWithInfluencer, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}

	bids, err := s.bids.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(bids))
	for _, b := range bids {
		ids = append(ids, b.InfluencerID)
	}
	influencers, err := s.clientSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*ports.BidWithInfluencer, 0, len(bids))
	for _, b := range bids {
		out = append(out, &ports.BidWithInfluencer{Bid: b, Influencer: influencers[b.InfluencerID]})
	}
	return out, nil
}

// withClient attaches the owning client's summary; a dangling reference
// leaves Client nil rather than failing the read.
func (s *ProjectService) withClient(ctx context.Context, p *domain.Project) *ports.ProjectWithClient {
	out := &ports.ProjectWithClient{Project: p}
	client, err := s.users.FindByID(ctx, p.ClientID)
	if err != nil {
		if !errIsNotFound(err) {
			s.log.Warn().Err(err).Str("client_id", p.ClientID).Msg("client lookup failed")
		}
		return out
	}
	out.Client = &ports.UserSummary{ID: client.ID, Name: client.Name, Slug: client.Slug}
	return out
}

func (s *ProjectService) clientSummaries(ctx context.Context, ids []string) (map[string]*ports.UserSummary, error) {
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

func projectClientIDs(projects []*domain.Project) []string {
	seen := make(map[string]struct{}, len(projects))
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		if _, ok := seen[p.ClientID]; ok {
			continue
		}
		seen[p.ClientID] = struct{}{}
		ids = append(ids, p.ClientID)
	}
	return ids
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
