package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/influconnect/marketplace-api/internal/core/domain"
	"github.com/influconnect/marketplace-api/internal/core/ports"
)

// DedupChecker abstracts the duplicate-submission store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, email, subject string) (bool, error)
	Mark(ctx context.Context, email, subject string) error
}

// QueryService handles public contact queries.
type QueryService struct {
	queries ports.QueryRepository
	dedup   DedupChecker
	log     zerolog.Logger
}

// NewQueryService returns a QueryService. dedup may be nil, in which case
// duplicate suppression is disabled.
func NewQueryService(queries ports.QueryRepository, dedup DedupChecker, log zerolog.Logger) *QueryService {
	return &QueryService{queries: queries, dedup: dedup, log: log}
}

// Submit persists a contact query. Re-submissions of the same email/subject
// pair inside the dedup window are acknowledged but not persisted again; the
// bool result reports suppression. Dedup store failures are logged and the
// submission proceeds.
func (s *QueryService) Submit(ctx context.Context, in ports.SubmitQueryInput) (*domain.ContactQuery, bool, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	subject := strings.TrimSpace(in.Subject)
	if name == "" || email == "" || subject == "" || strings.TrimSpace(in.Message) == "" {
		return nil, false, fmt.Errorf("%w: all contact fields are required", domain.ErrValidation)
	}

	if s.dedup != nil {
		isDup, err := s.dedup.IsDuplicate(ctx, email, subject)
		if err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("dedup check failed, accepting submission")
		} else if isDup {
			s.log.Debug().Str("email", email).Str("subject", subject).Msg("duplicate query suppressed")
			return nil, true, nil
		}
	}

	query := &domain.ContactQuery{
		Name:      name,
		Email:     email,
		Subject:   subject,
		Message:   in.Message,
		Status:    domain.QueryNew,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.queries.Create(ctx, query)
	if err != nil {
		return nil, false, err
	}

	if s.dedup != nil {
		if err := s.dedup.Mark(ctx, email, subject); err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("failed to set dedup key")
		}
	}

	s.log.Info().Str("query_id", created.ID).Msg("contact query submitted")
	return created, false, nil
}

// List returns all contact queries, newest first.
func (s *QueryService) List(ctx context.Context) ([]*domain.ContactQuery, error) {
	return s.queries.List(ctx)
}
