package ports

import (
	"context"

	"github.com/influconnect/marketplace-api/internal/core/domain"
)

// SubmitQueryInput carries a contact-form submission.
type SubmitQueryInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// QueryService handles public contact queries. Submit suppresses duplicate
// submissions within a short window; the bool result reports whether the
// query was a suppressed duplicate.
type QueryService interface {
	Submit(ctx context.Context, in SubmitQueryInput) (*domain.ContactQuery, bool, error)
	List(ctx context.Context) ([]*domain.ContactQuery, error)
}
