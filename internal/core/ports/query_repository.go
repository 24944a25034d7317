package ports

import (
	"context"

	"github.com/influconnect/marketplace-api/internal/core/domain"
)

// QueryRepository persists contact-form submissions.
type QueryRepository interface {
	Create(ctx context.Context, q *domain.ContactQuery) (*domain.ContactQuery, error)
	List(ctx context.Context) ([]*domain.ContactQuery, error)
}
