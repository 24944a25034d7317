package ports

import (
	"context"

	"github.com/influconnect/marketplace-api/internal/core/domain"
	"github.com/influconnect/marketplace-api/internal/core/filter"
)

// ProjectRepository defines persistence operations for projects. Create is
// guarded by the unique slug index and maps violations to domain.ErrConflict.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Project, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Project, error)
	List(ctx context.Context, q *filter.Query) ([]*domain.Project, int64, error)
}
