package ports

import (
	"context"

	"github.com/influconnect/marketplace-api/internal/core/domain"
)

// RegisterInput carries the data needed to create an account. Role must be
// influencer or client; admin accounts are never self-registered.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthService implements registration, login, and current-user lookup.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
}
