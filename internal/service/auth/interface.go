package auth

import (
	"context"

	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
	"github.com/google/uuid"
)

// UserRepo is the account store contract. Create returns
// types.ErrUserExists when the username or email is taken.
type UserRepo interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByLogin(ctx context.Context, login string) (*models.User, error)
}

// TokenProvider issues and checks access tokens.
type TokenProvider interface {
	Generate(user *models.User) (string, error)
	Validate(token string) (*Claims, error)
}
