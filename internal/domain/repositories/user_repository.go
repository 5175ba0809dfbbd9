package repositories

import (
	"context"

	"github.com/knowhealth/backend/internal/domain/entities"
)

// UserRepository stores registered users.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Count(ctx context.Context) (int, error)
}
