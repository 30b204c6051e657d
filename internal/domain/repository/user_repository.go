package repository

import (
	"context"

	"github.com/oksasatya/catalog-backoffice/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Lookups of missing rows return an apperr NotFound.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, id int64, patch entity.UserPatch) (*entity.User, error)
}
