package repository

import (
	"context"

	"github.com/janata-app/janata-api/internal/domain/entity"
)

// UserRepository defines the document-store operations for user records,
// keyed by username.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, username string) error
}
