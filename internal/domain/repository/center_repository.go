package repository

import (
	"context"

	"github.com/janata-app/janata-api/internal/domain/entity"
)

// CenterRepository defines the document-store operations for center records.
type CenterRepository interface {
	Create(ctx context.Context, c *entity.Center) error
	GetByID(ctx context.Context, id string) (*entity.Center, error)
	Update(ctx context.Context, c *entity.Center) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Center, error)
	Exists(ctx context.Context, id string) (bool, error)
}
