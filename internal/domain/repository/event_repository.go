package repository

import (
	"context"

	"github.com/janata-app/janata-api/internal/domain/entity"
)

// EventRepository defines the document-store operations for event records.
type EventRepository interface {
	Create(ctx context.Context, e *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	Update(ctx context.Context, e *entity.Event) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Event, error)
	ListByCenter(ctx context.Context, centerID string) ([]*entity.Event, error)
	Exists(ctx context.Context, id string) (bool, error)
}
