package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/janata-app/janata-api/internal/domain/entity"
	"github.com/janata-app/janata-api/internal/domain/repository"
)

// EventRepository stores each event as a JSONB document keyed by its
// generated id. ListByCenter filters on the doc's center field so the owning
// center needs no separate column.
type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) Create(ctx context.Context, e *entity.Event) error {
	doc, err := e.ToJSON()
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO events (id, doc)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`, e.ID, doc)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrAlreadyExists
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	var doc []byte
	row := r.pool.QueryRow(ctx, `SELECT doc FROM events WHERE id = $1`, id)
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return entity.EventFromJSON(doc)
}

func (r *EventRepository) Update(ctx context.Context, e *entity.Event) error {
	e.UpdatedAt = time.Now().UTC()
	doc, err := e.ToJSON()
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE events SET doc = $2, updated_at = now()
		WHERE id = $1
	`, e.ID, doc)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EventRepository) List(ctx context.Context) ([]*entity.Event, error) {
	return r.query(ctx, `SELECT doc FROM events ORDER BY doc->>'date'`)
}

func (r *EventRepository) ListByCenter(ctx context.Context, centerID string) ([]*entity.Event, error) {
	return r.query(ctx, `SELECT doc FROM events WHERE doc->>'center' = $1 ORDER BY doc->>'date'`, centerID)
}

func (r *EventRepository) query(ctx context.Context, sql string, args ...any) ([]*entity.Event, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.Event{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		e, err := entity.EventFromJSON(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EventRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	row := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

var _ repository.EventRepository = (*EventRepository)(nil)
