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

// CenterRepository stores each center as a JSONB document keyed by its
// generated centerID.
type CenterRepository struct {
	pool *pgxpool.Pool
}

func NewCenterRepository(pool *pgxpool.Pool) *CenterRepository {
	return &CenterRepository{pool: pool}
}

func (r *CenterRepository) Create(ctx context.Context, c *entity.Center) error {
	doc, err := c.ToJSON()
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO centers (id, doc)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`, c.CenterID, doc)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrAlreadyExists
	}
	return nil
}

func (r *CenterRepository) GetByID(ctx context.Context, id string) (*entity.Center, error) {
	var doc []byte
	row := r.pool.QueryRow(ctx, `SELECT doc FROM centers WHERE id = $1`, id)
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return entity.CenterFromJSON(doc)
}

func (r *CenterRepository) Update(ctx context.Context, c *entity.Center) error {
	c.UpdatedAt = time.Now().UTC()
	doc, err := c.ToJSON()
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE centers SET doc = $2, updated_at = now()
		WHERE id = $1
	`, c.CenterID, doc)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CenterRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM centers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CenterRepository) List(ctx context.Context) ([]*entity.Center, error) {
	rows, err := r.pool.Query(ctx, `SELECT doc FROM centers ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.Center{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		c, err := entity.CenterFromJSON(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CenterRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	row := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM centers WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

var _ repository.CenterRepository = (*CenterRepository)(nil)
