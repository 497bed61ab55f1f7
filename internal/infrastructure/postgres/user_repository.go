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

// UserRepository stores each user as a JSONB document keyed by username.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts the user document. The conditional write is the uniqueness
// guarantee: a conflicting username maps to ErrAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	doc, err := u.ToJSON()
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO users (username, doc)
		VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING
	`, u.Username, doc)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrAlreadyExists
	}
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var doc []byte
	row := r.pool.QueryRow(ctx, `SELECT doc FROM users WHERE username = $1`, username)
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return entity.UserFromJSON(doc)
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now().UTC()
	doc, err := u.ToJSON()
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET doc = $2, updated_at = now()
		WHERE username = $1
	`, u.Username, doc)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, username string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
