package application

import (
	"context"
	"sync"

	"github.com/janata-app/janata-api/internal/domain/entity"
	"github.com/janata-app/janata-api/internal/domain/repository"
)

// In-memory repositories backed by the same serialize/deserialize round trip
// the Postgres layer uses, so stored records are value copies.

type memUserRepo struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{docs: map[string][]byte{}}
}

func (r *memUserRepo) Create(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[u.Username]; ok {
		return repository.ErrAlreadyExists
	}
	doc, err := u.ToJSON()
	if err != nil {
		return err
	}
	r.docs[u.Username] = doc
	return nil
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return entity.UserFromJSON(doc)
}

func (r *memUserRepo) Update(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[u.Username]; !ok {
		return repository.ErrNotFound
	}
	doc, err := u.ToJSON()
	if err != nil {
		return err
	}
	r.docs[u.Username] = doc
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[username]; !ok {
		return repository.ErrNotFound
	}
	delete(r.docs, username)
	return nil
}

type memCenterRepo struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func newMemCenterRepo() *memCenterRepo {
	return &memCenterRepo{docs: map[string][]byte{}}
}

func (r *memCenterRepo) Create(ctx context.Context, c *entity.Center) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[c.CenterID]; ok {
		return repository.ErrAlreadyExists
	}
	doc, err := c.ToJSON()
	if err != nil {
		return err
	}
	r.docs[c.CenterID] = doc
	return nil
}

func (r *memCenterRepo) GetByID(ctx context.Context, id string) (*entity.Center, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return entity.CenterFromJSON(doc)
}

func (r *memCenterRepo) Update(ctx context.Context, c *entity.Center) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[c.CenterID]; !ok {
		return repository.ErrNotFound
	}
	doc, err := c.ToJSON()
	if err != nil {
		return err
	}
	r.docs[c.CenterID] = doc
	return nil
}

func (r *memCenterRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *memCenterRepo) List(ctx context.Context) ([]*entity.Center, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Center, 0, len(r.docs))
	for _, doc := range r.docs {
		c, err := entity.CenterFromJSON(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *memCenterRepo) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.docs[id]
	return ok, nil
}

type memEventRepo struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{docs: map[string][]byte{}}
}

func (r *memEventRepo) Create(ctx context.Context, e *entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[e.ID]; ok {
		return repository.ErrAlreadyExists
	}
	doc, err := e.ToJSON()
	if err != nil {
		return err
	}
	r.docs[e.ID] = doc
	return nil
}

func (r *memEventRepo) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return entity.EventFromJSON(doc)
}

func (r *memEventRepo) Update(ctx context.Context, e *entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[e.ID]; !ok {
		return repository.ErrNotFound
	}
	doc, err := e.ToJSON()
	if err != nil {
		return err
	}
	r.docs[e.ID] = doc
	return nil
}

func (r *memEventRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *memEventRepo) List(ctx context.Context) ([]*entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Event, 0, len(r.docs))
	for _, doc := range r.docs {
		e, err := entity.EventFromJSON(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *memEventRepo) ListByCenter(ctx context.Context, centerID string) ([]*entity.Event, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []*entity.Event{}
	for _, e := range all {
		if e.Center == centerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memEventRepo) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.docs[id]
	return ok, nil
}
