package application

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/janata-app/janata-api/internal/domain/entity"
	"github.com/janata-app/janata-api/internal/domain/identity"
	"github.com/janata-app/janata-api/internal/domain/repository"
	"github.com/janata-app/janata-api/pkg/geo"
	"github.com/janata-app/janata-api/pkg/helpers"
)

const centerCacheTTL = time.Minute

// CenterService owns center lifecycle and the nearby-centers lookup. Single
// reads go through a short-lived Redis cache; every mutation drops the entry.
type CenterService struct {
	Centers repository.CenterRepository
	Users   repository.UserRepository
	Redis   *redis.Client
	Logger  *logrus.Logger
}

func NewCenterService(centers repository.CenterRepository, users repository.UserRepository, rdb *redis.Client, logger *logrus.Logger) *CenterService {
	return &CenterService{Centers: centers, Users: users, Redis: rdb, Logger: logger}
}

func centerCacheKey(id string) string {
	return "center:doc:" + id
}

func (s *CenterService) cacheDrop(ctx context.Context, id string) {
	if s.Redis != nil {
		s.Redis.Del(ctx, centerCacheKey(id))
	}
}

// Create assigns a unique center id and persists the record. Legacy numeric
// ids are still produced on request; new centers get UUIDs. The existence
// probe is an optimization, the insert's conflict path is the guarantee.
func (s *CenterService) Create(ctx context.Context, name string, location geo.Point, legacyID bool) (*entity.Center, error) {
	c := entity.NewCenter(name, location)

	gen := identity.NewUUID
	if legacyID {
		gen = identity.NewNumericID
	}
	for {
		id, err := gen(ctx, s.Centers.Exists)
		if err != nil {
			return nil, err
		}
		c.CenterID = id
		err = s.Centers.Create(ctx, c)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, repository.ErrAlreadyExists) {
			return nil, err
		}
		// lost the id race, draw again
	}
}

func (s *CenterService) Get(ctx context.Context, id string) (*entity.Center, error) {
	if s.Redis != nil {
		var cached entity.Center
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, centerCacheKey(id), &cached); err == nil && ok {
			return &cached, nil
		}
	}
	c, err := s.Centers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, centerCacheKey(id), c, centerCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("center", id).Debug("center cache write failed")
		}
	}
	return c, nil
}

func (s *CenterService) List(ctx context.Context) ([]*entity.Center, error) {
	return s.Centers.List(ctx)
}

// NearbyCenter pairs a center with its straight-line distance from the query
// point.
type NearbyCenter struct {
	Center     *entity.Center `json:"center"`
	DistanceKm float64        `json:"distanceKm"`
}

// Nearby returns centers within radiusKm of the point, closest first.
func (s *CenterService) Nearby(ctx context.Context, from geo.Point, radiusKm float64) ([]NearbyCenter, error) {
	all, err := s.Centers.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []NearbyCenter{}
	for _, c := range all {
		d := geo.DistanceKm(from, c.Location)
		if d <= radiusKm {
			out = append(out, NearbyCenter{Center: c, DistanceKm: d})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out, nil
}

type UpdateCenterInput struct {
	Name     string
	Location *geo.Point
}

func (s *CenterService) Update(ctx context.Context, id string, in UpdateCenterInput) (*entity.Center, error) {
	c, err := s.Centers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		c.Name = in.Name
	}
	if in.Location != nil {
		c.Location = *in.Location
	}
	if err := s.Centers.Update(ctx, c); err != nil {
		return nil, err
	}
	s.cacheDrop(ctx, id)
	return c, nil
}

// Verify flips the center's verified flag, gated on the actor's capability.
func (s *CenterService) Verify(ctx context.Context, actorUsername, id string) (*entity.Center, error) {
	actor, err := s.Users.GetByUsername(ctx, actorUsername)
	if err != nil || actor == nil {
		return nil, ErrUserNotFound
	}
	c, err := s.Centers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Verify(actor); err != nil {
		return nil, err
	}
	if err := s.Centers.Update(ctx, c); err != nil {
		return nil, err
	}
	s.cacheDrop(ctx, id)
	return c, nil
}

// Delete removes a center, gated on CapDeleteRecords.
func (s *CenterService) Delete(ctx context.Context, actorUsername, id string) error {
	actor, err := s.Users.GetByUsername(ctx, actorUsername)
	if err != nil || actor == nil {
		return ErrUserNotFound
	}
	if !actor.Role.Has(entity.CapDeleteRecords) {
		return entity.ErrNotAuthorized
	}
	if err := s.Centers.Delete(ctx, id); err != nil {
		return err
	}
	s.cacheDrop(ctx, id)
	return nil
}
