package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/janata-app/janata-api/internal/domain/entity"
	"github.com/janata-app/janata-api/internal/domain/repository"
	"github.com/janata-app/janata-api/pkg/helpers"
	"github.com/janata-app/janata-api/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
)

// UserService owns account lifecycle: registration, login sessions, profile
// updates, and the admin-gated verify/points operations.
type UserService struct {
	Users   repository.UserRepository
	Centers repository.CenterRepository
	JWT     *helpers.JWTManager
	Redis   *redis.Client
	Logger  *logrus.Logger
	Pub     *helpers.RabbitPublisher
}

func NewUserService(users repository.UserRepository, centers repository.CenterRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, pub *helpers.RabbitPublisher) *UserService {
	return &UserService{Users: users, Centers: centers, JWT: jwt, Redis: rdb, Logger: logger, Pub: pub}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func sessionKey(username string) string {
	return "user:session:" + username
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Register creates a new member account. When the user affiliates with a
// center, the center's member count follows.
func (s *UserService) Register(ctx context.Context, username, email, password, centerID string) (*entity.User, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	if centerID != "" && centerID != entity.NoCenter {
		if _, err := s.Centers.GetByID(ctx, centerID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, repository.ErrNotFound
			}
			return nil, err
		}
	}
	u := entity.NewUser(username, email, hash, centerID)
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	if u.CenterAffiliation != entity.NoCenter {
		if c, err := s.Centers.GetByID(ctx, u.CenterAffiliation); err == nil {
			c.AddMember()
			if uErr := s.Centers.Update(ctx, c); uErr != nil && s.Logger != nil {
				s.Logger.WithError(uErr).WithField("center", c.CenterID).Warn("member count update failed")
			}
		}
	}
	return u, nil
}

// Authenticate validates username/password without issuing tokens.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.Username, u.Role, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.Username, u.Role, sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(u.Username)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"username":   u.Username,
			"role":       string(u.Role),
			"email":      u.Email,
			"sid":        sid,
			"logged_in":  true,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh rotates the session id and both tokens after validating the
// refresh token against the live session.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	u, err := s.Users.GetByUsername(ctx, claims.Username)
	if err != nil || u == nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, sessionKey(u.Username)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.Username, nil
}

// Logout drops the Redis session.
func (s *UserService) Logout(ctx context.Context, username string) {
	if s.Redis != nil {
		s.Redis.Del(ctx, sessionKey(username))
	}
}

func (s *UserService) GetProfile(ctx context.Context, username string) (*entity.User, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

type UpdateProfileInput struct {
	Email             string
	CenterAffiliation string
}

// UpdateProfile edits the mutable profile fields. Changing the center
// affiliation moves the membership between center counters.
func (s *UserService) UpdateProfile(ctx context.Context, username string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.CenterAffiliation != "" && in.CenterAffiliation != u.CenterAffiliation {
		if in.CenterAffiliation != entity.NoCenter {
			if _, err := s.Centers.GetByID(ctx, in.CenterAffiliation); err != nil {
				return nil, err
			}
		}
		s.moveMembership(ctx, u.CenterAffiliation, in.CenterAffiliation)
		u.CenterAffiliation = in.CenterAffiliation
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) moveMembership(ctx context.Context, from, to string) {
	if from != "" && from != entity.NoCenter {
		if c, err := s.Centers.GetByID(ctx, from); err == nil {
			c.RemoveMember()
			_ = s.Centers.Update(ctx, c)
		}
	}
	if to != "" && to != entity.NoCenter {
		if c, err := s.Centers.GetByID(ctx, to); err == nil {
			c.AddMember()
			_ = s.Centers.Update(ctx, c)
		}
	}
}

// Verify raises the target user's verification level. The actor must hold
// CapVerifyUsers; downgrades are rejected by the entity.
func (s *UserService) Verify(ctx context.Context, actorUsername, targetUsername string, level entity.VerificationLevel) (*entity.User, error) {
	actor, err := s.Users.GetByUsername(ctx, actorUsername)
	if err != nil || actor == nil {
		return nil, ErrUserNotFound
	}
	target, err := s.Users.GetByUsername(ctx, targetUsername)
	if err != nil || target == nil {
		return nil, ErrUserNotFound
	}
	if err := target.Verify(level, actor); err != nil {
		return nil, err
	}
	if err := s.Users.Update(ctx, target); err != nil {
		return nil, err
	}
	s.notify(ctx, target, mailer.UserVerified, map[string]any{
		"Name":  target.Username,
		"Level": level.String(),
	})
	return target, nil
}

// AwardPoints adds points to the target user. The actor must hold
// CapAwardPoints; negative amounts are rejected by the entity.
func (s *UserService) AwardPoints(ctx context.Context, actorUsername, targetUsername string, amount int) (int, error) {
	actor, err := s.Users.GetByUsername(ctx, actorUsername)
	if err != nil || actor == nil {
		return 0, ErrUserNotFound
	}
	if !actor.Role.Has(entity.CapAwardPoints) {
		return 0, entity.ErrNotAuthorized
	}
	target, err := s.Users.GetByUsername(ctx, targetUsername)
	if err != nil || target == nil {
		return 0, ErrUserNotFound
	}
	total, err := target.AddPoints(amount)
	if err != nil {
		return target.Points, err
	}
	if err := s.Users.Update(ctx, target); err != nil {
		return total, err
	}
	return total, nil
}

func (s *UserService) notify(ctx context.Context, u *entity.User, template string, data map[string]any) {
	if s.Pub == nil || u.Email == "" {
		return
	}
	job := mailer.EmailJob{To: u.Email, Template: template, Data: data}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("template", template).Warn("notification publish failed")
	}
}
