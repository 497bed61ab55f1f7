package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/janata-app/janata-api/internal/domain/entity"
)

// JWTManager handles generation and validation of access/refresh tokens.
type JWTManager struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func NewJWTManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		AccessSecret:  []byte(accessSecret),
		RefreshSecret: []byte(refreshSecret),
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
	}
}

// Claims carries the authenticated identity: username, role, and the current
// session id. Authorization checks read the role, never a hard-coded name.
type Claims struct {
	Username  string      `json:"sub_name"`
	Role      entity.Role `json:"role"`
	SessionID string      `json:"sid"`
	jwt.RegisteredClaims
}

func (m *JWTManager) GenerateAccessToken(username string, role entity.Role, sessionID string) (string, time.Time, error) {
	return m.generate(username, role, sessionID, m.AccessSecret, m.AccessTTL)
}

func (m *JWTManager) GenerateRefreshToken(username string, role entity.Role, sessionID string) (string, time.Time, error) {
	return m.generate(username, role, sessionID, m.RefreshSecret, m.RefreshTTL)
}

func (m *JWTManager) generate(username string, role entity.Role, sessionID string, secret []byte, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().Add(ttl)
	claims := &Claims{
		Username:  username,
		Role:      role,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(secret)
	return s, exp, err
}

func (m *JWTManager) ParseAccessToken(tokenStr string) (*Claims, error) {
	return parseToken(tokenStr, m.AccessSecret)
}

func (m *JWTManager) ParseRefreshToken(tokenStr string) (*Claims, error) {
	return parseToken(tokenStr, m.RefreshSecret)
}

func parseToken(tokenStr string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
