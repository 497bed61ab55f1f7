package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/janata-app/janata-api/internal/domain/entity"
	"github.com/janata-app/janata-api/pkg/helpers"
	"github.com/janata-app/janata-api/pkg/response"
)

const (
	CtxUsernameKey = "username"
	CtxRoleKey     = "role"
)

// Auth validates the access token and checks that a live session with a
// matching session id exists in Redis. It sets username and role in the Gin
// context on success.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.AbortError[any](c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortError[any](c, http.StatusUnauthorized, "invalid access token", err.Error())
			return
		}

		if rdb != nil {
			key := "user:session:" + claims.Username
			data, err := rdb.HGetAll(c.Request.Context(), key).Result()
			if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
				response.AbortError[any](c, http.StatusUnauthorized, "session not found", nil)
				return
			}
		}

		c.Set(CtxUsernameKey, claims.Username)
		c.Set(CtxRoleKey, string(claims.Role))
		c.Next()
	}
}

// RequireCapability gates a route on the authenticated identity's role.
// Must run after Auth.
func RequireCapability(cap entity.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := entity.Role(c.GetString(CtxRoleKey))
		if !role.Has(cap) {
			response.AbortError[any](c, http.StatusForbidden, "insufficient privileges", nil)
			return
		}
		c.Next()
	}
}
