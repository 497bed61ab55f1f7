package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/janata-app/janata-api/pkg/response"
)

func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func normalizePath(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

// KeyFunc builds a rate-limit key from the request.
type KeyFunc func(c *gin.Context) string

// KeyByIP limits by client IP only.
func KeyByIP() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:ip:" + ipFromCtx(c)
	}
}

// KeyByIPAndPath limits by client IP and route path.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:path:" + normalizePath(c) + ":ip:" + ipFromCtx(c)
	}
}

// KeyByUsername limits by authenticated username, falling back to IP for
// anonymous requests.
func KeyByUsername() KeyFunc {
	return func(c *gin.Context) string {
		name := c.GetString(CtxUsernameKey)
		if name == "" {
			return "rl:user:anon:ip:" + ipFromCtx(c)
		}
		return "rl:user:" + name
	}
}

// Atomic INCR + EXPIRE on first hit.
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// AllowFunc returns true to bypass the limit for a request.
type AllowFunc func(*gin.Context) bool

// RateLimit counts requests per key in Redis and rejects with 429 plus
// standard X-RateLimit headers once the window budget is spent. Redis errors
// fail open.
func RateLimit(rdb *redis.Client, max int, window time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if rdb == nil || max <= 0 || window <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if allow != nil && allow(c) {
			c.Next()
			return
		}
		if strings.EqualFold(c.Request.Method, http.MethodOptions) {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := keyFn(c)

		countI, err := incrExpireScript.Run(ctx, rdb, []string{key}, window.Milliseconds()).Result()
		if err != nil {
			c.Next()
			return
		}
		count, _ := countI.(int64)

		ttl, _ := rdb.TTL(ctx, key).Result()
		resetSec := 0
		if ttl > 0 {
			resetSec = int(ttl.Seconds())
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max-int(count)))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if int(count) > max {
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			response.AbortError[any](c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}

// AllowPrivateIP bypasses the limit for loopback and RFC1918 clients.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}
