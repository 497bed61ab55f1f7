package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/janata-app/janata-api/internal/interface/middleware"
)

// DebugModule exposes expvar runtime counters, rate-limited per IP.
type DebugModule struct {
	Redis *redis.Client
}

func NewDebugModule(rdb *redis.Client) *DebugModule { return &DebugModule{Redis: rdb} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
