package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/janata-app/janata-api/internal/domain/entity"
	handlers "github.com/janata-app/janata-api/internal/interface/http"
	"github.com/janata-app/janata-api/internal/interface/middleware"
)

// CenterModule registers center CRUD, proximity lookup, and the verify and
// delete admin routes.
type CenterModule struct {
	Handler *handlers.CenterHandler
	Auth    gin.HandlerFunc
	Redis   *redis.Client
}

func NewCenterModule(h *handlers.CenterHandler, auth gin.HandlerFunc, rdb *redis.Client) *CenterModule {
	return &CenterModule{Handler: h, Auth: auth, Redis: rdb}
}

func (m *CenterModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/centers", readLimiter, m.Handler.List)
	rg.GET("/centers/nearby", readLimiter, m.Handler.Nearby)
	rg.GET("/centers/:id", readLimiter, m.Handler.Get)

	auth := rg.Group("/centers")
	auth.Use(m.Auth)
	auth.Use(middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByUsername(), nil))
	{
		auth.POST("", m.Handler.Create)
		auth.PUT("/:id", m.Handler.Update)
		auth.POST("/:id/verify",
			middleware.RequireCapability(entity.CapVerifyCenters), m.Handler.Verify)
		auth.DELETE("/:id",
			middleware.RequireCapability(entity.CapDeleteRecords), m.Handler.Delete)
	}
}
