package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/janata-app/janata-api/internal/domain/entity"
	handlers "github.com/janata-app/janata-api/internal/interface/http"
	"github.com/janata-app/janata-api/internal/interface/middleware"
)

// EventModule registers event lifecycle routes plus endorsement, attendance,
// search, and banner upload.
type EventModule struct {
	Handler *handlers.EventHandler
	Auth    gin.HandlerFunc
	Redis   *redis.Client
}

func NewEventModule(h *handlers.EventHandler, auth gin.HandlerFunc, rdb *redis.Client) *EventModule {
	return &EventModule{Handler: h, Auth: auth, Redis: rdb}
}

func (m *EventModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	searchLimiter := middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.GET("/events", readLimiter, m.Handler.List)
	rg.GET("/events/search", searchLimiter, m.Handler.Search)
	rg.GET("/events/:id", readLimiter, m.Handler.Get)

	auth := rg.Group("/events")
	auth.Use(m.Auth)
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUsername(), nil))
	{
		auth.POST("", m.Handler.Create)
		auth.PUT("/:id/description", m.Handler.Update)
		auth.POST("/:id/endorse", m.Handler.Endorse)
		auth.POST("/:id/register", m.Handler.Register)
		auth.DELETE("/:id/register", m.Handler.Unregister)
		auth.POST("/:id/banner", m.Handler.UploadBanner)
		auth.DELETE("/:id",
			middleware.RequireCapability(entity.CapDeleteRecords), m.Handler.Delete)
	}
}
