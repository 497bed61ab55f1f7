package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/janata-app/janata-api/internal/domain/entity"
	handlers "github.com/janata-app/janata-api/internal/interface/http"
	"github.com/janata-app/janata-api/internal/interface/middleware"
)

// UserModule registers account and profile routes.
// Public: POST /api/register, POST /api/login, POST /api/refresh
// Protected: POST /api/logout, GET/PUT /api/profile
// Admin: POST /api/users/:username/verify, POST /api/users/:username/points
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    gin.HandlerFunc
	Redis   *redis.Client
}

func NewUserModule(h *handlers.UserHandler, auth gin.HandlerFunc, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Auth: auth, Redis: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/")
	auth.Use(m.Auth)
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUsername(), nil))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)

		auth.POST("/users/:username/verify",
			middleware.RequireCapability(entity.CapVerifyUsers), m.Handler.Verify)
		auth.POST("/users/:username/points",
			middleware.RequireCapability(entity.CapAwardPoints), m.Handler.AwardPoints)
	}
}
