package router

import (
	"github.com/janata-app/janata-api/internal/application"
	"github.com/janata-app/janata-api/internal/container"
	"github.com/janata-app/janata-api/internal/infrastructure/postgres"
	handlers "github.com/janata-app/janata-api/internal/interface/http"
	"github.com/janata-app/janata-api/internal/interface/middleware"
	"github.com/janata-app/janata-api/internal/router/modules"
)

// InitModules builds repositories, services, and handlers from the container
// and registers every feature module. Called once at startup.
func InitModules(r *Registry, c *container.Container) {
	users := postgres.NewUserRepository(c.PG)
	centers := postgres.NewCenterRepository(c.PG)
	events := postgres.NewEventRepository(c.PG)

	userSvc := application.NewUserService(users, centers, c.JWT, c.Redis, c.Logger, c.Rabbit)
	centerSvc := application.NewCenterService(centers, users, c.Redis, c.Logger)
	eventSvc := application.NewEventService(events, users, centers, c.Logger, c.Rabbit,
		c.ES, c.Cfg.ESEventsIndex, c.GCS, c.Cfg.GCSBucket)

	userH := handlers.NewUserHandler(userSvc, c.Logger, c.Cfg.CookieDomain, c.Cfg.CookieSecure)
	centerH := handlers.NewCenterHandler(centerSvc, c.Logger)
	eventH := handlers.NewEventHandler(eventSvc, c.Logger)

	auth := middleware.Auth(c.Redis, c.JWT)

	r.Add(modules.NewUserModule(userH, auth, c.Redis))
	r.Add(modules.NewCenterModule(centerH, auth, c.Redis))
	r.Add(modules.NewEventModule(eventH, auth, c.Redis))
	if c.Cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}
