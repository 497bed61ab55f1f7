package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/janata-app/janata-api/config"
	"github.com/janata-app/janata-api/internal/container"
	"github.com/janata-app/janata-api/internal/interface/middleware"
	"github.com/janata-app/janata-api/internal/router"
	"github.com/janata-app/janata-api/pkg/helpers"
	"github.com/janata-app/janata-api/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	if err := runMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	c, err := container.Build(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to build infrastructure: %v", err)
	}
	defer c.Close()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}

	reg := router.NewRegistry(r)
	router.InitModules(reg, c)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

func runMigrations(dsn, migrationsDir string, logger *logrus.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}
