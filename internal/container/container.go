package container

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/janata-app/janata-api/config"
	"github.com/janata-app/janata-api/internal/infrastructure/postgres"
	"github.com/janata-app/janata-api/pkg/helpers"
	"github.com/janata-app/janata-api/pkg/mailer"
)

// Container holds the shared infrastructure clients. It is built once in main
// and handed to the modules that need it; nothing reaches for it through
// package state.
type Container struct {
	Cfg    *config.Config
	Logger *logrus.Logger

	PG    *pgxpool.Pool
	Redis *redis.Client
	JWT   *helpers.JWTManager

	ES      *elasticsearch.Client
	GCS     *storage.Client
	Rabbit  *helpers.RabbitPublisher
	Mailgun *mailer.Mailgun
}

// Build constructs every client the API server needs. Postgres and Redis are
// required; Elasticsearch, GCS, RabbitMQ, and Mailgun are optional and their
// absence is logged rather than fatal, the dependent features degrade.
func Build(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{
		Cfg:    cfg,
		Logger: logger,
		JWT:    helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL),
	}

	pool, err := postgres.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		return nil, err
	}
	c.PG = pool

	c.Redis = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := c.Redis.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Warn("redis unreachable, sessions and rate limits degraded")
	}

	if es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass); err != nil {
		logger.WithError(err).Warn("elasticsearch client init failed, search disabled")
	} else {
		c.ES = es
	}

	if cfg.GCSBucket != "" {
		if gcs, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath); err != nil {
			logger.WithError(err).Warn("gcs client init failed, banner uploads disabled")
		} else {
			c.GCS = gcs
		}
	}

	if pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQNotifyQueue); err != nil {
		logger.WithError(err).Warn("rabbitmq unreachable, notifications disabled")
	} else {
		c.Rabbit = pub
	}

	if cfg.MailgunDomain != "" && cfg.MailgunAPIKey != "" {
		c.Mailgun = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	}

	return c, nil
}

// Close releases every held client. Safe on a partially built container.
func (c *Container) Close() {
	if c.Rabbit != nil {
		c.Rabbit.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.GCS != nil {
		_ = c.GCS.Close()
	}
	if c.PG != nil {
		c.PG.Close()
	}
}
