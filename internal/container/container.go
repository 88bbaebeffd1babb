package container

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/workspace-hub/config"
	"github.com/oksasatya/workspace-hub/internal/application"
	"github.com/oksasatya/workspace-hub/internal/domain/repository"
	pginfra "github.com/oksasatya/workspace-hub/internal/infrastructure/postgres"
	"github.com/oksasatya/workspace-hub/pkg/helpers"
)

// Container holds the process-wide components. It is built once in main,
// handed to the router and closed on shutdown.
type Container struct {
	Config    *config.Config
	Logger    *logrus.Logger
	PG        *pgxpool.Pool
	Redis     *redis.Client
	JWT       *helpers.JWTManager
	Publisher *helpers.RabbitPublisher
	Users     repository.UserRepository
}

// New opens Postgres, Redis and (when mail is enabled) RabbitMQ. Postgres is
// required; an unreachable broker only disables welcome emails.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	c := &Container{
		Config: cfg,
		Logger: logger,
		PG:     pool,
		Redis:  helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB),
		JWT:    helpers.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL),
		Users:  pginfra.NewUserRepository(pool, cfg.BcryptCost),
	}
	if err := helpers.PingRedis(ctx, c.Redis); err != nil {
		logger.WithError(err).Warn("redis unreachable; rate limits fail open")
	}
	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unreachable; welcome emails disabled")
		} else {
			c.Publisher = pub
		}
	}
	helpers.LogInfo(logger, "container ready", logrus.Fields{
		"db_max_conns": cfg.DBMaxConns,
		"redis":        cfg.RedisAddr,
		"mail_enabled": c.Publisher != nil,
	})
	return c, nil
}

// Limiter returns the rate-limit store, or nil when none is configured.
func (c *Container) Limiter() redis.Scripter {
	if c.Redis == nil {
		return nil
	}
	return c.Redis
}

// Jobs returns the job publisher, or nil when no broker is connected.
func (c *Container) Jobs() application.JobPublisher {
	if c.Publisher == nil {
		return nil
	}
	return c.Publisher
}

// UserService builds the user service over the container's components.
func (c *Container) UserService() *application.UserService {
	return application.NewUserService(c.Users, c.Logger, c.Jobs(), application.WelcomeMail{
		Enabled:   c.Config.MailSendEnabled,
		AppName:   c.Config.AppName,
		SignInURL: c.Config.AppBaseURL + c.Config.SignInPath,
	})
}

// Close releases every connection the container opened.
func (c *Container) Close() {
	c.Publisher.Close()
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.PG != nil {
		c.PG.Close()
	}
}
