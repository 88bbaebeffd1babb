package router

import (
	"context"
	"errors"

	"github.com/oksasatya/workspace-hub/internal/container"
	pginfra "github.com/oksasatya/workspace-hub/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/workspace-hub/internal/interface/http"
	"github.com/oksasatya/workspace-hub/internal/router/modules"
	"github.com/oksasatya/workspace-hub/pkg/helpers"
)

func healthChecks(c *container.Container) map[string]handlers.Pinger {
	checks := map[string]handlers.Pinger{}
	if c.PG != nil {
		checks["postgres"] = func(ctx context.Context) error { return pginfra.Ping(ctx, c.PG) }
	}
	if c.Redis != nil {
		checks["redis"] = func(ctx context.Context) error { return helpers.PingRedis(ctx, c.Redis) }
	}
	if c.Publisher != nil {
		checks["rabbitmq"] = func(context.Context) error {
			if !c.Publisher.Alive() {
				return errors.New("channel closed")
			}
			return nil
		}
	}
	return checks
}

// InitModules builds the handlers from c and adds every module to r.
func InitModules(r *Registry, c *container.Container) {
	svc := c.UserService()
	cfg := c.Config

	users := handlers.NewUserHandler(svc, c.Logger)
	auth := handlers.NewAuthHandler(svc, c.JWT, c.Logger, cfg.CookieDomain, cfg.CookieSecure)
	health := handlers.NewHealthHandler(c.Logger, healthChecks(c))

	r.Add(modules.NewHealthModule(health))
	r.Add(modules.NewAuthModule(auth, c.JWT, c.Limiter()))
	r.Add(modules.NewUserModule(users, c.JWT, c.Limiter()))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Limiter()))
	}
}
