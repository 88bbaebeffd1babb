package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/workspace-hub/internal/interface/http"
	"github.com/oksasatya/workspace-hub/internal/interface/middleware"
	"github.com/oksasatya/workspace-hub/pkg/helpers"
)

// UserModule wires user HTTP handlers into routes.
// Public: POST /api/users (registration)
// Protected: listing, search, stats, lookup and reads under /api/users; per-id
// mutations are limited to the signed-in user
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
	Limiter redis.Scripter
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager, limiter redis.Scripter) *UserModule {
	return &UserModule{Handler: h, JWT: jwt, Limiter: limiter}
}

func (m *UserModule) Name() string { return "users" }

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// 10 registrations/min per IP
	registerLimiter := middleware.RateLimit(m.Limiter, middleware.RateLimitConfig{Max: 10, Window: time.Minute, Key: middleware.KeyByIPAndPath()})
	rg.POST("/users", registerLimiter, m.Handler.Register)

	auth := rg.Group("/users")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(m.Limiter, middleware.RateLimitConfig{Max: 120, Window: time.Minute, Key: middleware.KeyByUserID()}))
	{
		auth.GET("", m.Handler.List)
		auth.GET("/search", m.Handler.Search)
		auth.GET("/stats", m.Handler.Stats)
		auth.GET("/lookup", m.Handler.Lookup)
		auth.GET("/:id", m.Handler.Get)
	}

	// mutations only on the caller's own account
	own := auth.Group("/:id", middleware.OwnerOnly("id"))
	{
		own.PATCH("", m.Handler.Update)
		own.PATCH("/profile", m.Handler.UpdateProfile)
		own.DELETE("", m.Handler.Delete)
		own.POST("/deactivate", m.Handler.Deactivate)
		own.POST("/reactivate", m.Handler.Reactivate)
	}
}
