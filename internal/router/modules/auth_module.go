package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/workspace-hub/internal/interface/http"
	"github.com/oksasatya/workspace-hub/internal/interface/middleware"
	"github.com/oksasatya/workspace-hub/pkg/helpers"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
	Limiter redis.Scripter
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager, limiter redis.Scripter) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt, Limiter: limiter}
}

func (m *AuthModule) Name() string { return "auth" }

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	signInLimiter := middleware.RateLimit(m.Limiter, middleware.RateLimitConfig{Max: 10, Window: time.Minute, Key: middleware.KeyByIP()})

	rg.POST("/auth/sign-in", signInLimiter, m.Handler.SignIn)
	rg.POST("/auth/sign-out", m.Handler.SignOut)
	rg.GET("/me", middleware.Auth(m.JWT), m.Handler.Me)
}
