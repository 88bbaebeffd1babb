package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/workspace-hub/internal/interface/middleware"
)

type DebugModule struct {
	Limiter redis.Scripter
}

func NewDebugModule(limiter redis.Scripter) *DebugModule { return &DebugModule{Limiter: limiter} }

func (m *DebugModule) Name() string { return "debug" }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// expvar metrics, rate-limited per IP except from private networks
	rl := middleware.RateLimit(m.Limiter, middleware.RateLimitConfig{
		Max:    120,
		Window: time.Minute,
		Key:    middleware.KeyByIP(),
		Allow:  middleware.AllowPrivateIP(),
	})
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
