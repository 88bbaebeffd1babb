package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/workspace-hub/internal/container"
	"github.com/oksasatya/workspace-hub/internal/interface/middleware"
)

// NewEngine builds the Gin engine with the global middleware chain and every
// module registered. The route gate runs before routing on all paths.
func NewEngine(c *container.Container) *gin.Engine {
	cfg := c.Config
	origins := cfg.CORSOrigins()
	if len(origins) == 0 {
		origins = []string{cfg.AppBaseURL}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}
	r.Use(middleware.RouteGate(middleware.GateConfig{
		PublicPaths:    cfg.PublicPathList(),
		BypassPrefixes: cfg.GateBypassPrefixList(),
		SignInPath:     cfg.SignInPath,
	}))

	reg := NewRegistry(r, c.Logger)
	InitModules(reg, c)
	reg.RegisterAll()
	return r
}
