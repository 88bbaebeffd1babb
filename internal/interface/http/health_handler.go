package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/workspace-hub/pkg/response"
)

// Pinger reports whether a dependency is reachable.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	Checks map[string]Pinger
	Logger *logrus.Logger
}

func NewHealthHandler(logger *logrus.Logger, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{Checks: checks, Logger: logger}
}

// Health runs every check and answers 503 when any fails.
func (h *HealthHandler) Health(c *gin.Context) {
	status := map[string]string{}
	healthy := true
	for name, ping := range h.Checks {
		if err := ping(c.Request.Context()); err != nil {
			healthy = false
			status[name] = "down"
			if h.Logger != nil {
				h.Logger.WithError(err).WithField("check", name).Warn("health check failed")
			}
			continue
		}
		status[name] = "up"
	}
	if !healthy {
		response.Error[any](c, http.StatusServiceUnavailable, "unhealthy", status)
		return
	}
	response.Success(c, http.StatusOK, status, "ok", nil)
}
