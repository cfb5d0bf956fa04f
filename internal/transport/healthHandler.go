package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HealthCheck reports whether one backend is reachable.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]HealthCheck
}

// NewHealthHandler runs checks on every /health call. Backends that are
// switched off should simply be left out.
func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) Health(c *gin.Context) {
	status := http.StatusOK
	components := make(gin.H, len(h.checks))

	for name, check := range h.checks {
		if err := check(c.Request.Context()); err != nil {
			logrus.WithError(err).WithField("component", name).Warn("Health check failed")
			components[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		components[name] = "ok"
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}

	c.JSON(status, gin.H{
		"status":     state,
		"components": components,
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}
