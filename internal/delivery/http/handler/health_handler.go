package handler

import (
	"context"
	"sort"
	"time"

	"campus-prep/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Checker reports whether a backing service is reachable.
type Checker func(ctx context.Context) error

type HealthHandler struct {
	appName  string
	checkers map[string]Checker
	timeout  time.Duration
}

func NewHealthHandler(appName string, checkers map[string]Checker) *HealthHandler {
	return &HealthHandler{appName: appName, checkers: checkers, timeout: 2 * time.Second}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checkers))
	for name := range h.checkers {
		names = append(names, name)
	}
	sort.Strings(names)

	deps := make(map[string]string, len(names))
	healthy := true
	for _, name := range names {
		if err := h.checkers[name](ctx); err != nil {
			deps[name] = err.Error()
			healthy = false
			continue
		}
		deps[name] = "ok"
	}

	data := map[string]any{
		"app":          h.appName,
		"dependencies": deps,
	}
	if !healthy {
		return response.Error(c, fiber.StatusServiceUnavailable, "degraded", data)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
