package routes

import (
	"campus-prep/internal/delivery/http/handler"
	v1 "campus-prep/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	v1     v1.Handlers
	authMw fiber.Handler
	ws     fiber.Handler
}

// NewRegistry wires the route tree. ws may be nil when the change feed is
// disabled.
func NewRegistry(health *handler.HealthHandler, handlers v1.Handlers, authMw fiber.Handler, ws fiber.Handler) *Registry {
	return &Registry{health: health, v1: handlers, authMw: authMw, ws: ws}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerWS(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health == nil {
		return
	}
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.ws == nil {
		return
	}
	app.Get("/ws", r.ws)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.v1, r.authMw)
}
