package v1

import (
	"campus-prep/internal/delivery/http/handler"
	"campus-prep/internal/delivery/http/middleware"
	"campus-prep/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Profile   *handler.ProfileHandler
	Companies *handler.CompanyHandler
	FAQs      *handler.FAQHandler
	Updates   *handler.UpdateHandler
	Users     *handler.AdminUserHandler
}

func Register(r fiber.Router, h Handlers, authMw fiber.Handler) {
	if r == nil {
		return
	}

	adminOnly := middleware.RequireRole(user.RoleAdmin)

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"), authMw)
	}
	if h.Profile != nil {
		h.Profile.RegisterRoutes(r.Group("/me", authMw))
	}

	RegisterCatalog(r, h, authMw, adminOnly)
	RegisterUsers(r, h.Users, authMw, adminOnly)
}
