package v1

import (
	"campus-prep/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterUsers(r fiber.Router, userHandler *handler.AdminUserHandler, authMw, adminOnly fiber.Handler) {
	if r == nil {
		return
	}
	if userHandler == nil {
		return
	}

	userHandler.RegisterRoutes(r, authMw, adminOnly)
}
