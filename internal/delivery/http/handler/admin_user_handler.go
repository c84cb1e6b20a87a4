package handler

import (
	"campus-prep/internal/delivery/http/dto"
	"campus-prep/internal/delivery/http/middleware"
	"campus-prep/internal/pkg/response"
	"campus-prep/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// AdminUserHandler lists and removes registered students.
type AdminUserHandler struct {
	uc usecase.UserUsecase
}

func NewAdminUserHandler(uc usecase.UserUsecase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc}
}

func (h *AdminUserHandler) RegisterRoutes(r fiber.Router, authMw, adminOnly fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/users", authMw, adminOnly, h.List)
	r.Get("/users/:id", authMw, adminOnly, h.Get)
	r.Delete("/users/:id", authMw, adminOnly, h.Delete)
	r.Get("/admin/summary", authMw, adminOnly, h.Summary)
}

func (h *AdminUserHandler) List(c fiber.Ctx) error {
	users, err := h.uc.ListUsers(c.Context())
	if err != nil {
		return internalError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserListResponse(users))
}

func (h *AdminUserHandler) Get(c fiber.Ctx) error {
	u, ok, err := h.uc.GetUserByID(c.Context(), c.Params("id"))
	if err != nil {
		return internalError(err)
	}
	if !ok {
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(u))
}

func (h *AdminUserHandler) Delete(c fiber.Ctx) error {
	removed, err := h.uc.DeleteUser(c.Context(), c.Params("id"))
	if err != nil {
		return mapDatastoreError(err)
	}
	if !removed {
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, "deleted", nil)
}

func (h *AdminUserHandler) Summary(c fiber.Ctx) error {
	sum, err := h.uc.Summarize(c.Context())
	if err != nil {
		return internalError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, sum)
}
