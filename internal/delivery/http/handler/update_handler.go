package handler

import (
	"strings"

	"campus-prep/internal/delivery/http/middleware"
	"campus-prep/internal/domain/update"
	"campus-prep/internal/pkg/response"
	"campus-prep/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UpdateHandler struct {
	uc usecase.UpdateUsecase
}

type createUpdateRequest struct {
	Title   string `json:"title" validate:"required,max=300"`
	Content string `json:"content" validate:"max=10000"`
	Date    string `json:"date" validate:"max=50"`
	IsNew   bool   `json:"isNew"`
}

func NewUpdateHandler(uc usecase.UpdateUsecase) *UpdateHandler {
	return &UpdateHandler{uc: uc}
}

func (h *UpdateHandler) RegisterRoutes(r fiber.Router, authMw, adminOnly fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", authMw, adminOnly, h.Create)
	r.Delete("/:id", authMw, adminOnly, h.Delete)
}

// List supports ?new=true to keep only fresh updates and ?limit=N to cap
// that list, as the student dashboard does.
func (h *UpdateHandler) List(c fiber.Ctx) error {
	onlyNew, err := parseQueryBool(c, "new")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid query param: new", nil, err)
	}
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil || limit < 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid query param: limit", nil, err)
	}

	if onlyNew {
		items, err := h.uc.ListNewUpdates(c.Context(), limit)
		if err != nil {
			return internalError(err)
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, items)
	}

	items, err := h.uc.ListUpdates(c.Context())
	if err != nil {
		return internalError(err)
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *UpdateHandler) Create(c fiber.Ctx) error {
	var req createUpdateRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	created, err := h.uc.AddUpdate(c.Context(), update.CreateInput{
		Title:   strings.TrimSpace(req.Title),
		Content: req.Content,
		Date:    req.Date,
		IsNew:   req.IsNew,
	})
	if err != nil {
		return mapDatastoreError(err)
	}
	return response.Created(c, created)
}

func (h *UpdateHandler) Delete(c fiber.Ctx) error {
	removed, err := h.uc.DeleteUpdate(c.Context(), c.Params("id"))
	if err != nil {
		return mapDatastoreError(err)
	}
	if !removed {
		return middleware.NewAppError(fiber.StatusNotFound, "Update not found", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, "deleted", nil)
}
