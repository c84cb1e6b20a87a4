package handler

import (
	"strings"

	"campus-prep/internal/delivery/http/middleware"
	"campus-prep/internal/domain/faq"
	"campus-prep/internal/pkg/response"
	"campus-prep/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type FAQHandler struct {
	uc usecase.FAQUsecase
}

type createFAQRequest struct {
	Question string `json:"question" validate:"required,max=1000"`
	Answer   string `json:"answer" validate:"max=10000"`
	Company  string `json:"company" validate:"max=200"`
	Type     string `json:"type" validate:"required,oneof=technical hr aptitude"`
}

func NewFAQHandler(uc usecase.FAQUsecase) *FAQHandler {
	return &FAQHandler{uc: uc}
}

func (h *FAQHandler) RegisterRoutes(r fiber.Router, authMw, adminOnly fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", authMw, adminOnly, h.Create)
	r.Delete("/:id", authMw, adminOnly, h.Delete)
}

// List returns every FAQ, or only one category when ?type= is given.
func (h *FAQHandler) List(c fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("type"))
	if raw == "" || raw == "all" {
		items, err := h.uc.ListFAQs(c.Context())
		if err != nil {
			return internalError(err)
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, items)
	}

	t := faq.Type(strings.ToLower(raw))
	if !t.Valid() {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid FAQ type", nil, nil)
	}
	items, err := h.uc.ListFAQsByType(c.Context(), t)
	if err != nil {
		return internalError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *FAQHandler) Create(c fiber.Ctx) error {
	var req createFAQRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	created, err := h.uc.AddFAQ(c.Context(), faq.CreateInput{
		Question: strings.TrimSpace(req.Question),
		Answer:   req.Answer,
		Company:  req.Company,
		Type:     faq.Type(req.Type),
	})
	if err != nil {
		return mapDatastoreError(err)
	}
	return response.Created(c, created)
}

func (h *FAQHandler) Delete(c fiber.Ctx) error {
	removed, err := h.uc.DeleteFAQ(c.Context(), c.Params("id"))
	if err != nil {
		return mapDatastoreError(err)
	}
	if !removed {
		return middleware.NewAppError(fiber.StatusNotFound, "FAQ not found", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, "deleted", nil)
}
