package handler

import (
	"errors"
	"strings"

	"campus-prep/internal/datastore"
	"campus-prep/internal/delivery/http/middleware"
	"campus-prep/internal/domain/company"
	"campus-prep/internal/pkg/response"
	"campus-prep/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CompanyHandler struct {
	uc usecase.CompanyUsecase
}

type createCompanyRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Logo        string   `json:"logo" validate:"max=500"`
	Description string   `json:"description" validate:"max=5000"`
	Eligibility string   `json:"eligibility" validate:"max=1000"`
	VisitDate   string   `json:"visitDate" validate:"max=50"`
	Roles       []string `json:"roles" validate:"max=50"`
}

func NewCompanyHandler(uc usecase.CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// RegisterRoutes mounts public reads and admin-only writes. authMw loads
// the session; adminOnly checks its role.
func (h *CompanyHandler) RegisterRoutes(r fiber.Router, authMw, adminOnly fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/", authMw, adminOnly, h.Create)
	r.Delete("/:id", authMw, adminOnly, h.Delete)
}

func (h *CompanyHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListCompanies(c.Context())
	if err != nil {
		return internalError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *CompanyHandler) Get(c fiber.Ctx) error {
	item, ok, err := h.uc.GetCompanyByID(c.Context(), c.Params("id"))
	if err != nil {
		return internalError(err)
	}
	if !ok {
		return middleware.NewAppError(fiber.StatusNotFound, "Company not found", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, item)
}

func (h *CompanyHandler) Create(c fiber.Ctx) error {
	var req createCompanyRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	created, err := h.uc.AddCompany(c.Context(), company.CreateInput{
		Name:        strings.TrimSpace(req.Name),
		Logo:        req.Logo,
		Description: req.Description,
		Eligibility: req.Eligibility,
		VisitDate:   req.VisitDate,
		Roles:       cleanRoles(req.Roles),
	})
	if err != nil {
		return mapDatastoreError(err)
	}
	return response.Created(c, created)
}

func (h *CompanyHandler) Delete(c fiber.Ctx) error {
	removed, err := h.uc.DeleteCompany(c.Context(), c.Params("id"))
	if err != nil {
		return mapDatastoreError(err)
	}
	if !removed {
		return middleware.NewAppError(fiber.StatusNotFound, "Company not found", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, "deleted", nil)
}

// cleanRoles trims each role and drops blanks. Commas inside a role are kept.
func cleanRoles(in []string) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

func mapDatastoreError(err error) error {
	switch {
	case errors.Is(err, datastore.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, datastore.ErrProtected):
		return middleware.NewAppError(fiber.StatusForbidden, "Record is protected", nil, err)
	case errors.Is(err, datastore.ErrCorruptFamily):
		return middleware.NewAppError(fiber.StatusConflict, "Stored records are unreadable", nil, err)
	default:
		return internalError(err)
	}
}
