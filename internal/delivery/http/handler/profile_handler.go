package handler

import (
	"campus-prep/internal/delivery/http/dto"
	"campus-prep/internal/delivery/http/middleware"
	"campus-prep/internal/domain/user"
	"campus-prep/internal/pkg/response"
	"campus-prep/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// ProfileHandler serves the signed-in user's own record.
type ProfileHandler struct {
	uc usecase.AuthUsecase
}

type updateProfileRequest struct {
	Department *string `json:"department" validate:"omitempty,max=100"`
	Year       *string `json:"year" validate:"omitempty,max=20"`
	RollNumber *string `json:"rollNumber" validate:"omitempty,max=50"`
	Phone      *string `json:"phone" validate:"omitempty,max=30"`
	Skills     *string `json:"skills" validate:"omitempty,max=1000"`
	Bio        *string `json:"bio" validate:"omitempty,max=2000"`
	CGPA       *string `json:"cgpa" validate:"omitempty,max=10"`
}

func NewProfileHandler(uc usecase.AuthUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.GetMe)
	r.Put("/", middleware.RequireRole(user.RoleStudent), h.UpdateMe)
	r.Get("/completion", h.Completion)
}

func (h *ProfileHandler) GetMe(c fiber.Ctx) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(u))
}

func (h *ProfileHandler) UpdateMe(c fiber.Ctx) error {
	var req updateProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	in := user.ProfileUpdate{
		Department: req.Department,
		Year:       req.Year,
		RollNumber: req.RollNumber,
		Phone:      req.Phone,
		Skills:     req.Skills,
		Bio:        req.Bio,
		CGPA:       req.CGPA,
	}
	if in.Empty() {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, nil)
	}

	updated, err := h.uc.UpdateProfile(c.Context(), middleware.SessionID(c), in)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(updated))
}

func (h *ProfileHandler) Completion(c fiber.Ctx) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.CompletionResponse{
		Filled:          u.FilledProfileFields(),
		Total:           len(user.ProfileFields),
		Percent:         u.Completion(),
		ProfileComplete: u.ProfileComplete,
	})
}
