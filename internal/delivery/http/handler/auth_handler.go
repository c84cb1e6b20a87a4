package handler

import (
	"errors"

	"campus-prep/internal/delivery/http/dto"
	"campus-prep/internal/delivery/http/middleware"
	"campus-prep/internal/pkg/response"
	"campus-prep/internal/usecase"
	ucauth "campus-prep/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

type registerRequest struct {
	Username   string `json:"username" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email,max=254"`
	Password   string `json:"password" validate:"required,max=72"`
	Department string `json:"department" validate:"required,max=100"`
	Year       string `json:"year" validate:"required,max=20"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router, authMw fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", authMw, h.Logout)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	res, err := h.uc.Register(c.Context(), ucauth.RegisterInput{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		Department: req.Department,
		Year:       req.Year,
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Created(c, newAuthResponse(res))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	res, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, newAuthResponse(res))
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	sid := middleware.SessionID(c)
	if sid == "" {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	if err := h.uc.Logout(c.Context(), sid); err != nil {
		return internalError(err)
	}
	return response.Success(c, fiber.StatusOK, "logged out", nil)
}

func newAuthResponse(res usecase.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		User:      dto.NewUserResponse(res.User),
		Token:     res.Token,
		Dashboard: res.Dashboard,
	}
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", nil, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, ucauth.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Session expired", nil, err)
	case errors.Is(err, ucauth.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Unauthorized access", nil, err)
	default:
		return internalError(err)
	}
}
