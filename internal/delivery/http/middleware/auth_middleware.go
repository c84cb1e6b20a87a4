package middleware

import (
	"context"
	"errors"
	"strings"

	"campus-prep/internal/domain/user"
	"campus-prep/internal/pkg/jwt"
	"campus-prep/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxSessionIDKey = "session_id"
	CtxUserKey      = "session_user"
)

type SessionResolver interface {
	Current(ctx context.Context, sessionID string) (user.User, bool, error)
}

// AuthMiddleware resolves the bearer token to a live session on every
// request, so a cleared session locks the token out immediately.
type AuthMiddleware struct {
	jwt      jwt.Service
	sessions SessionResolver
}

func NewAuthMiddleware(jwtSvc jwt.Service, sessions SessionResolver) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc, sessions: sessions}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		u, found, err := m.sessions.Current(c.Context(), claims.SessionID)
		if err != nil {
			return NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}
		if !found {
			return NewAppError(fiber.StatusUnauthorized, "Session expired", nil, nil)
		}

		c.Locals(CtxSessionIDKey, claims.SessionID)
		c.Locals(CtxUserKey, u)

		return c.Next()
	}
}

// RequireRole admits only session users that auth.CanAccess lets through.
func RequireRole(role user.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		u, ok := CurrentUser(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		if !auth.CanAccess(&u, role) {
			return NewAppError(fiber.StatusForbidden, "Unauthorized access", nil, nil)
		}
		return c.Next()
	}
}

func CurrentUser(c fiber.Ctx) (user.User, bool) {
	u, ok := c.Locals(CtxUserKey).(user.User)
	return u, ok
}

func SessionID(c fiber.Ctx) string {
	sid, _ := c.Locals(CtxSessionIDKey).(string)
	return sid
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
