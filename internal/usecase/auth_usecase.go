package usecase

import (
	"context"
	"errors"
	"fmt"

	"campus-prep/internal/domain/user"
	"campus-prep/internal/pkg/jwt"
	ucauth "campus-prep/internal/usecase/auth"
)

var ErrInternal = errors.New("internal error")

type AuthResult struct {
	User      user.User
	SessionID string
	Token     string
	Dashboard string
}

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (AuthResult, error)
	Login(ctx context.Context, in ucauth.LoginInput) (AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	Current(ctx context.Context, sessionID string) (user.User, bool, error)
	UpdateProfile(ctx context.Context, sessionID string, in user.ProfileUpdate) (user.User, error)
}

type Auth struct {
	svc *ucauth.Service
	jwt jwt.Service
}

func NewAuthUsecase(svc *ucauth.Service, jwtSvc jwt.Service) *Auth {
	return &Auth{svc: svc, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (AuthResult, error) {
	sess, err := u.svc.Register(ctx, in)
	if err != nil {
		return AuthResult{}, err
	}
	return u.issue(ctx, sess)
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (AuthResult, error) {
	sess, err := u.svc.Login(ctx, in)
	if err != nil {
		return AuthResult{}, err
	}
	return u.issue(ctx, sess)
}

func (u *Auth) Logout(ctx context.Context, sessionID string) error {
	return u.svc.Logout(ctx, sessionID)
}

func (u *Auth) Current(ctx context.Context, sessionID string) (user.User, bool, error) {
	return u.svc.Current(ctx, sessionID)
}

func (u *Auth) UpdateProfile(ctx context.Context, sessionID string, in user.ProfileUpdate) (user.User, error) {
	return u.svc.UpdateProfile(ctx, sessionID, in)
}

// issue signs a token for a freshly opened session. A session whose token
// cannot be signed is cleared again so it does not linger unreachable.
func (u *Auth) issue(ctx context.Context, sess ucauth.Session) (AuthResult, error) {
	token, err := u.jwt.GenerateSessionToken(sess.ID, string(sess.User.Role))
	if err != nil {
		_ = u.svc.Logout(ctx, sess.ID)
		return AuthResult{}, fmt.Errorf("%w: sign session token: %v", ErrInternal, err)
	}

	return AuthResult{
		User:      sess.User,
		SessionID: sess.ID,
		Token:     token,
		Dashboard: ucauth.DashboardPath(sess.User.Role),
	}, nil
}
