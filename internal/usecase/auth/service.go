package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"campus-prep/internal/domain/user"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("forbidden")
)

type UserStore interface {
	ListUsers(ctx context.Context) ([]user.User, error)
	GetUserByID(ctx context.Context, id string) (user.User, bool, error)
	AddUser(ctx context.Context, u user.User) (user.User, error)
}

type SessionStore interface {
	Create(ctx context.Context, u user.User) (string, error)
	Put(ctx context.Context, id string, u user.User) error
	Get(ctx context.Context, id string) (user.User, bool, error)
	Clear(ctx context.Context, id string) error
}

type Config struct {
	AdminEmail    string
	AdminPassword string
	// AllowReregister lets a second registration with the same email
	// replace the stored profile instead of failing.
	AllowReregister bool
	BcryptCost      int
}

type Session struct {
	ID   string
	User user.User
}

type RegisterInput struct {
	Username   string
	Email      string
	Password   string
	Department string
	Year       string
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	users    UserStore
	sessions SessionStore
	cfg      Config
	logger   zerolog.Logger
}

func NewService(users UserStore, sessions SessionStore, cfg Config, logger zerolog.Logger) *Service {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{users: users, sessions: sessions, cfg: cfg, logger: logger}
}

// Login checks the admin credential pair first, then every stored student.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, in LoginInput) (Session, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return Session{}, ErrInvalidCredentials
	}

	if s.isAdmin(email, in.Password) {
		admin := user.User{
			ID:       user.AdminID,
			Username: "Admin",
			Email:    email,
			Role:     user.RoleAdmin,
		}
		return s.open(ctx, admin)
	}

	students, err := s.users.ListUsers(ctx)
	if err != nil {
		return Session{}, err
	}
	for _, u := range students {
		if u.Email != email {
			continue
		}
		if passwordMatches(u.Password, in.Password) {
			return s.open(ctx, u)
		}
	}

	s.logger.Info().Msg("login rejected")
	return Session{}, ErrInvalidCredentials
}

// Register stores a new student and opens a session for it.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Session, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return Session{}, ErrInvalidInput
	}
	if email == s.cfg.AdminEmail {
		return Session{}, ErrEmailAlreadyRegistered
	}

	id := user.IDFromEmail(email)
	if !s.cfg.AllowReregister {
		_, exists, err := s.users.GetUserByID(ctx, id)
		if err != nil {
			return Session{}, err
		}
		if exists {
			return Session{}, ErrEmailAlreadyRegistered
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cfg.BcryptCost)
	if err != nil {
		return Session{}, err
	}

	u := user.User{
		ID:              id,
		Username:        strings.TrimSpace(in.Username),
		Email:           email,
		Password:        string(hash),
		Role:            user.RoleStudent,
		Department:      in.Department,
		Year:            in.Year,
		ProfileComplete: false,
	}
	if _, err := s.users.AddUser(ctx, u); err != nil {
		return Session{}, err
	}
	s.logger.Info().Str("user_id", id).Msg("student registered")
	return s.open(ctx, u)
}

// Logout clears the session only; the stored user is untouched.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Clear(ctx, sessionID)
}

func (s *Service) Current(ctx context.Context, sessionID string) (user.User, bool, error) {
	return s.sessions.Get(ctx, sessionID)
}

// UpdateProfile merges the edit into the session user and writes the result
// to both the session and the user store under the same id.
func (s *Service) UpdateProfile(ctx context.Context, sessionID string, in user.ProfileUpdate) (user.User, error) {
	cur, ok, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return user.User{}, err
	}
	if !ok {
		return user.User{}, ErrUnauthorized
	}
	if !CanAccess(&cur, user.RoleStudent) {
		return user.User{}, ErrForbidden
	}

	updated := in.Apply(cur)
	if _, err := s.users.AddUser(ctx, updated); err != nil {
		return user.User{}, err
	}
	if err := s.sessions.Put(ctx, sessionID, updated); err != nil {
		return user.User{}, err
	}
	return updated, nil
}

func (s *Service) open(ctx context.Context, u user.User) (Session, error) {
	id, err := s.sessions.Create(ctx, u)
	if err != nil {
		return Session{}, err
	}
	s.logger.Info().Str("user_id", u.ID).Str("role", string(u.Role)).Msg("session opened")
	return Session{ID: id, User: u}, nil
}

func (s *Service) isAdmin(email, password string) bool {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		return false
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.cfg.AdminEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) == 1
	return emailOK && passOK
}

// passwordMatches accepts bcrypt hashes written by Register and plain values
// written directly through the user store.
func passwordMatches(stored, given string) bool {
	if stored == "" {
		return false
	}
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}
