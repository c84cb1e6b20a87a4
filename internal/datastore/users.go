package datastore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"campus-prep/internal/domain/user"
)

func userKey(id string) string {
	return UserPrefix + id
}

// ListUsers returns every stored student, ordered by key. Entries that fail
// to parse are logged and skipped; the admin record is never included.
func (s *Service) ListUsers(ctx context.Context) ([]user.User, error) {
	keys, err := s.store.Keys(ctx, UserPrefix)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]user.User, 0, len(keys))
	for _, k := range keys {
		u, ok, err := s.getUserByKey(ctx, k)
		if err != nil {
			return nil, err
		}
		if !ok || u.Role != user.RoleStudent {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *Service) GetUserByID(ctx context.Context, id string) (user.User, bool, error) {
	if id == "" {
		return user.User{}, false, nil
	}
	return s.getUserByKey(ctx, userKey(id))
}

func (s *Service) getUserByKey(ctx context.Context, key string) (user.User, bool, error) {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return user.User{}, false, fmt.Errorf("load user %s: %w", key, err)
	}
	if !ok {
		return user.User{}, false, nil
	}

	var u user.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("skipping unparsable user record")
		return user.User{}, false, nil
	}
	if u.ID == "" {
		u.ID = strings.TrimPrefix(key, UserPrefix)
	}
	return u, true, nil
}

// AddUser upserts u under its id, assigning a fresh id when empty.
func (s *Service) AddUser(ctx context.Context, u user.User) (user.User, error) {
	if u.ID == "" {
		u.ID = s.newID()
	}
	if err := s.putUser(ctx, u); err != nil {
		return user.User{}, err
	}
	s.notify(FamilyUsers)
	return u, nil
}

func (s *Service) putUser(ctx context.Context, u user.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.store.Set(ctx, userKey(u.ID), string(b)); err != nil {
		return fmt.Errorf("save user %s: %w", u.ID, err)
	}
	return nil
}

// DeleteUser reports whether a record was removed. The admin record cannot
// be deleted.
func (s *Service) DeleteUser(ctx context.Context, id string) (bool, error) {
	if id == user.AdminID {
		return false, ErrProtected
	}
	if id == "" {
		return false, nil
	}
	_, ok, err := s.store.Get(ctx, userKey(id))
	if err != nil {
		return false, fmt.Errorf("load user %s: %w", id, err)
	}
	if !ok {
		return false, nil
	}
	if err := s.store.Remove(ctx, userKey(id)); err != nil {
		return false, fmt.Errorf("delete user %s: %w", id, err)
	}
	s.notify(FamilyUsers)
	return true, nil
}

// EnsureAdmin creates the single admin record when it is absent.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok, err := s.store.Get(ctx, userKey(user.AdminID))
	if err != nil {
		return fmt.Errorf("load admin: %w", err)
	}
	if ok {
		return nil
	}

	admin := user.User{
		ID:       user.AdminID,
		Username: "Admin",
		Email:    email,
		Password: password,
		Role:     user.RoleAdmin,
	}
	if err := s.putUser(ctx, admin); err != nil {
		return err
	}
	s.logger.Info().Msg("admin user created")
	return nil
}

type Summary struct {
	Companies int `json:"companies"`
	FAQs      int `json:"faqs"`
	Updates   int `json:"updates"`
	Students  int `json:"students"`
}

// Summarize counts each family for the admin dashboard.
func (s *Service) Summarize(ctx context.Context) (Summary, error) {
	companies, err := s.ListCompanies(ctx)
	if err != nil {
		return Summary{}, err
	}
	faqs, err := s.ListFAQs(ctx)
	if err != nil {
		return Summary{}, err
	}
	updates, err := s.ListUpdates(ctx)
	if err != nil {
		return Summary{}, err
	}
	students, err := s.ListUsers(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Companies: len(companies),
		FAQs:      len(faqs),
		Updates:   len(updates),
		Students:  len(students),
	}, nil
}
