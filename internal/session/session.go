package session

import (
	"context"
	"encoding/json"
	"fmt"

	"campus-prep/internal/domain/user"
	"campus-prep/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const keyPrefix = "session:"

// Store keeps exactly one record per session: the authenticated user.
type Store struct {
	kv     storage.Store
	newID  func() string
	logger zerolog.Logger
}

type Option func(*Store)

func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func NewStore(kv storage.Store, opts ...Option) *Store {
	s := &Store{kv: kv, newID: uuid.NewString, logger: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

func key(id string) string {
	return keyPrefix + id
}

// Create opens a new session holding u and returns its id.
func (s *Store) Create(ctx context.Context, u user.User) (string, error) {
	id := s.newID()
	if err := s.Put(ctx, id, u); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Put(ctx context.Context, id string, u user.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.kv.Set(ctx, key(id), string(b)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Get returns the session user. A missing or unreadable session is absent.
func (s *Store) Get(ctx context.Context, id string) (user.User, bool, error) {
	if id == "" {
		return user.User{}, false, nil
	}
	raw, ok, err := s.kv.Get(ctx, key(id))
	if err != nil {
		return user.User{}, false, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return user.User{}, false, nil
	}
	var u user.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.logger.Warn().Err(err).Msg("discarding unparsable session")
		return user.User{}, false, nil
	}
	return u, true, nil
}

func (s *Store) Clear(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.kv.Remove(ctx, key(id)); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
