package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"campus-prep/internal/storage"
)

var _ storage.Store = (*Store)(nil)

type entry struct {
	value     string
	expiresAt time.Time
}

type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

type Option func(*Store)

// WithTTL makes every Set expire after d. Zero keeps entries forever.
func WithTTL(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.ttl = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func New(opts ...Option) *Store {
	s := &Store{entries: map[string]entry{}, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if s.expired(e) {
		s.mu.Lock()
		if cur, ok := s.entries[key]; ok && s.expired(cur) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := entry{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Keys returns live keys starting with prefix, sorted.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.entries))
	for k, e := range s.entries {
		if !strings.HasPrefix(k, prefix) || s.expired(e) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt)
}
