package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"campus-prep/internal/storage"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var _ storage.Store = (*Store)(nil)

type Options struct {
	Addr     string
	Password string
	DB       int
}

// Connect opens a client and pings it. Unlike a cache, a record store cannot
// be bypassed, so an unreachable server is an error.
func Connect(ctx context.Context, opts Options) (*goredis.Client, error) {
	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		addr = "localhost:6379"
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
	}
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: redis %s: %v", storage.ErrUnavailable, addr, err)
	}
	return client, nil
}

type Store struct {
	client    goredis.UniversalClient
	namespace string
	ttl       time.Duration
	logger    zerolog.Logger

	warnedUnavailable atomic.Bool
}

type Option func(*Store)

// WithTTL sets an expiry on every write. Used for session state.
func WithTTL(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithNamespace prefixes every key so several stores can share one database.
func WithNamespace(ns string) Option {
	return func(s *Store) {
		s.namespace = ns
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

func New(client goredis.UniversalClient, opts ...Option) *Store {
	s := &Store{client: client, logger: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.namespace+key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", false, nil
		}
		s.warnUnavailableOnce(err)
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value string) error {
	if err := s.client.Set(ctx, s.namespace+key, value, s.ttl).Err(); err != nil {
		s.warnUnavailableOnce(err)
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.namespace+key).Err(); err != nil {
		s.warnUnavailableOnce(err)
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	pattern := escapeGlob(s.namespace+prefix) + "*"

	var keys []string
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), s.namespace))
	}
	if err := iter.Err(); err != nil {
		s.warnUnavailableOnce(err)
		return nil, fmt.Errorf("redis scan %s: %w", prefix, err)
	}

	// SCAN may return a key more than once.
	sort.Strings(keys)
	out := keys[:0]
	for i, k := range keys {
		if i > 0 && k == keys[i-1] {
			continue
		}
		out = append(out, k)
	}
	return out, nil
}

func (s *Store) warnUnavailableOnce(err error) {
	if s.warnedUnavailable.CompareAndSwap(false, true) {
		s.logger.Warn().Err(err).Msg("redis command failed")
	}
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
