package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T, opts ...Option) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, opts...), mr
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	if _, ok, err := s.Get(ctx, "campusprep_companies"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "campusprep_companies", `[]`); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	v, ok, err := s.Get(ctx, "campusprep_companies")
	if err != nil || !ok || v != `[]` {
		t.Fatalf("expected [], got %q ok=%v err=%v", v, ok, err)
	}
	if err := s.Remove(ctx, "campusprep_companies"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "campusprep_companies"); ok {
		t.Fatalf("expected key removed")
	}
}

func TestStore_KeysWithNamespace(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, WithNamespace("campusprep:"))

	_ = s.Set(ctx, "user_b", "{}")
	_ = s.Set(ctx, "user_a", "{}")
	_ = s.Set(ctx, "campusprep_faqs", "[]")
	_ = mr.Set("user_outside", "{}")

	keys, err := s.Keys(ctx, "user_")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(keys) != 2 || keys[0] != "user_a" || keys[1] != "user_b" {
		t.Fatalf("expected [user_a user_b], got %v", keys)
	}
	if !mr.Exists("campusprep:user_a") {
		t.Fatalf("expected namespaced key in redis")
	}
}

func TestStore_TTL(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, WithTTL(time.Hour))

	_ = s.Set(ctx, "session:abc", "{}")
	if ttl := mr.TTL("session:abc"); ttl != time.Hour {
		t.Fatalf("expected ttl 1h, got %s", ttl)
	}
	mr.FastForward(2 * time.Hour)
	if _, ok, _ := s.Get(ctx, "session:abc"); ok {
		t.Fatalf("expected session to expire")
	}
}

func TestStore_ServerDown(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)
	mr.Close()

	if err := s.Set(ctx, "k", "v"); err == nil {
		t.Fatalf("expected error when redis is down")
	}
}

func TestEscapeGlob(t *testing.T) {
	if got := escapeGlob("a*b?[c]"); got != `a\*b\?\[c\]` {
		t.Fatalf("unexpected escape: %s", got)
	}
}
