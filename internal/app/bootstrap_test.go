package app

import (
	"context"
	"testing"

	"campus-prep/internal/config"
	"campus-prep/internal/domain/user"

	"github.com/alicebob/miniredis/v2"
)

func TestListenAddr(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "8080", want: ":8080"},
		{in: " :9000 ", want: ":9000"},
		{in: "  ", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ListenAddr(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("%q: unexpected error state: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("%q: expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestNewContainer_UnsupportedDriver(t *testing.T) {
	cfg := config.Defaults()
	cfg.Storage.Driver = "cassandra"

	if _, err := NewContainer(context.Background(), cfg); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestBootstrap_MemorySeedsAdminAndRecords(t *testing.T) {
	cfg := config.Defaults()
	cfg.App.AppName = "campus-prep-test"
	cfg.JWT.Secret = "secret"

	ctx := context.Background()
	a, cleanup, err := Bootstrap(ctx, cfg)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	defer func() { _ = cleanup() }()

	admin, ok, err := a.Data.GetUserByID(ctx, "admin")
	if err != nil || !ok {
		t.Fatalf("expected admin record, ok=%v err=%v", ok, err)
	}
	if admin.Email != cfg.Auth.AdminEmail {
		t.Fatalf("expected admin email %q, got %q", cfg.Auth.AdminEmail, admin.Email)
	}

	sum, err := a.Data.Summarize(ctx)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if sum.Companies != 3 || sum.FAQs != 3 || sum.Updates != 3 || sum.Students != 0 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

func TestNewContainer_RedisSessionKeys(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.Defaults()
	cfg.Storage.SessionDriver = config.DriverRedis
	cfg.Redis.Addr = mr.Addr()

	ctx := context.Background()
	c, err := NewContainer(ctx, cfg)
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	defer func() { _ = c.Close() }()

	sid, err := c.Sessions.Create(ctx, user.User{ID: "asha", Role: user.RoleStudent})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if key := "campusprep:session:" + sid; !mr.Exists(key) {
		t.Fatalf("expected key %s, have %v", key, mr.Keys())
	}
	if ttl := mr.TTL("campusprep:session:" + sid); ttl != cfg.Storage.SessionTTL {
		t.Fatalf("expected ttl %s, got %s", cfg.Storage.SessionTTL, ttl)
	}
	if _, ok := c.Checkers["redis"]; !ok {
		t.Fatalf("expected redis health checker")
	}
}
