package jwt

import (
	"errors"
	"testing"
	"time"
)

func TestHMACService_RoundTrip(t *testing.T) {
	s := NewHMACService("secret", time.Hour, "campus-prep")

	tok, err := s.GenerateSessionToken("sid-1", "student")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	c, err := s.ValidateToken(tok)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.SessionID != "sid-1" || c.Role != "student" || c.Subject != "sid-1" {
		t.Fatalf("unexpected claims: %+v", c)
	}
}

func TestHMACService_Expired(t *testing.T) {
	s := NewHMACService("secret", time.Minute, "campus-prep")
	now := time.Now()
	s.now = func() time.Time { return now }

	tok, err := s.GenerateSessionToken("sid-1", "admin")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	s.now = func() time.Time { return now.Add(2 * time.Minute) }
	if _, err := s.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_WrongSecret(t *testing.T) {
	tok, _ := NewHMACService("one", time.Hour, "").GenerateSessionToken("sid", "student")
	if _, err := NewHMACService("two", time.Hour, "").ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := NewHMACService("two", time.Hour, "").ValidateToken("garbage"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestHMACService_RefusesEmptySession(t *testing.T) {
	if _, err := NewHMACService("s", time.Hour, "").GenerateSessionToken("", "student"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
