package store

import (
	"testing"
	"time"
)

func TestJWTSessionRoundTrip(t *testing.T) {
	s, err := NewJWTSessionStore("test-secret", time.Minute, JWTOptions{})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	token, err := s.NewSession("user-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	uid, ok, err := s.GetUserIDByToken(token)
	if err != nil || !ok {
		t.Fatalf("resolve token: ok=%v err=%v", ok, err)
	}
	if uid != "user-1" {
		t.Fatalf("expected user-1, got %s", uid)
	}
}

func TestJWTSessionRejectsExpiredAndForeignTokens(t *testing.T) {
	s, err := NewJWTSessionStore("test-secret", time.Millisecond, JWTOptions{Leeway: time.Millisecond})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	expired, err := s.NewSession("user-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, ok, err := s.GetUserIDByToken(expired); ok || err == nil {
		t.Fatal("expired token must be rejected")
	}

	other, err := NewJWTSessionStore("other-secret", time.Minute, JWTOptions{})
	if err != nil {
		t.Fatalf("new other store: %v", err)
	}
	foreign, err := other.NewSession("user-1")
	if err != nil {
		t.Fatalf("foreign session: %v", err)
	}
	if _, ok, err := s.GetUserIDByToken(foreign); ok || err == nil {
		t.Fatal("token signed with a different secret must be rejected")
	}
	if _, ok, err := s.GetUserIDByToken("not-a-token"); ok || err == nil {
		t.Fatal("garbage token must be rejected")
	}
}

func TestNewJWTSessionStoreRequiresSecret(t *testing.T) {
	if _, err := NewJWTSessionStore("  ", time.Minute, JWTOptions{}); err == nil {
		t.Fatal("empty secret must be rejected")
	}
}
