package app

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterLoginRoundTrip(t *testing.T) {
	a := newTestApp(t, nil)
	user, token, err := a.Register("a@x.com", "pw123456", "Ada")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" || token == "" {
		t.Fatal("expected user id and session token")
	}

	loggedIn, token, err := a.Login("A@X.COM", "pw123456")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("login resolved user %q, want %q", loggedIn.ID, user.ID)
	}

	resolved, ok := a.UserFromToken(context.Background(), token)
	if !ok || resolved.Email != "a@x.com" {
		t.Fatalf("UserFromToken = %v/%v, want a@x.com", resolved.Email, ok)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	a := newTestApp(t, nil)
	registerTestUser(t, a, "a@x.com")
	if _, _, err := a.Register("a@x.com", "pw123456", ""); !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	a := newTestApp(t, nil)
	if _, _, err := a.Register("not-an-email", "pw123456", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for bad email, got %v", err)
	}
	if _, _, err := a.Register("b@x.com", "short", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for weak password, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	a := newTestApp(t, nil)
	registerTestUser(t, a, "a@x.com")
	if _, _, err := a.Login("a@x.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	// Unknown accounts produce the same error as wrong passwords.
	if _, _, err := a.Login("nobody@x.com", "pw123456"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestUserFromTokenRejectsGarbage(t *testing.T) {
	a := newTestApp(t, nil)
	if _, ok := a.UserFromToken(context.Background(), "not-a-token"); ok {
		t.Fatal("garbage token must not resolve")
	}
}

func TestUpdateProfilePartialPatch(t *testing.T) {
	a := newTestApp(t, nil)
	user := registerTestUser(t, a, "a@x.com")

	bio := "Writes quarterly reports."
	company := "Acme"
	updated, err := a.UpdateProfile(user, ProfileUpdate{Bio: &bio, Company: &company})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Bio != bio || updated.Company != "Acme" {
		t.Fatalf("profile not applied: %+v", updated)
	}
	if updated.Name != user.Name {
		t.Fatalf("untouched field changed: name %q -> %q", user.Name, updated.Name)
	}

	empty := " "
	if _, err := a.UpdateProfile(updated, ProfileUpdate{Name: &empty}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for blank name, got %v", err)
	}
}
