package user

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	u, err := svc.Register(ctx, Credentials{
		Email:    "Alice@Example.com",
		Name:     "Alice",
		Password: "correct horse",
		Locale:   "en-IN",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if u.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if u.Currency != "INR" {
		t.Fatalf("expected locale default INR, got %q", u.Currency)
	}

	got, err := svc.Authenticate(ctx, Credentials{Email: "alice@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("authenticated wrong user: %s != %s", got.ID, u.ID)
	}

	if _, err := svc.Authenticate(ctx, Credentials{Email: "alice@example.com", Password: "wrong"}); err == nil {
		t.Fatal("expected error for wrong password")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	creds := Credentials{Email: "bob@example.com", Password: "password1", Locale: "en-US"}
	if _, err := svc.Register(ctx, creds); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, creds); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	if _, err := svc.Register(context.Background(), Credentials{Email: "c@d.com", Password: "short"}); err == nil {
		t.Fatal("expected error for short password")
	}
}
