package services

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "task-manager-system.com/task-manager-system/internal/errors"
	repository "task-manager-system.com/task-manager-system/internal/repositories"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newAuthFixture(t *testing.T, ttl time.Duration) *AuthService {
	db := setupTestDB(t)
	return NewAuthService(repository.NewUserRepository(db), testSecret, ttl)
}

func TestRegisterAndValidate(t *testing.T) {
	auth := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	resp, err := auth.Register(ctx, "a@x.com", "password123", "Alice")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected a token")
	}
	if resp.User.Email != "a@x.com" || resp.User.Name != "Alice" {
		t.Errorf("unexpected user payload: %+v", resp.User)
	}

	claims, err := auth.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("token validation failed: %v", err)
	}
	if claims.Subject != resp.User.ID {
		t.Errorf("expected subject %s, got %s", resp.User.ID, claims.Subject)
	}
	if claims.Email != "a@x.com" {
		t.Errorf("expected email claim a@x.com, got %s", claims.Email)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	auth := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "a@x.com", "password123", "Alice"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := auth.Register(ctx, "a@x.com", "different", "Impostor")
	if !errors.Is(err, apperrors.ErrEmailTaken) {
		t.Fatalf("expected conflict on duplicate email, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	auth := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	registered, err := auth.Register(ctx, "a@x.com", "password123", "Alice")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	resp, err := auth.Login(ctx, "a@x.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.User.ID != registered.User.ID {
		t.Errorf("login returned a different user: %s vs %s", resp.User.ID, registered.User.ID)
	}

	// Wrong password and unknown email fail identically, so failed
	// logins cannot enumerate accounts.
	_, wrongPass := auth.Login(ctx, "a@x.com", "nope")
	_, unknown := auth.Login(ctx, "ghost@x.com", "password123")
	if !errors.Is(wrongPass, apperrors.ErrInvalidCredentials) {
		t.Errorf("expected generic failure for wrong password, got %v", wrongPass)
	}
	if !errors.Is(unknown, apperrors.ErrInvalidCredentials) {
		t.Errorf("expected generic failure for unknown email, got %v", unknown)
	}
	if wrongPass.Error() != unknown.Error() {
		t.Errorf("login failures must be indistinguishable: %q vs %q", wrongPass, unknown)
	}
}

func TestValidateToken_Invalid(t *testing.T) {
	auth := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	resp, err := auth.Register(ctx, "a@x.com", "password123", "Alice")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := auth.ValidateToken(resp.AccessToken + "x"); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("expected rejection of a tampered token, got %v", err)
	}
	if _, err := auth.ValidateToken("not-a-token"); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("expected rejection of garbage input, got %v", err)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	auth := newAuthFixture(t, -time.Hour)
	ctx := context.Background()

	resp, err := auth.Register(ctx, "a@x.com", "password123", "Alice")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := auth.ValidateToken(resp.AccessToken); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("expected rejection of an expired token, got %v", err)
	}
}
