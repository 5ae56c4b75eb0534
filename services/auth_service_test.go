package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"gift-exchange-system/models"
	"gift-exchange-system/utils"
)

func setupAuthService() (*AuthService, *testRepos) {
	repo, mocks := newTestRepository()
	tokens := utils.NewTokenManager("test-secret-key-2026", time.Hour)
	return NewAuthService(repo, tokens), mocks
}

func seedAccount(mocks *testRepos, id, email, password string) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &models.User{ID: id, Email: email, PasswordHash: string(hash), Username: "user " + id}
	mocks.users.users[id] = u
	return u
}

func seedInvitation(mocks *testRepos, code string, expiresIn time.Duration) *models.Invitation {
	inv := &models.Invitation{
		ID:        "inv-" + code,
		Code:      code,
		CreatedBy: "issuer",
		ExpiresAt: time.Now().Add(expiresIn),
		IsValid:   true,
	}
	mocks.invitations.invitations[inv.ID] = inv
	return inv
}

func TestSignUp_Success(t *testing.T) {
	svc, mocks := setupAuthService()
	seedInvitation(mocks, "AB12CD", time.Hour)

	result, err := svc.SignUp(context.Background(), "Alice@Example.com", "password123", "alice", "ab12cd")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a session token")
	}
	if result.User.Email != "alice@example.com" {
		t.Errorf("expected normalized email, got %s", result.User.Email)
	}

	inv := mocks.invitations.invitations["inv-AB12CD"]
	if inv.IsValid {
		t.Error("invitation should be consumed after sign-up")
	}
	if inv.UsedBy == nil || *inv.UsedBy != result.User.ID {
		t.Error("invitation should record the redeeming user")
	}
}

func TestSignUp_InvalidCode(t *testing.T) {
	svc, _ := setupAuthService()

	_, err := svc.SignUp(context.Background(), "alice@example.com", "password123", "alice", "NOPE99")
	if !errors.Is(err, ErrInvalidInviteCode) {
		t.Errorf("expected ErrInvalidInviteCode, got: %v", err)
	}
}

func TestSignUp_ExpiredCode(t *testing.T) {
	svc, mocks := setupAuthService()
	seedInvitation(mocks, "OLDOLD", -time.Minute)

	_, err := svc.SignUp(context.Background(), "alice@example.com", "password123", "alice", "OLDOLD")
	if !errors.Is(err, ErrInvalidInviteCode) {
		t.Errorf("expected ErrInvalidInviteCode for expired code, got: %v", err)
	}
}

func TestSignUp_UsedCode(t *testing.T) {
	svc, mocks := setupAuthService()
	inv := seedInvitation(mocks, "USED01", time.Hour)
	inv.IsValid = false

	_, err := svc.SignUp(context.Background(), "bob@example.com", "password123", "bob", "USED01")
	if !errors.Is(err, ErrInvalidInviteCode) {
		t.Errorf("expected ErrInvalidInviteCode for used code, got: %v", err)
	}
}

func TestSignUp_EmailTaken(t *testing.T) {
	svc, mocks := setupAuthService()
	seedInvitation(mocks, "AB12CD", time.Hour)
	seedAccount(mocks, "user-1", "alice@example.com", "whatever")

	_, err := svc.SignUp(context.Background(), "alice@example.com", "password123", "alice2", "AB12CD")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got: %v", err)
	}

	inv := mocks.invitations.invitations["inv-AB12CD"]
	if !inv.IsValid {
		t.Error("invitation should survive a failed sign-up")
	}
}

func TestSignIn_Success(t *testing.T) {
	svc, mocks := setupAuthService()
	seedAccount(mocks, "user-1", "alice@example.com", "password123")

	result, err := svc.SignIn(context.Background(), "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a session token")
	}
	if result.User.LastLogin == nil {
		t.Error("last_login should be set after sign-in")
	}
}

func TestSignIn_WrongPassword(t *testing.T) {
	svc, mocks := setupAuthService()
	seedAccount(mocks, "user-1", "alice@example.com", "password123")

	_, err := svc.SignIn(context.Background(), "alice@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestSignIn_UnknownEmail(t *testing.T) {
	svc, _ := setupAuthService()

	_, err := svc.SignIn(context.Background(), "nobody@example.com", "password123")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestCurrentUser_NotFound(t *testing.T) {
	svc, _ := setupAuthService()

	_, err := svc.CurrentUser(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got: %v", err)
	}
}
