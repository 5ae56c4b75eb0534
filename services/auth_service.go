package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gift-exchange-system/models"
	"gift-exchange-system/repository"
	"gift-exchange-system/utils"
)

// AuthService owns sign-up, sign-in and current-user lookup. Sign-up is
// invitation-gated: no valid code, no account.
type AuthService struct {
	repo   *repository.Repository
	tokens *utils.TokenManager
}

func NewAuthService(repo *repository.Repository, tokens *utils.TokenManager) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// AuthResult is the uniform payload returned by sign-up and sign-in.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// SignUp verifies the invite code, creates the account, then consumes the
// code. The redemption is a conditional update: if another sign-up grabs the
// code between the verify and the redeem, this one fails with
// ErrInvalidInviteCode even though the account row already exists — the
// account is unusable without the token, and the email stays reserved.
func (s *AuthService) SignUp(ctx context.Context, email, password, username, inviteCode string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	inviteCode = strings.ToUpper(strings.TrimSpace(inviteCode))

	if _, err := s.repo.Invitations.GetValidByCode(ctx, inviteCode, time.Now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInviteCode
		}
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Username:     username,
	}
	if err := s.repo.Users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	redeemed, err := s.repo.Invitations.Redeem(ctx, inviteCode, user.ID, time.Now())
	if err != nil {
		return nil, err
	}
	if !redeemed {
		log.Printf("sign-up for %s lost the invite code race on %s", email, inviteCode)
		return nil, ErrInvalidInviteCode
	}

	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// SignIn checks the password and touches last_login on success.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.repo.Users.TouchLastLogin(ctx, user.ID, now); err != nil {
		// login still succeeds; the timestamp is best-effort
		log.Printf("failed to update last_login for %s: %v", user.ID, err)
	} else {
		user.LastLogin = &now
	}

	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// CurrentUser resolves the authenticated user's profile.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
