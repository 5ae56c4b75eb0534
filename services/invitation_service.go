package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gift-exchange-system/models"
	"gift-exchange-system/repository"
	"gift-exchange-system/utils"
)

// DefaultInvitationTTL is how long a freshly issued code stays redeemable.
const DefaultInvitationTTL = 72 * time.Hour

// InvitationService issues, verifies and sweeps invite codes.
type InvitationService struct {
	repo *repository.Repository
}

func NewInvitationService(repo *repository.Repository) *InvitationService {
	return &InvitationService{repo: repo}
}

// Issue creates a new single-use code. The generator does not probe for
// collisions; if the unique index rejects the code, one retry with a fresh
// code covers the realistic case.
func (s *InvitationService) Issue(ctx context.Context, createdBy string, ttl time.Duration) (*models.Invitation, error) {
	if ttl <= 0 {
		ttl = DefaultInvitationTTL
	}

	for attempt := 0; attempt < 2; attempt++ {
		inv := &models.Invitation{
			ID:        uuid.NewString(),
			Code:      utils.GenerateInviteCode(),
			CreatedBy: createdBy,
			ExpiresAt: time.Now().Add(ttl),
			IsValid:   true,
		}
		err := s.repo.Invitations.Create(ctx, inv)
		if err == nil {
			return inv, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		log.Printf("invite code collision on %s, regenerating", inv.Code)
	}
	return nil, errors.New("could not generate a unique invite code")
}

// Verify reports whether the code can still be redeemed.
func (s *InvitationService) Verify(ctx context.Context, code string) (*models.Invitation, error) {
	inv, err := s.repo.Invitations.GetValidByCode(ctx, code, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInviteCode
		}
		return nil, err
	}
	return inv, nil
}

// Redeem consumes the code on behalf of a new user. Losing a concurrent
// redemption surfaces as ErrInvalidInviteCode, same as an expired code.
func (s *InvitationService) Redeem(ctx context.Context, code, usedBy string) error {
	ok, err := s.repo.Invitations.Redeem(ctx, code, usedBy, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidInviteCode
	}
	return nil
}

// SweepExpired bulk-invalidates every valid code past its expiry.
func (s *InvitationService) SweepExpired(ctx context.Context) (int64, error) {
	return s.repo.Invitations.InvalidateExpired(ctx, time.Now())
}

// ListByCreator returns the caller's issued codes, newest first.
func (s *InvitationService) ListByCreator(ctx context.Context, userID string) ([]models.Invitation, error) {
	return s.repo.Invitations.ListByCreator(ctx, userID)
}
