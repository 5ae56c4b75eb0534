package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"gift-exchange-system/models"
)

// InvitationRepository is the data access interface for invite codes.
type InvitationRepository interface {
	Create(ctx context.Context, inv *models.Invitation) error
	// GetValidByCode returns the invitation only while it is still valid and
	// unexpired; anything else is gorm.ErrRecordNotFound.
	GetValidByCode(ctx context.Context, code string, now time.Time) (*models.Invitation, error)
	// Redeem consumes the code with a single conditional update. false means
	// the code was already used, expired, or never existed.
	Redeem(ctx context.Context, code, usedBy string, now time.Time) (bool, error)
	InvalidateExpired(ctx context.Context, now time.Time) (int64, error)
	ListByCreator(ctx context.Context, userID string) ([]models.Invitation, error)
}

type invitationRepo struct {
	db *gorm.DB
}

func NewInvitationRepo(db *gorm.DB) InvitationRepository {
	return &invitationRepo{db: db}
}

func (r *invitationRepo) Create(ctx context.Context, inv *models.Invitation) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *invitationRepo) GetValidByCode(ctx context.Context, code string, now time.Time) (*models.Invitation, error) {
	var inv models.Invitation
	err := r.db.WithContext(ctx).
		Where("code = ? AND is_valid = ? AND expires_at > ?", code, true, now).
		First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invitationRepo) Redeem(ctx context.Context, code, usedBy string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Invitation{}).
		Where("code = ? AND is_valid = ? AND expires_at > ?", code, true, now).
		Updates(map[string]interface{}{
			"is_valid": false,
			"used_by":  usedBy,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *invitationRepo) InvalidateExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Invitation{}).
		Where("is_valid = ? AND expires_at < ?", true, now).
		Update("is_valid", false)
	return res.RowsAffected, res.Error
}

func (r *invitationRepo) ListByCreator(ctx context.Context, userID string) ([]models.Invitation, error) {
	var invs []models.Invitation
	err := r.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Order("created_at DESC").
		Find(&invs).Error
	return invs, err
}
