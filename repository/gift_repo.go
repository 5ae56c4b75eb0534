package repository

import (
	"context"

	"gorm.io/gorm"

	"gift-exchange-system/models"
)

// GiftRepository is the data access interface for gifts. Select and
// CancelSelection are single conditional updates: the row filter is the only
// concurrency control, so the boolean result is how callers learn they lost
// a race or never held the gift.
type GiftRepository interface {
	Create(ctx context.Context, gift *models.Gift) error
	GetByID(ctx context.Context, id string) (*models.Gift, error)
	ListAvailableByEvent(ctx context.Context, eventID string) ([]models.Gift, error)
	ListByEvent(ctx context.Context, eventID string) ([]models.Gift, error)
	Select(ctx context.Context, giftID, userID string) (bool, error)
	CancelSelection(ctx context.Context, giftID, userID string) (bool, error)
	ListCreatedBy(ctx context.Context, userID string) ([]models.Gift, error)
	ListReceivedBy(ctx context.Context, userID string) ([]models.Gift, error)
}

type giftRepo struct {
	db *gorm.DB
}

func NewGiftRepo(db *gorm.DB) GiftRepository {
	return &giftRepo{db: db}
}

func (r *giftRepo) Create(ctx context.Context, gift *models.Gift) error {
	return r.db.WithContext(ctx).Create(gift).Error
}

func (r *giftRepo) GetByID(ctx context.Context, id string) (*models.Gift, error) {
	var gift models.Gift
	if err := r.db.WithContext(ctx).First(&gift, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &gift, nil
}

func (r *giftRepo) ListAvailableByEvent(ctx context.Context, eventID string) ([]models.Gift, error) {
	var gifts []models.Gift
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND status = ?", eventID, models.GiftStatusAvailable).
		Order("created_at DESC").
		Find(&gifts).Error
	return gifts, err
}

func (r *giftRepo) ListByEvent(ctx context.Context, eventID string) ([]models.Gift, error) {
	var gifts []models.Gift
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Find(&gifts).Error
	return gifts, err
}

func (r *giftRepo) Select(ctx context.Context, giftID, userID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Gift{}).
		Where("id = ? AND status = ?", giftID, models.GiftStatusAvailable).
		Updates(map[string]interface{}{
			"received_by": userID,
			"status":      models.GiftStatusSelected,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *giftRepo) CancelSelection(ctx context.Context, giftID, userID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Gift{}).
		Where("id = ? AND received_by = ? AND status = ?", giftID, userID, models.GiftStatusSelected).
		Updates(map[string]interface{}{
			"received_by": nil,
			"status":      models.GiftStatusAvailable,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *giftRepo) ListCreatedBy(ctx context.Context, userID string) ([]models.Gift, error) {
	var gifts []models.Gift
	err := r.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Find(&gifts).Error
	return gifts, err
}

func (r *giftRepo) ListReceivedBy(ctx context.Context, userID string) ([]models.Gift, error) {
	var gifts []models.Gift
	err := r.db.WithContext(ctx).
		Where("received_by = ?", userID).
		Find(&gifts).Error
	return gifts, err
}
