package repository

import (
	"context"

	"gorm.io/gorm"

	"gift-exchange-system/models"
)

// ReviewRepository is the data access interface for gift reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.GiftReview) error
	GetByID(ctx context.Context, id string) (*models.GiftReview, error)
	ListByGiftIDs(ctx context.Context, giftIDs []string) ([]models.GiftReview, error)
	ListByReviewer(ctx context.Context, userID string) ([]models.GiftReview, error)
	Update(ctx context.Context, id, content string, rating int) (bool, error)
	Delete(ctx context.Context, id string) error
}

type reviewRepo struct {
	db *gorm.DB
}

func NewReviewRepo(db *gorm.DB) ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, review *models.GiftReview) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepo) GetByID(ctx context.Context, id string) (*models.GiftReview, error) {
	var review models.GiftReview
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepo) ListByGiftIDs(ctx context.Context, giftIDs []string) ([]models.GiftReview, error) {
	if len(giftIDs) == 0 {
		return nil, nil
	}
	var reviews []models.GiftReview
	err := r.db.WithContext(ctx).
		Where("gift_id IN ?", giftIDs).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepo) ListByReviewer(ctx context.Context, userID string) ([]models.GiftReview, error) {
	var reviews []models.GiftReview
	err := r.db.WithContext(ctx).
		Where("reviewer_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepo) Update(ctx context.Context, id, content string, rating int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.GiftReview{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"content": content,
			"rating":  rating,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *reviewRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.GiftReview{}, "id = ?", id).Error
}
