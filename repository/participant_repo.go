package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gift-exchange-system/models"
)

// ParticipantRepository is the data access interface for event membership.
type ParticipantRepository interface {
	Add(ctx context.Context, p *models.EventParticipant) error
	ListByEvent(ctx context.Context, eventID string) ([]models.EventParticipant, error)
	ListByUser(ctx context.Context, userID string) ([]models.EventParticipant, error)
	IsParticipant(ctx context.Context, eventID, userID string) (bool, error)
}

type participantRepo struct {
	db *gorm.DB
}

func NewParticipantRepo(db *gorm.DB) ParticipantRepository {
	return &participantRepo{db: db}
}

func (r *participantRepo) Add(ctx context.Context, p *models.EventParticipant) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *participantRepo) ListByEvent(ctx context.Context, eventID string) ([]models.EventParticipant, error) {
	var parts []models.EventParticipant
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&parts).Error
	return parts, err
}

func (r *participantRepo) ListByUser(ctx context.Context, userID string) ([]models.EventParticipant, error) {
	var parts []models.EventParticipant
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&parts).Error
	return parts, err
}

func (r *participantRepo) IsParticipant(ctx context.Context, eventID, userID string) (bool, error) {
	var p models.EventParticipant
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
