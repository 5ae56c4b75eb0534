package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gift-exchange-system/models"
)

// EventRepository is the data access interface for events. The two
// multi-statement operations (creation with participants, completion with the
// gift cascade) own their transaction so callers never see partial writes.
type EventRepository interface {
	CreateWithParticipants(ctx context.Context, event *models.Event, participantIDs []string) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	ListActive(ctx context.Context, now time.Time) ([]models.Event, error)
	ListExpiredActive(ctx context.Context, now time.Time) ([]models.Event, error)
	UpdateStatus(ctx context.Context, id, status string) (bool, error)
	// CompleteWithGifts marks the event completed and cascades every gift
	// still in a non-terminal state to completed. Safe to re-run.
	CompleteWithGifts(ctx context.Context, id string) (bool, error)
	SetCoverPhotoURL(ctx context.Context, id, url string) (bool, error)
}

type eventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) CreateWithParticipants(ctx context.Context, event *models.Event, participantIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		for _, userID := range participantIDs {
			p := models.EventParticipant{
				ID:      uuid.NewString(),
				EventID: event.ID,
				UserID:  userID,
			}
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) ListActive(ctx context.Context, now time.Time) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("status IN ? AND end_date > ?", models.OpenStatuses(), now).
		Order("start_date ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepo) ListExpiredActive(ctx context.Context, now time.Time) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_date < ?", models.EventStatusActive, now).
		Find(&events).Error
	return events, err
}

func (r *eventRepo) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *eventRepo) CompleteWithGifts(ctx context.Context, id string) (bool, error) {
	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Event{}).
			Where("id = ?", id).
			Update("status", models.EventStatusCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		found = true
		return tx.Model(&models.Gift{}).
			Where("event_id = ? AND status IN ?", id,
				[]string{models.GiftStatusAvailable, models.GiftStatusSelected}).
			Update("status", models.GiftStatusCompleted).Error
	})
	return found, err
}

func (r *eventRepo) SetCoverPhotoURL(ctx context.Context, id, url string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", id).
		Update("cover_photo_url", url)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
