package services

import (
	"context"
	"errors"
	"math/rand"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gift-exchange-system/models"
	"gift-exchange-system/repository"
)

// GiftService handles gift registration, the anonymized available listing,
// and the select/cancel allocation flow.
type GiftService struct {
	repo *repository.Repository
}

func NewGiftService(repo *repository.Repository) *GiftService {
	return &GiftService{repo: repo}
}

// UserGifts groups a user's own registered gifts with the (anonymized) gifts
// they currently hold.
type UserGifts struct {
	Created  []models.Gift          `json:"created"`
	Received []models.AnonymousGift `json:"received"`
}

// Register adds a gift to an event. Only participants can register, and only
// while the event is still accepting gifts.
func (s *GiftService) Register(ctx context.Context, eventID, userID, description string) (*models.Gift, error) {
	event, err := s.repo.Events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if event.Status != models.EventStatusGiftRegistration {
		return nil, ErrEventClosed
	}

	isParticipant, err := s.repo.Participants.IsParticipant(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if !isParticipant {
		return nil, ErrNotParticipant
	}

	gift := &models.Gift{
		ID:          uuid.NewString(),
		EventID:     eventID,
		Description: description,
		CreatedBy:   userID,
		Status:      models.GiftStatusAvailable,
	}
	if err := s.repo.Gifts.Create(ctx, gift); err != nil {
		return nil, err
	}
	return gift, nil
}

// ListAvailable returns the event's selectable gifts, anonymized and shuffled
// so display order leaks nothing about registration order.
func (s *GiftService) ListAvailable(ctx context.Context, eventID string) ([]models.AnonymousGift, error) {
	gifts, err := s.repo.Gifts.ListAvailableByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	anon := make([]models.AnonymousGift, len(gifts))
	for i, g := range gifts {
		anon[i] = g.Anonymize()
	}
	shuffleGifts(anon)
	return anon, nil
}

// Select claims an available gift for the user. The claim itself is one
// conditional update; when it affects no rows a follow-up read tells apart
// "never existed" from "someone got there first". A user cannot take their
// own gift and holds at most one selected gift per event.
func (s *GiftService) Select(ctx context.Context, giftID, userID string) error {
	gift, err := s.repo.Gifts.GetByID(ctx, giftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGiftNotFound
		}
		return err
	}
	if gift.CreatedBy == userID {
		return ErrOwnGift
	}

	if existing, err := s.SelectedGift(ctx, gift.EventID, userID); err != nil {
		return err
	} else if existing != nil {
		return ErrAlreadySelected
	}

	claimed, err := s.repo.Gifts.Select(ctx, giftID, userID)
	if err != nil {
		return err
	}
	if !claimed {
		// the pre-read saw the gift, so zero rows means it got taken
		return ErrGiftUnavailable
	}
	return nil
}

// CancelSelection releases a held gift back to available. The conditional
// update only matches the current holder; anyone else gets ErrNotGiftHolder
// and the gift is untouched.
func (s *GiftService) CancelSelection(ctx context.Context, giftID, userID string) error {
	released, err := s.repo.Gifts.CancelSelection(ctx, giftID, userID)
	if err != nil {
		return err
	}
	if !released {
		return ErrNotGiftHolder
	}
	return nil
}

// UserGifts returns what the user registered and what they currently hold.
func (s *GiftService) UserGifts(ctx context.Context, userID string) (*UserGifts, error) {
	created, err := s.repo.Gifts.ListCreatedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	received, err := s.repo.Gifts.ListReceivedBy(ctx, userID)
	if err != nil {
		return nil, err
	}

	anon := make([]models.AnonymousGift, len(received))
	for i, g := range received {
		anon[i] = g.Anonymize()
	}
	return &UserGifts{Created: created, Received: anon}, nil
}

// HasRegisteredGift reports whether the user already put a gift into the event.
func (s *GiftService) HasRegisteredGift(ctx context.Context, eventID, userID string) (bool, error) {
	created, err := s.repo.Gifts.ListCreatedBy(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, g := range created {
		if g.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

// SelectedGift returns the gift the user holds in the event, or nil.
func (s *GiftService) SelectedGift(ctx context.Context, eventID, userID string) (*models.AnonymousGift, error) {
	received, err := s.repo.Gifts.ListReceivedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, g := range received {
		if g.EventID == eventID && g.Status == models.GiftStatusSelected {
			anon := g.Anonymize()
			return &anon, nil
		}
	}
	return nil, nil
}

// shuffleGifts is a uniform Fisher–Yates pass over the display list.
func shuffleGifts(gifts []models.AnonymousGift) {
	for i := len(gifts) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		gifts[i], gifts[j] = gifts[j], gifts[i]
	}
}
