package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"gift-exchange-system/models"
	"gift-exchange-system/repository"
	"gift-exchange-system/utils"
)

// statusTransitions is the forward-only lifecycle. Cancellation is allowed
// from any state that is not yet terminal.
var statusTransitions = map[string][]string{
	models.EventStatusGiftRegistration: {models.EventStatusGiftSelection, models.EventStatusCancelled},
	models.EventStatusGiftSelection:    {models.EventStatusActive, models.EventStatusCancelled},
	models.EventStatusActive:           {models.EventStatusCompleted, models.EventStatusCancelled},
	models.EventStatusCompleted:        {},
	models.EventStatusCancelled:        {},
}

// EventService orchestrates the event lifecycle: creation with auto-join,
// status advancement, the completion cascade and the participant aggregation.
type EventService struct {
	repo *repository.Repository
}

func NewEventService(repo *repository.Repository) *EventService {
	return &EventService{repo: repo}
}

// CreateEventInput is the caller-supplied part of a new event.
type CreateEventInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

// Create inserts the event and joins the creator plus any extra participants
// in one transaction. The creator is always participant zero; duplicate ids
// in the extra list collapse, and the creator is excluded from it.
func (s *EventService) Create(ctx context.Context, createdBy string, input CreateEventInput, participantIDs []string) (*models.Event, error) {
	event := &models.Event{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Slug:        slug.Make(input.Title),
		Description: input.Description,
		CreatedBy:   createdBy,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      models.EventStatusGiftRegistration,
	}

	joined := []string{createdBy}
	seen := map[string]bool{createdBy: true}
	for _, id := range participantIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		joined = append(joined, id)
	}

	if err := s.repo.Events.CreateWithParticipants(ctx, event, joined); err != nil {
		return nil, err
	}
	return event, nil
}

// Get returns the event or ErrEventNotFound.
func (s *EventService) Get(ctx context.Context, eventID string) (*models.Event, error) {
	event, err := s.repo.Events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// ListActive returns events still open for joining or selecting.
func (s *EventService) ListActive(ctx context.Context) ([]models.Event, error) {
	return s.repo.Events.ListActive(ctx, time.Now())
}

// ListForUser resolves the caller's participations into event records,
// fetched one event at a time. Events that vanished are skipped.
func (s *EventService) ListForUser(ctx context.Context, userID string) ([]models.Event, error) {
	parts, err := s.repo.Participants.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	events := make([]models.Event, 0, len(parts))
	for _, p := range parts {
		event, err := s.repo.Events.GetByID(ctx, p.EventID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	return events, nil
}

// AdvanceStatus moves the event one step forward. Only the creator may
// trigger transitions, and only transitions in the forward table are legal.
// Moving to completed routes through the gift cascade.
func (s *EventService) AdvanceStatus(ctx context.Context, eventID, callerID, next string) (*models.Event, error) {
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.CreatedBy != callerID {
		return nil, ErrNotEventCreator
	}

	allowed := false
	for _, status := range statusTransitions[event.Status] {
		if status == next {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s → %s", ErrInvalidTransition, event.Status, next)
	}

	if next == models.EventStatusCompleted {
		if err := s.Complete(ctx, eventID); err != nil {
			return nil, err
		}
	} else {
		found, err := s.repo.Events.UpdateStatus(ctx, eventID, next)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, ErrEventNotFound
		}
	}

	event.Status = next
	return event, nil
}

// Complete marks the event completed and cascades every available or
// selected gift under it to completed, atomically.
func (s *EventService) Complete(ctx context.Context, eventID string) error {
	found, err := s.repo.Events.CompleteWithGifts(ctx, eventID)
	if err != nil {
		return err
	}
	if !found {
		return ErrEventNotFound
	}
	return nil
}

// CompleteExpired closes out every active event whose end date has passed.
// Invoked by the expiry worker; each event is completed independently so one
// failure does not block the rest.
func (s *EventService) CompleteExpired(ctx context.Context) (int, error) {
	expired, err := s.repo.Events.ListExpiredActive(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, event := range expired {
		if err := s.Complete(ctx, event.ID); err != nil {
			log.Printf("failed to complete expired event %s: %v", event.ID, err)
			continue
		}
		completed++
	}
	return completed, nil
}

// IsParticipant reports whether the user belongs to the event.
func (s *EventService) IsParticipant(ctx context.Context, eventID, userID string) (bool, error) {
	return s.repo.Participants.IsParticipant(ctx, eventID, userID)
}

// ParticipantsWithGiftStatus builds the event-detail view: every participant
// with whether they currently hold a selected gift, its description, and the
// display name of whoever registered that gift. Profile lookups are memoized
// per call so the scan stays at one fetch per distinct user.
func (s *EventService) ParticipantsWithGiftStatus(ctx context.Context, eventID string) ([]models.ParticipantGiftStatus, error) {
	parts, err := s.repo.Participants.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	gifts, err := s.repo.Gifts.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	heldBy := make(map[string]*models.Gift, len(gifts))
	for i := range gifts {
		g := &gifts[i]
		if g.Status == models.GiftStatusSelected && g.ReceivedBy != nil {
			heldBy[*g.ReceivedBy] = g
		}
	}

	userCache := make(map[string]*models.User)
	lookup := func(id string) *models.User {
		if u, ok := userCache[id]; ok {
			return u
		}
		u, err := s.repo.Users.GetByID(ctx, id)
		if err != nil {
			userCache[id] = nil
			return nil
		}
		userCache[id] = u
		return u
	}

	result := make([]models.ParticipantGiftStatus, 0, len(parts))
	for _, p := range parts {
		entry := models.ParticipantGiftStatus{
			ID:     p.ID,
			UserID: p.UserID,
		}
		if u := lookup(p.UserID); u != nil {
			entry.Username = u.Username
		}
		if g, ok := heldBy[p.UserID]; ok {
			entry.HasSelectedGift = true
			entry.SelectedGiftDescription = &g.Description
			if creator := lookup(g.CreatedBy); creator != nil {
				entry.SelectedGiftCreatorName = &creator.Username
			}
		}
		result = append(result, entry)
	}
	return result, nil
}

// SetCoverPhoto uploads the image to R2 and stores the public URL.
// Creator-only.
func (s *EventService) SetCoverPhoto(ctx context.Context, eventID, callerID string, file *multipart.FileHeader) (string, error) {
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return "", err
	}
	if event.CreatedBy != callerID {
		return "", ErrNotEventCreator
	}

	ext := filepath.Ext(file.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := "events/covers/" + uuid.NewString() + ext
	url, err := utils.UploadCoverPhoto(file, key)
	if err != nil {
		return "", err
	}

	if _, err := s.repo.Events.SetCoverPhotoURL(ctx, eventID, url); err != nil {
		return "", err
	}
	return url, nil
}
