package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gift-exchange-system/models"
	"gift-exchange-system/repository"
)

const deletedGiftPlaceholder = "deleted gift"

// ReviewService manages anonymous gift reviews. Duplicate prevention rides on
// the (gift_id, reviewer_id) unique index rather than a read-before-write.
type ReviewService struct {
	repo *repository.Repository
}

func NewReviewService(repo *repository.Repository) *ReviewService {
	return &ReviewService{repo: repo}
}

// Create stores a review for a gift the user participated around. Rating is
// clamped to the 1–5 scale by rejection, not truncation.
func (s *ReviewService) Create(ctx context.Context, giftID, userID, content string, rating int) (*models.GiftReview, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	gift, err := s.repo.Gifts.GetByID(ctx, giftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGiftNotFound
		}
		return nil, err
	}

	isParticipant, err := s.repo.Participants.IsParticipant(ctx, gift.EventID, userID)
	if err != nil {
		return nil, err
	}
	if !isParticipant {
		return nil, ErrNotParticipant
	}

	review := &models.GiftReview{
		ID:         uuid.NewString(),
		GiftID:     giftID,
		ReviewerID: userID,
		Content:    content,
		Rating:     rating,
	}
	if err := s.repo.Reviews.Create(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	return review, nil
}

// ForEvent collects every review on the event's gifts with reviewer identity
// projected out.
func (s *ReviewService) ForEvent(ctx context.Context, eventID string) ([]models.AnonymousReview, error) {
	gifts, err := s.repo.Gifts.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(gifts) == 0 {
		return []models.AnonymousReview{}, nil
	}

	giftIDs := make([]string, len(gifts))
	for i, g := range gifts {
		giftIDs[i] = g.ID
	}

	reviews, err := s.repo.Reviews.ListByGiftIDs(ctx, giftIDs)
	if err != nil {
		return nil, err
	}

	anon := make([]models.AnonymousReview, len(reviews))
	for i, r := range reviews {
		anon[i] = models.AnonymousReview{
			GiftID:    r.GiftID,
			Content:   r.Content,
			Rating:    r.Rating,
			CreatedAt: r.CreatedAt,
		}
	}
	return anon, nil
}

// ForUser returns the caller's reviews with the reviewed gift's description
// resolved; gifts that disappeared show a placeholder.
func (s *ReviewService) ForUser(ctx context.Context, userID string) ([]models.ReviewWithGift, error) {
	reviews, err := s.repo.Reviews.ListByReviewer(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]models.ReviewWithGift, len(reviews))
	for i, r := range reviews {
		entry := models.ReviewWithGift{GiftReview: r, GiftDescription: deletedGiftPlaceholder}
		if gift, err := s.repo.Gifts.GetByID(ctx, r.GiftID); err == nil {
			entry.GiftDescription = gift.Description
		}
		out[i] = entry
	}
	return out, nil
}

// Update edits the caller's own review. Ownership is re-checked against the
// stored reviewer id before mutating.
func (s *ReviewService) Update(ctx context.Context, reviewID, userID, content string, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	if err := s.requireOwnership(ctx, reviewID, userID); err != nil {
		return err
	}
	found, err := s.repo.Reviews.Update(ctx, reviewID, content, rating)
	if err != nil {
		return err
	}
	if !found {
		return ErrReviewNotFound
	}
	return nil
}

// Delete removes the caller's own review.
func (s *ReviewService) Delete(ctx context.Context, reviewID, userID string) error {
	if err := s.requireOwnership(ctx, reviewID, userID); err != nil {
		return err
	}
	return s.repo.Reviews.Delete(ctx, reviewID)
}

func (s *ReviewService) requireOwnership(ctx context.Context, reviewID, userID string) error {
	review, err := s.repo.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if review.ReviewerID != userID {
		return ErrReviewNotFound
	}
	return nil
}
