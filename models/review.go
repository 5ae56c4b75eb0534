package models

import "time"

// GiftReview is a rated comment on a received gift. One review per
// (gift, reviewer) pair, enforced by the composite unique index.
type GiftReview struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	GiftID     string    `json:"gift_id" gorm:"not null;uniqueIndex:idx_gift_reviewer"`
	ReviewerID string    `json:"reviewer_id" gorm:"not null;uniqueIndex:idx_gift_reviewer;index"`
	Content    string    `json:"content" gorm:"type:text"`
	Rating     int       `json:"rating" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// AnonymousReview is the event-wide projection: reviewer identity removed.
type AnonymousReview struct {
	GiftID    string    `json:"gift_id"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewWithGift decorates a user's own review with the reviewed gift's
// description for the profile listing.
type ReviewWithGift struct {
	GiftReview
	GiftDescription string `json:"gift_description"`
}
