package models

import "time"

// Event lifecycle statuses. The lifecycle only moves forward:
// gift_registration → gift_selection → active → completed, with cancellation
// reserved for any state that is not yet terminal.
const (
	EventStatusGiftRegistration = "gift_registration"
	EventStatusGiftSelection    = "gift_selection"
	EventStatusActive           = "active"
	EventStatusCompleted        = "completed"
	EventStatusCancelled        = "cancelled"
)

// Event represents a time-boxed gift exchange with a participant set.
type Event struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	Title         string    `json:"title" gorm:"not null"`
	Slug          string    `json:"slug" gorm:"index"`
	Description   string    `json:"description"`
	CoverPhotoURL string    `json:"cover_photo_url,omitempty"`
	CreatedBy     string    `json:"created_by" gorm:"not null;index"`
	StartDate     time.Time `json:"start_date" gorm:"not null"`
	EndDate       time.Time `json:"end_date" gorm:"not null;index"`
	Status        string    `json:"status" gorm:"default:'gift_registration';index"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// EventParticipant joins a user to an event. The composite unique index is
// what actually prevents duplicate joins, not the write path.
type EventParticipant struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	EventID   string    `json:"event_id" gorm:"not null;uniqueIndex:idx_event_user"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex:idx_event_user;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// ParticipantGiftStatus is the aggregated view of one participant on the
// event detail screen: who they are and whether they currently hold a gift.
type ParticipantGiftStatus struct {
	ID                      string  `json:"id"`
	UserID                  string  `json:"user_id"`
	Username                string  `json:"username"`
	HasSelectedGift         bool    `json:"has_selected_gift"`
	SelectedGiftDescription *string `json:"selected_gift_description,omitempty"`
	SelectedGiftCreatorName *string `json:"selected_gift_creator_name,omitempty"`
}

// OpenStatuses lists the statuses in which an event is still running.
func OpenStatuses() []string {
	return []string{EventStatusGiftRegistration, EventStatusGiftSelection, EventStatusActive}
}
