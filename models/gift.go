package models

import "time"

// Gift statuses. available → selected happens through a conditional update
// keyed on status, selected → available only by the current holder, and
// completion is reserved for the event completion cascade.
const (
	GiftStatusAvailable = "available"
	GiftStatusSelected  = "selected"
	GiftStatusCompleted = "completed"
)

// Gift is an anonymously-described item registered by a participant and
// selectable by exactly one other participant.
type Gift struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	EventID     string    `json:"event_id" gorm:"not null;index"`
	Description string    `json:"description" gorm:"not null"`
	CreatedBy   string    `json:"created_by" gorm:"not null;index"`
	ReceivedBy  *string   `json:"received_by,omitempty" gorm:"index"`
	Status      string    `json:"status" gorm:"default:'available';index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// AnonymousGift is the projection shown to selectors: no creator, no receiver.
type AnonymousGift struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Anonymize strips the identity fields off a gift.
func (g Gift) Anonymize() AnonymousGift {
	return AnonymousGift{
		ID:          g.ID,
		EventID:     g.EventID,
		Description: g.Description,
		Status:      g.Status,
		CreatedAt:   g.CreatedAt,
	}
}
