package models

import "time"

// Invitation is a single-use, time-limited code gating sign-up.
// A code is consumed on the first successful sign-up that presents it;
// the expiry sweep invalidates whatever is left past expires_at.
type Invitation struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Code      string    `json:"code" gorm:"uniqueIndex;not null;type:varchar(16)"`
	CreatedBy string    `json:"created_by" gorm:"not null;index"`
	UsedBy    *string   `json:"used_by,omitempty"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	IsValid   bool      `json:"is_valid" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
