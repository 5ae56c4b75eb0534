package models

import "time"

// User is an invited member of the exchange. Accounts can only be created
// through a valid invitation code, so every user traces back to an inviter.
type User struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Username     string     `json:"username" gorm:"not null"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}
