package models

import "time"

// User represents an account in the system.
type User struct {
	ID           uint      `gorm:"primarykey" json:"-"`
	PublicID     string    `gorm:"uniqueIndex;not null;size:21" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}
