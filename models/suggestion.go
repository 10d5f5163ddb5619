package models

import "time"

// SuggestionStatus tracks triage of an AI-generated candidate. Transitions
// are one-way: pending to accepted or rejected, never back.
type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionAccepted SuggestionStatus = "accepted"
	SuggestionRejected SuggestionStatus = "rejected"
)

func (s SuggestionStatus) Valid() bool {
	switch s {
	case SuggestionPending, SuggestionAccepted, SuggestionRejected:
		return true
	}
	return false
}

// Suggestion is an AI-proposed flashcard candidate awaiting accept/reject.
// BatchID groups every suggestion produced by one generation call.
// SourceTextHash fingerprints the originating text for audit and is never
// serialized to clients.
type Suggestion struct {
	ID              uint             `gorm:"primarykey" json:"-"`
	PublicID        string           `gorm:"uniqueIndex;not null;size:21" json:"id"`
	UserID          uint             `gorm:"not null;index" json:"user_id"`
	BatchID         string           `gorm:"not null;index;size:36" json:"batch_id"`
	FrontSuggestion string           `gorm:"not null;size:200" json:"front_suggestion"`
	BackSuggestion  string           `gorm:"not null;size:1000" json:"back_suggestion"`
	SourceTextHash  string           `gorm:"not null;size:64" json:"-"`
	Status          SuggestionStatus `gorm:"not null;default:pending;size:16" json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"-"`
}
