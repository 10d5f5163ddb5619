package models

import "time"

// Source values describe where a flashcard came from.
const (
	SourceManual = "manual"
	SourceAI     = "ai"
)

// Leitner box bounds. Boxes outside this range never exist in the store.
const (
	MinLeitnerBox = 1
	MaxLeitnerBox = 5
)

// Flashcard represents a single card in a user's collection. The composite
// unique index on (user_id, front, back) backs the "already in your
// collection" conflict when a suggestion with identical content is accepted.
type Flashcard struct {
	ID           uint      `gorm:"primarykey" json:"-"`
	PublicID     string    `gorm:"uniqueIndex;not null;size:21" json:"id"`
	UserID       uint      `gorm:"not null;index;uniqueIndex:idx_flashcards_user_content" json:"-"`
	Front        string    `gorm:"not null;size:200;uniqueIndex:idx_flashcards_user_content" json:"front"`
	Back         string    `gorm:"not null;size:1000;uniqueIndex:idx_flashcards_user_content" json:"back"`
	LeitnerBox   int       `gorm:"not null;default:1" json:"leitner_box"`
	NextReviewAt time.Time `gorm:"not null;index" json:"next_review_at"`
	Source       string    `gorm:"not null;default:manual;size:16" json:"source"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ReviewOutcome is the result of reviewing one card.
type ReviewOutcome string

const (
	OutcomeCorrect   ReviewOutcome = "correct"
	OutcomeIncorrect ReviewOutcome = "incorrect"
)

func (o ReviewOutcome) Valid() bool {
	return o == OutcomeCorrect || o == OutcomeIncorrect
}
