// Package session implements the client-side study flow: it walks a
// fetched review deck card by card and tracks reveal, grading and summary
// state.
package session

import (
	"context"
	"errors"

	"github.com/fiszki/leitner-api/models"
)

// Status is the study session state.
type Status string

const (
	StatusLoading  Status = "loading"
	StatusEmpty    Status = "empty"
	StatusStudying Status = "studying"
	StatusSummary  Status = "summary"
)

// StudyAPI is the slice of the review wire contract the session needs.
type StudyAPI interface {
	ReviewDeck(ctx context.Context) ([]models.Flashcard, error)
	GradeFlashcard(ctx context.Context, cardID string, outcome models.ReviewOutcome) (*models.Flashcard, error)
}

var (
	ErrNotStudying    = errors.New("session is not in the studying state")
	ErrAlreadyStarted = errors.New("session has already been started")
)

// StudySession owns one study flow. The deck snapshot is fixed once loaded
// and never refetched mid-session. Construct one per flow; it is not safe
// for concurrent use.
type StudySession struct {
	api StudyAPI

	status        Status
	cards         []models.Flashcard
	index         int
	answerVisible bool
	correct       int
}

// New returns a session in the loading state.
func New(api StudyAPI) *StudySession {
	return &StudySession{api: api, status: StatusLoading}
}

// Start fetches the review deck. A fetch failure leaves the session in the
// loading state so the caller can surface the error and retry. An empty
// deck ends the session immediately in the empty state.
func (s *StudySession) Start(ctx context.Context) error {
	if s.status != StatusLoading {
		return ErrAlreadyStarted
	}
	cards, err := s.api.ReviewDeck(ctx)
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		s.status = StatusEmpty
		return nil
	}
	s.cards = cards
	s.status = StatusStudying
	return nil
}

func (s *StudySession) Status() Status { return s.status }

// CurrentCard returns the card under review; ok is false outside the
// studying state.
func (s *StudySession) CurrentCard() (models.Flashcard, bool) {
	if s.status != StatusStudying {
		return models.Flashcard{}, false
	}
	return s.cards[s.index], true
}

func (s *StudySession) AnswerVisible() bool { return s.answerVisible }

// ShowAnswer reveals the back of the current card.
func (s *StudySession) ShowAnswer() error {
	if s.status != StatusStudying {
		return ErrNotStudying
	}
	s.answerVisible = true
	return nil
}

// GradeAnswer submits the outcome for the current card. On a failed
// submission the session stays on the same card and the error is returned;
// on success the session advances with the answer hidden again, moving to
// the summary past the last card.
func (s *StudySession) GradeAnswer(ctx context.Context, outcome models.ReviewOutcome) error {
	if s.status != StatusStudying {
		return ErrNotStudying
	}

	card := s.cards[s.index]
	if _, err := s.api.GradeFlashcard(ctx, card.PublicID, outcome); err != nil {
		return err
	}

	if outcome == models.OutcomeCorrect {
		s.correct++
	}
	s.index++
	s.answerVisible = false
	if s.index >= len(s.cards) {
		s.status = StatusSummary
	}
	return nil
}

// ReviewedCount is the number of cards graded so far; once the session
// reaches the summary it equals the deck length.
func (s *StudySession) ReviewedCount() int {
	if s.status == StatusSummary {
		return len(s.cards)
	}
	return s.index
}

// CorrectCount is the number of cards graded correct so far.
func (s *StudySession) CorrectCount() int { return s.correct }
