package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fiszki/leitner-api/models"
	"github.com/fiszki/leitner-api/scheduler"
)

// StudyService orchestrates review-deck fetching and grading transitions.
type StudyService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStudyService(db *gorm.DB, log *zap.Logger) *StudyService {
	return &StudyService{db: db, log: log.With(zap.String("service", "StudyService"))}
}

// GetReviewDeck returns every flashcard owned by userID whose next review
// is due now or earlier. An empty deck is a valid result; ordering is
// whatever the store returns.
func (s *StudyService) GetReviewDeck(ctx context.Context, userID uint) ([]models.Flashcard, error) {
	var cards []models.Flashcard
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND next_review_at <= ?", userID, time.Now()).
		Find(&cards).Error
	if err != nil {
		s.log.Error("review deck fetch failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrDeckFetch, err)
	}
	return cards, nil
}

// GradeFlashcard applies a review outcome: correct moves the card up one
// box (capped at 5), incorrect resets it to box 1 with no partial credit.
// The next review date follows from the new box. The lookup is scoped to
// the owner, so someone else's card reads as not found.
func (s *StudyService) GradeFlashcard(ctx context.Context, cardID string, userID uint, outcome models.ReviewOutcome) (*models.Flashcard, error) {
	db := s.db.WithContext(ctx)

	var card models.Flashcard
	if err := db.Where("public_id = ? AND user_id = ?", cardID, userID).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrCardNotFound, err)
	}

	if outcome == models.OutcomeCorrect {
		card.LeitnerBox = min(card.LeitnerBox+1, models.MaxLeitnerBox)
	} else {
		card.LeitnerBox = models.MinLeitnerBox
	}

	nextReview, err := scheduler.NextReviewDate(card.LeitnerBox)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCardUpdate, err)
	}
	card.NextReviewAt = nextReview

	if err := db.Save(&card).Error; err != nil {
		s.log.Error("grade persist failed",
			zap.String("card_id", cardID),
			zap.Uint("user_id", userID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrCardUpdate, err)
	}

	return &card, nil
}
