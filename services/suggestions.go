package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fiszki/leitner-api/ai"
	"github.com/fiszki/leitner-api/models"
)

// DefaultSuggestionCount is how many candidates one generation call asks
// the provider for.
const DefaultSuggestionCount = 5

// Generator produces flashcard candidates from free text.
type Generator interface {
	GenerateFlashcards(ctx context.Context, text string, count int) ([]ai.Candidate, error)
}

// SuggestionService persists generated candidates and commits accept/reject
// decisions.
type SuggestionService struct {
	db        *gorm.DB
	log       *zap.Logger
	generator Generator
}

func NewSuggestionService(db *gorm.DB, log *zap.Logger, generator Generator) *SuggestionService {
	return &SuggestionService{
		db:        db,
		log:       log.With(zap.String("service", "SuggestionService")),
		generator: generator,
	}
}

// GenerateAndStore calls the generator and persists one row per candidate.
// The whole batch shares a freshly generated batch ID and a hash of the
// source text, and is inserted in a single create: if the store rejects it,
// nothing is persisted and the candidates are discarded.
func (s *SuggestionService) GenerateAndStore(ctx context.Context, text string, userID uint) ([]models.Suggestion, error) {
	candidates, err := s.generator.GenerateFlashcards(ctx, text, DefaultSuggestionCount)
	if err != nil {
		s.log.Warn("suggestion generation failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	batchID := uuid.NewString()
	hash := sha256.Sum256([]byte(text))
	sourceTextHash := hex.EncodeToString(hash[:])

	suggestions := make([]models.Suggestion, 0, len(candidates))
	for _, c := range candidates {
		publicID, err := gonanoid.New()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		suggestions = append(suggestions, models.Suggestion{
			PublicID:        publicID,
			UserID:          userID,
			BatchID:         batchID,
			FrontSuggestion: c.Front,
			BackSuggestion:  c.Back,
			SourceTextHash:  sourceTextHash,
			Status:          models.SuggestionPending,
		})
	}

	if err := s.db.WithContext(ctx).Create(&suggestions).Error; err != nil {
		s.log.Error("suggestion batch insert failed",
			zap.Uint("user_id", userID),
			zap.String("batch_id", batchID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return suggestions, nil
}

// List returns the user's suggestions, optionally filtered by status. An
// empty result is valid.
func (s *SuggestionService) List(ctx context.Context, userID uint, status models.SuggestionStatus) ([]models.Suggestion, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var suggestions []models.Suggestion
	if err := query.Order("created_at DESC").Find(&suggestions).Error; err != nil {
		s.log.Error("suggestion list failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("list suggestions: %w", err)
	}
	return suggestions, nil
}

// Accept turns a pending suggestion into a flashcard (source=ai, box 1, due
// immediately) and marks the suggestion consumed. The read-insert-update
// sequence runs in one transaction, so a conflict at any step leaves no
// partial state behind.
func (s *SuggestionService) Accept(ctx context.Context, suggestionID string, userID uint) (*models.Flashcard, error) {
	var card models.Flashcard

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sug models.Suggestion
		if err := tx.Where("public_id = ? AND user_id = ?", suggestionID, userID).First(&sug).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSuggestionNotFound
			}
			return fmt.Errorf("%w: %v", ErrSuggestionNotFound, err)
		}
		if sug.Status != models.SuggestionPending {
			return ErrAlreadyProcessed
		}

		publicID, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSuggestionUpdate, err)
		}
		card = models.Flashcard{
			PublicID:     publicID,
			UserID:       userID,
			Front:        sug.FrontSuggestion,
			Back:         sug.BackSuggestion,
			LeitnerBox:   models.MinLeitnerBox,
			NextReviewAt: time.Now(),
			Source:       models.SourceAI,
		}
		if err := tx.Create(&card).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateContent
			}
			return fmt.Errorf("%w: %v", ErrSuggestionUpdate, err)
		}

		// The status filter makes a concurrent accept/reject of the same
		// suggestion lose cleanly instead of double-processing.
		res := tx.Model(&models.Suggestion{}).
			Where("id = ? AND status = ?", sug.ID, models.SuggestionPending).
			Update("status", models.SuggestionAccepted)
		if res.Error != nil {
			return fmt.Errorf("%w: %v", ErrSuggestionUpdate, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSuggestionNotFound),
			errors.Is(err, ErrAlreadyProcessed),
			errors.Is(err, ErrDuplicateContent):
		default:
			s.log.Error("accept suggestion failed",
				zap.String("suggestion_id", suggestionID),
				zap.Uint("user_id", userID),
				zap.Error(err))
		}
		return nil, err
	}

	return &card, nil
}

// Reject marks a pending suggestion rejected. The same ownership scoping
// and terminal-state guard as Accept apply; rejection is not revocable.
func (s *SuggestionService) Reject(ctx context.Context, suggestionID string, userID uint) (*models.Suggestion, error) {
	db := s.db.WithContext(ctx)

	var sug models.Suggestion
	if err := db.Where("public_id = ? AND user_id = ?", suggestionID, userID).First(&sug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSuggestionNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrSuggestionNotFound, err)
	}
	if sug.Status != models.SuggestionPending {
		return nil, ErrAlreadyProcessed
	}

	res := db.Model(&models.Suggestion{}).
		Where("id = ? AND status = ?", sug.ID, models.SuggestionPending).
		Update("status", models.SuggestionRejected)
	if res.Error != nil {
		s.log.Error("reject suggestion failed",
			zap.String("suggestion_id", suggestionID),
			zap.Uint("user_id", userID),
			zap.Error(res.Error))
		return nil, fmt.Errorf("%w: %v", ErrSuggestionUpdate, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrAlreadyProcessed
	}

	sug.Status = models.SuggestionRejected
	return &sug, nil
}
