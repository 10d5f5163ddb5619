package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fiszki/leitner-api/models"
)

// Content limits match the column sizes.
const (
	maxFrontLen = 200
	maxBackLen  = 1000
)

type pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

type paginatedFlashcards struct {
	Data       []models.Flashcard `json:"data"`
	Pagination pagination         `json:"pagination"`
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func validateCardContent(front, back string) map[string][]string {
	issues := map[string][]string{}
	if strings.TrimSpace(front) == "" {
		issues["front"] = append(issues["front"], "Front text is required.")
	} else if utf8.RuneCountInString(front) > maxFrontLen {
		issues["front"] = append(issues["front"], "Front text cannot exceed 200 characters.")
	}
	if strings.TrimSpace(back) == "" {
		issues["back"] = append(issues["back"], "Back text is required.")
	} else if utf8.RuneCountInString(back) > maxBackLen {
		issues["back"] = append(issues["back"], "Back text cannot exceed 1000 characters.")
	}
	return issues
}

func (a *API) ListFlashcards(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "pageSize", 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	if err := a.DB.Model(&models.Flashcard{}).Where("user_id = ?", user.ID).Count(&total).Error; err != nil {
		a.Log.Error("flashcard count failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch flashcards")
		return
	}

	var cards []models.Flashcard
	err := a.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&cards).Error
	if err != nil {
		a.Log.Error("flashcard list failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch flashcards")
		return
	}
	if cards == nil {
		cards = []models.Flashcard{}
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	respondJSON(w, http.StatusOK, paginatedFlashcards{
		Data: cards,
		Pagination: pagination{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: totalPages,
		},
	})
}

func (a *API) CreateFlashcard(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req struct {
		Front string `json:"front"`
		Back  string `json:"back"`
	}
	if err := decoder.Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Could not decode request")
		return
	}
	if issues := validateCardContent(req.Front, req.Back); len(issues) > 0 {
		respondValidationError(w, "Invalid flashcard data", issues)
		return
	}

	publicID, err := gonanoid.New()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate ID")
		return
	}

	// New cards start in box 1 and are due immediately.
	card := models.Flashcard{
		PublicID:     publicID,
		UserID:       user.ID,
		Front:        req.Front,
		Back:         req.Back,
		LeitnerBox:   models.MinLeitnerBox,
		NextReviewAt: time.Now(),
		Source:       models.SourceManual,
	}
	if err := a.DB.Create(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(w, http.StatusConflict, "A flashcard with this content already exists")
			return
		}
		a.Log.Error("flashcard create failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to create flashcard")
		return
	}

	respondJSON(w, http.StatusCreated, card)
}

func (a *API) UpdateFlashcard(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	cardID := r.PathValue("flashcardID")

	var card models.Flashcard
	if err := a.DB.Where("public_id = ? AND user_id = ?", cardID, user.ID).First(&card).Error; err != nil {
		respondError(w, http.StatusNotFound, "Flashcard not found")
		return
	}

	var req struct {
		Front *string `json:"front,omitempty"`
		Back  *string `json:"back,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Could not decode request")
		return
	}

	if req.Front != nil {
		card.Front = *req.Front
	}
	if req.Back != nil {
		card.Back = *req.Back
	}
	if issues := validateCardContent(card.Front, card.Back); len(issues) > 0 {
		respondValidationError(w, "Invalid flashcard data", issues)
		return
	}

	if err := a.DB.Save(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(w, http.StatusConflict, "A flashcard with this content already exists")
			return
		}
		a.Log.Error("flashcard update failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to update flashcard")
		return
	}

	respondJSON(w, http.StatusOK, card)
}

func (a *API) DeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	cardID := r.PathValue("flashcardID")

	result := a.DB.Where("public_id = ? AND user_id = ?", cardID, user.ID).Delete(&models.Flashcard{})
	if result.Error != nil {
		a.Log.Error("flashcard delete failed", zap.Error(result.Error))
		respondError(w, http.StatusInternalServerError, "Failed to delete flashcard")
		return
	}
	if result.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Flashcard not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
