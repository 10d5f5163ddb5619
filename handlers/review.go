package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fiszki/leitner-api/models"
	"github.com/fiszki/leitner-api/services"
)

func (a *API) GetReviewDeck(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	deck, err := a.Study.GetReviewDeck(r.Context(), user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch review deck")
		return
	}
	if deck == nil {
		deck = []models.Flashcard{}
	}

	respondJSON(w, http.StatusOK, deck)
}

func (a *API) GradeFlashcard(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	cardID := r.PathValue("flashcardID")

	var req struct {
		Outcome models.ReviewOutcome `json:"outcome"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if !req.Outcome.Valid() {
		respondValidationError(w, "Invalid request body", map[string][]string{
			"outcome": {"Outcome must be either correct or incorrect."},
		})
		return
	}

	card, err := a.Study.GradeFlashcard(r.Context(), cardID, user.ID, req.Outcome)
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			respondError(w, http.StatusNotFound, "Flashcard not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to grade flashcard")
		return
	}

	respondJSON(w, http.StatusOK, card)
}
