package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/fiszki/leitner-api/ai"
	"github.com/fiszki/leitner-api/models"
	"github.com/fiszki/leitner-api/services"
)

// Source text bounds for a generation request.
const (
	minSourceTextLen = 20
	maxSourceTextLen = 5000
)

func (a *API) GenerateSuggestions(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	textLen := utf8.RuneCountInString(req.Text)
	if textLen < minSourceTextLen || textLen > maxSourceTextLen {
		respondValidationError(w, "Invalid generation request", map[string][]string{
			"text": {fmt.Sprintf("Text must be between %d and %d characters long.", minSourceTextLen, maxSourceTextLen)},
		})
		return
	}

	suggestions, err := a.Suggestions.GenerateAndStore(r.Context(), req.Text, user.ID)
	if err != nil {
		var provErr *ai.ProviderError
		var parseErr *ai.ParseError
		switch {
		case errors.As(err, &provErr):
			respondError(w, http.StatusServiceUnavailable, "Failed to fetch suggestions from AI service")
		case errors.As(err, &parseErr):
			respondError(w, http.StatusBadGateway, "AI service returned an invalid response")
		case errors.Is(err, services.ErrPersistence):
			respondError(w, http.StatusInternalServerError, "Failed to save suggestions")
		default:
			respondError(w, http.StatusInternalServerError, "An unexpected error occurred")
		}
		return
	}

	respondJSON(w, http.StatusCreated, suggestions)
}

func (a *API) ListSuggestions(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	status := models.SuggestionStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		respondValidationError(w, "Invalid status filter", map[string][]string{
			"status": {"Status must be one of pending, accepted or rejected."},
		})
		return
	}

	suggestions, err := a.Suggestions.List(r.Context(), user.ID, status)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch suggestions")
		return
	}
	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}

	respondJSON(w, http.StatusOK, suggestions)
}

func (a *API) AcceptSuggestion(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	suggestionID := r.PathValue("suggestionID")

	card, err := a.Suggestions.Accept(r.Context(), suggestionID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSuggestionNotFound):
			respondError(w, http.StatusNotFound, "Suggestion not found")
		case errors.Is(err, services.ErrAlreadyProcessed):
			respondError(w, http.StatusConflict, "Suggestion has already been processed")
		case errors.Is(err, services.ErrDuplicateContent):
			respondError(w, http.StatusConflict, "This flashcard is already in your collection")
		default:
			respondError(w, http.StatusInternalServerError, "Failed to accept suggestion")
		}
		return
	}

	respondJSON(w, http.StatusCreated, card)
}

func (a *API) RejectSuggestion(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	suggestionID := r.PathValue("suggestionID")

	var req struct {
		Status models.SuggestionStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	// Rejection is the only status a client can set directly.
	if req.Status != models.SuggestionRejected {
		respondValidationError(w, "Invalid status update", map[string][]string{
			"status": {"Only the rejected status can be set."},
		})
		return
	}

	suggestion, err := a.Suggestions.Reject(r.Context(), suggestionID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSuggestionNotFound):
			respondError(w, http.StatusNotFound, "Suggestion not found")
		case errors.Is(err, services.ErrAlreadyProcessed):
			respondError(w, http.StatusConflict, "Suggestion has already been processed")
		default:
			respondError(w, http.StatusInternalServerError, "Failed to reject suggestion")
		}
		return
	}

	respondJSON(w, http.StatusOK, suggestion)
}
