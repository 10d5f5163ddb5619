package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fiszki/leitner-api/middleware"
	"github.com/fiszki/leitner-api/models"
	"github.com/fiszki/leitner-api/services"
)

// API bundles the dependencies shared by all HTTP handlers.
type API struct {
	DB          *gorm.DB
	Log         *zap.Logger
	Study       *services.StudyService
	Suggestions *services.SuggestionService
}

type errorResponse struct {
	Message string              `json:"message"`
	Issues  map[string][]string `json:"issues,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Message: message})
}

// respondValidationError reports field-level validation detail with a 400.
func respondValidationError(w http.ResponseWriter, message string, issues map[string][]string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{Message: message, Issues: issues})
}

// currentUser returns the authenticated user, writing a 401 when the
// middleware did not attach one.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
	}
	return user, ok
}
