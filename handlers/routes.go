package handlers

import "net/http"

// Routes builds the API mux. requireUser wraps every route that needs an
// authenticated session.
func (a *API) Routes(requireUser func(http.HandlerFunc) http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /api/auth/register", a.Register)
	mux.HandleFunc("POST /api/auth/login", a.Login)
	mux.HandleFunc("POST /api/auth/logout", a.Logout)

	// Flashcards
	mux.HandleFunc("GET /api/flashcards", requireUser(a.ListFlashcards))
	mux.HandleFunc("POST /api/flashcards", requireUser(a.CreateFlashcard))
	mux.HandleFunc("PATCH /api/flashcards/{flashcardID}", requireUser(a.UpdateFlashcard))
	mux.HandleFunc("DELETE /api/flashcards/{flashcardID}", requireUser(a.DeleteFlashcard))

	// Review
	mux.HandleFunc("GET /api/flashcards/review", requireUser(a.GetReviewDeck))
	mux.HandleFunc("POST /api/flashcards/{flashcardID}/review", requireUser(a.GradeFlashcard))

	// AI suggestions
	mux.HandleFunc("POST /api/ai-suggestions", requireUser(a.GenerateSuggestions))
	mux.HandleFunc("GET /api/ai-suggestions", requireUser(a.ListSuggestions))
	mux.HandleFunc("POST /api/ai-suggestions/{suggestionID}/accept", requireUser(a.AcceptSuggestion))
	mux.HandleFunc("PATCH /api/ai-suggestions/{suggestionID}", requireUser(a.RejectSuggestion))

	return mux
}
