package services

import "errors"

// Typed failures returned by the study and suggestion services. Handlers
// match them with errors.Is to choose a response status; nothing untyped
// crosses the service boundary.
var (
	// ErrDeckFetch wraps a store failure while reading the review deck.
	ErrDeckFetch = errors.New("could not fetch flashcards for review")

	// ErrCardNotFound covers both a missing card and a card owned by
	// someone else; the two are deliberately indistinguishable.
	ErrCardNotFound = errors.New("flashcard not found")

	// ErrCardUpdate wraps a store failure while persisting a grade.
	ErrCardUpdate = errors.New("could not update the flashcard")

	// ErrSuggestionNotFound covers missing and not-owned suggestions.
	ErrSuggestionNotFound = errors.New("suggestion not found")

	// ErrAlreadyProcessed guards the one-way pending transition: a
	// suggestion can be accepted or rejected exactly once.
	ErrAlreadyProcessed = errors.New("suggestion has already been processed")

	// ErrDuplicateContent surfaces a uniqueness conflict on flashcard
	// content when accepting a suggestion.
	ErrDuplicateContent = errors.New("a flashcard with this content already exists")

	// ErrPersistence wraps a failed batch insert of generated suggestions.
	ErrPersistence = errors.New("failed to save suggestions")

	// ErrSuggestionUpdate wraps a store failure while resolving a
	// suggestion.
	ErrSuggestionUpdate = errors.New("could not update the suggestion")
)
