package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient("test-key", "")
	require.NoError(t, err)
	c.baseURL = baseURL
	return c
}

func completionBody(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return string(body)
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient("", "openai/gpt-4o-mini")
	require.Error(t, err)

	c, err := NewClient("key", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, c.model)
}

func TestGenerateFlashcards(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, completionBody(`{"flashcards":[{"front":"What is Go?","back":"A programming language."},{"front":"Who made it?","back":"Google."}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	cards, err := c.GenerateFlashcards(context.Background(), "Go is a programming language designed at Google.", 2)
	require.NoError(t, err)

	require.Len(t, cards, 2)
	assert.Equal(t, "What is Go?", cards[0].Front)
	assert.Equal(t, "A programming language.", cards[0].Back)

	// The request carries the contract: model, system+user messages and the
	// strict schema constraint.
	assert.Equal(t, DefaultModel, got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Contains(t, got.Messages[1].Content, "Go is a programming language designed at Google.")
	assert.Contains(t, got.Messages[1].Content, "2 flashcards")
	assert.Equal(t, "json_schema", got.ResponseFormat.Type)
	assert.Equal(t, "create_flashcards", got.ResponseFormat.JSONSchema.Name)
	assert.True(t, got.ResponseFormat.JSONSchema.Strict)
}

func TestGenerateFlashcardsProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GenerateFlashcards(context.Background(), "some text", 5)
	require.Error(t, err)

	var provErr *ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, http.StatusBadGateway, provErr.StatusCode)
}

func TestGenerateFlashcardsParseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "body not json", body: "not json at all"},
		{name: "no choices", body: `{"choices":[]}`},
		{name: "content not json", body: completionBody("Sure! Here are your flashcards:")},
		{name: "bare array variant rejected", body: completionBody(`[{"front":"a","back":"b"}]`)},
		{name: "empty set", body: completionBody(`{"flashcards":[]}`)},
		{name: "blank front", body: completionBody(`{"flashcards":[{"front":"  ","back":"b"}]}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL)
			_, err := c.GenerateFlashcards(context.Background(), "some text", 5)
			require.Error(t, err)

			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr), "got %v", err)
		})
	}
}
