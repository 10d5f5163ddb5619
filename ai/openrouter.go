// Package ai calls an OpenRouter-compatible chat-completions API to turn
// free text into flashcard candidates.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://openrouter.ai/api/v1"

// DefaultModel is used when no model is configured.
const DefaultModel = "openai/gpt-4o-mini"

// Candidate is one generated flashcard awaiting triage.
type Candidate struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// ProviderError reports a failed call to the generation provider: either a
// non-success HTTP status or a transport failure. Callers may treat it as
// retryable.
type ProviderError struct {
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation provider request failed: %v", e.Err)
	}
	return fmt.Sprintf("generation provider request failed with status %d", e.StatusCode)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ParseError reports a provider response whose content does not match the
// expected flashcard-set shape.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "invalid provider response: " + e.Reason
}

// Client talks to the chat-completions endpoint. One request per
// invocation, no retries.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a generation client. The model may be empty to use
// DefaultModel; the API key is required.
func NewClient(apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenRouter API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// Message represents a role-tagged message in the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type jsonSchema struct {
	Name   string          `json:"name"`
	Strict bool            `json:"strict"`
	Schema json.RawMessage `json:"schema"`
}

type responseFormat struct {
	Type       string     `json:"type"`
	JSONSchema jsonSchema `json:"json_schema"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []Message      `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
	MaxTokens      int            `json:"max_tokens"`
	Temperature    float64        `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// flashcardSet is the only response shape the client accepts: the strict
// schema-validated object form.
type flashcardSet struct {
	Flashcards []Candidate `json:"flashcards"`
}

// flashcardSetSchema constrains the model to a JSON object wrapping an
// array of {front, back} pairs.
var flashcardSetSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "flashcards": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "front": {"type": "string", "description": "The question or front side of the flashcard."},
          "back": {"type": "string", "description": "The answer or back side of the flashcard."}
        },
        "required": ["front", "back"],
        "additionalProperties": false
      }
    }
  },
  "required": ["flashcards"],
  "additionalProperties": false
}`)

const systemPrompt = "You are an expert in creating effective educational flashcards. " +
	"Your task is to generate a set of flashcards based on the user's text. " +
	"Each flashcard must have a clear question (front) and a concise answer (back). " +
	"Respond ONLY with the JSON object matching the provided schema."

// GenerateFlashcards asks the provider for count flashcard candidates based
// on the given text. Length bounds on the text are the caller's
// responsibility; the text is embedded verbatim in the prompt.
func (c *Client) GenerateFlashcards(ctx context.Context, text string, count int) ([]Candidate, error) {
	request := chatRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{
				Role:    "user",
				Content: fmt.Sprintf("Based on the following text, please generate a set of %d flashcards. Text: \"\"\"%s\"\"\"", count, text),
			},
		},
		ResponseFormat: responseFormat{
			Type: "json_schema",
			JSONSchema: jsonSchema{
				Name:   "create_flashcards",
				Strict: true,
				Schema: flashcardSetSchema,
			},
		},
		MaxTokens:   4096,
		Temperature: 0.2,
	}

	requestData, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(requestData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ProviderError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &ProviderError{StatusCode: resp.StatusCode}
	}

	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, &ParseError{Reason: "body is not valid JSON"}
	}
	if len(response.Choices) == 0 {
		return nil, &ParseError{Reason: "no choices found"}
	}

	content := strings.TrimSpace(response.Choices[0].Message.Content)

	var set flashcardSet
	if err := json.Unmarshal([]byte(content), &set); err != nil {
		return nil, &ParseError{Reason: "message content is not valid JSON"}
	}
	if len(set.Flashcards) == 0 {
		return nil, &ParseError{Reason: "no flashcards in response"}
	}
	for _, card := range set.Flashcards {
		if strings.TrimSpace(card.Front) == "" || strings.TrimSpace(card.Back) == "" {
			return nil, &ParseError{Reason: "flashcard with empty front or back"}
		}
	}

	return set.Flashcards, nil
}
