// Package client is a small HTTP client for the study API. It keeps the
// auth cookie issued at login in a cookie jar, so one Client covers a
// whole logged-in session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/fiszki/leitner-api/models"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Client talks to a running study API server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}, nil
}

// do sends a JSON request and decodes a JSON response into out when the
// status matches wantStatus. Anything else comes back as an *APIError.
func (c *Client) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = new(bytes.Buffer)
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var errBody struct {
			Message string `json:"message"`
		}
		json.NewDecoder(resp.Body).Decode(&errBody)
		return &APIError{StatusCode: resp.StatusCode, Message: errBody.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response body: %w", err)
		}
	}
	return nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": password,
	}, http.StatusCreated, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and stores the session cookie on the client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, http.StatusOK, nil)
}

// Logout clears the session on the server side and drops the cookie.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, http.StatusNoContent, nil)
}

// ReviewDeck fetches the cards due for review.
func (c *Client) ReviewDeck(ctx context.Context) ([]models.Flashcard, error) {
	var deck []models.Flashcard
	if err := c.do(ctx, http.MethodGet, "/api/flashcards/review", nil, http.StatusOK, &deck); err != nil {
		return nil, err
	}
	return deck, nil
}

// GradeFlashcard submits a review outcome for one card and returns the
// rescheduled card.
func (c *Client) GradeFlashcard(ctx context.Context, cardID string, outcome models.ReviewOutcome) (*models.Flashcard, error) {
	var card models.Flashcard
	err := c.do(ctx, http.MethodPost, "/api/flashcards/"+cardID+"/review", map[string]models.ReviewOutcome{
		"outcome": outcome,
	}, http.StatusOK, &card)
	if err != nil {
		return nil, err
	}
	return &card, nil
}
