package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fiszki/leitner-api/ai"
	"github.com/fiszki/leitner-api/handlers"
	"github.com/fiszki/leitner-api/middleware"
	"github.com/fiszki/leitner-api/models"
	"github.com/fiszki/leitner-api/services"
)

// fakeGenerator stands in for the AI provider and counts how often it was
// asked to generate.
type fakeGenerator struct {
	candidates []ai.Candidate
	err        error
	calls      int
}

func (f *fakeGenerator) GenerateFlashcards(ctx context.Context, text string, count int) ([]ai.Candidate, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.candidates, nil
}

// newTestServer starts the full API on an in-memory database, with gen
// standing in for the AI provider.
func newTestServer(t *testing.T, gen services.Generator) (*httptest.Server, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET_KEY", "handlers-test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Flashcard{}, &models.Suggestion{}))

	log := zap.NewNop()
	api := &handlers.API{
		DB:          db,
		Log:         log,
		Study:       services.NewStudyService(db, log),
		Suggestions: services.NewSuggestionService(db, log, gen),
	}

	srv := httptest.NewServer(api.Routes(middleware.RequireUser(db, log)))
	t.Cleanup(srv.Close)
	return srv, db
}

// newAuthedClient registers an account and returns a client carrying its
// session cookie.
func newAuthedClient(t *testing.T, srv *httptest.Server, email string) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	creds := map[string]string{"email": email, "password": "correct horse"}
	resp := doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/register", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/login", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	return client
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

// decodeBody closes resp.Body after decoding it into out.
func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// readBody closes resp.Body and returns it as a string.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}
