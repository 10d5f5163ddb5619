package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fiszki/leitner-api/models"
)

// newTestDB opens a private in-memory SQLite database named after the test,
// with the same error translation the real connection uses.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Flashcard{}, &models.Suggestion{}))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	publicID, err := gonanoid.New()
	require.NoError(t, err)
	user := models.User{PublicID: publicID, Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createCard(t *testing.T, db *gorm.DB, userID uint, front, back string, box int, due time.Time) models.Flashcard {
	t.Helper()

	publicID, err := gonanoid.New()
	require.NoError(t, err)
	card := models.Flashcard{
		PublicID:     publicID,
		UserID:       userID,
		Front:        front,
		Back:         back,
		LeitnerBox:   box,
		NextReviewAt: due,
		Source:       models.SourceManual,
	}
	require.NoError(t, db.Create(&card).Error)
	return card
}

func createSuggestion(t *testing.T, db *gorm.DB, userID uint, front, back string, status models.SuggestionStatus) models.Suggestion {
	t.Helper()

	publicID, err := gonanoid.New()
	require.NoError(t, err)
	sug := models.Suggestion{
		PublicID:        publicID,
		UserID:          userID,
		BatchID:         "00000000-0000-0000-0000-000000000000",
		FrontSuggestion: front,
		BackSuggestion:  back,
		SourceTextHash:  "deadbeef",
		Status:          status,
	}
	require.NoError(t, db.Create(&sug).Error)
	return sug
}
