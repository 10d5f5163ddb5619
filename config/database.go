package config

import (
	"os"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fiszki/leitner-api/models"
)

// Connect opens the database and migrates the schema. Postgres is used when
// DB_URL is set; otherwise a local SQLite file keeps development simple.
// TranslateError lets uniqueness violations surface as gorm.ErrDuplicatedKey
// on both drivers.
func Connect(log *zap.Logger) (*gorm.DB, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}

	var (
		db  *gorm.DB
		err error
	)
	if dbURL := os.Getenv("DB_URL"); dbURL != "" {
		db, err = gorm.Open(postgres.Open(dbURL), cfg)
	} else {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "leitner.db"
		}
		log.Info("DB_URL not set, using local SQLite database", zap.String("path", path))
		db, err = gorm.Open(sqlite.Open(path), cfg)
	}
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.User{}, &models.Flashcard{}, &models.Suggestion{}); err != nil {
		return nil, err
	}
	return db, nil
}
