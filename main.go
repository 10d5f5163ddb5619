package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/fiszki/leitner-api/ai"
	"github.com/fiszki/leitner-api/config"
	"github.com/fiszki/leitner-api/handlers"
	"github.com/fiszki/leitner-api/middleware"
	"github.com/fiszki/leitner-api/services"
)

func init() {
	// Load .env file if not in production environment
	if os.Getenv("APP_ENV") != "production" {
		err := godotenv.Load()
		if err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.Connect(logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	aiClient, err := ai.NewClient(os.Getenv("OPENROUTER_API_KEY"), os.Getenv("OPENROUTER_MODEL"))
	if err != nil {
		logger.Fatal("Failed to configure AI client", zap.Error(err))
	}

	api := &handlers.API{
		DB:          db,
		Log:         logger,
		Study:       services.NewStudyService(db, logger),
		Suggestions: services.NewSuggestionService(db, logger, aiClient),
	}

	mux := api.Routes(middleware.RequireUser(db, logger))

	allowedOrigins := []string{"http://localhost:3000", "http://localhost:4321"}
	if origin := os.Getenv("FRONTEND_ORIGIN"); origin != "" {
		allowedOrigins = append(allowedOrigins, origin)
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(mux)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // fallback port for local development
	}
	serverAddr := "0.0.0.0:" + port

	logger.Info("Starting server", zap.String("addr", serverAddr))
	if err := http.ListenAndServe(serverAddr, corsHandler); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
