package main

import (
	"log"
	"os"

	"paper-review-api/config"
	"paper-review-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	settings := config.Load()

	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	if settings.JWTSecret == "" {
		config.Logger.Fatal().Msg("JWT_SECRET is not defined")
	}

	// Initialize database
	if err := config.InitDB(); err != nil {
		config.Logger.Fatal().Err(err).Msg("Failed to initialize database")
	}

	if settings.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = config.LogWriter
	gin.DefaultErrorWriter = config.LogWriter

	// Create upload directory if not exists
	if err := os.MkdirAll(settings.UploadPath, os.ModePerm); err != nil {
		config.Logger.Warn().Err(err).Msg("Failed to create upload directory")
	}

	router := routes.NewRouter()

	config.Logger.Info().
		Str("port", settings.Port).
		Str("environment", settings.Environment).
		Str("upload_path", settings.UploadPath).
		Msg("Server starting")

	if err := router.Run(":" + settings.Port); err != nil {
		config.Logger.Fatal().Err(err).Msg("Failed to start server")
	}
}
