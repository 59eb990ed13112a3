package config

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// LogWriter is the writer used for application and database logs.
var LogWriter io.Writer = os.Stdout

// Logger is the structured application logger.
var Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// LogFilePath returns the path to the backend log file.
func LogFilePath() string {
	return filepath.Join("logs", "paper-review.log")
}

// InitLogging opens the log file and points LogWriter, Logger and the standard logger at it.
func InitLogging() (*os.File, io.Writer) {
	level := zerolog.InfoLevel
	if App.Environment == "development" {
		level = zerolog.DebugLevel
	}

	logPath := filepath.Dir(LogFilePath())
	if err := os.MkdirAll(logPath, os.ModePerm); err != nil {
		log.Printf("Warning: Failed to create logs directory: %v", err)
	}

	logFile, err := os.OpenFile(LogFilePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("Warning: Failed to open log file: %v", err)
		LogWriter = os.Stdout
	} else {
		LogWriter = io.MultiWriter(os.Stdout, zerolog.SyncWriter(logFile))
	}

	Logger = zerolog.New(LogWriter).Level(level).With().Timestamp().Logger()
	log.SetFlags(0)
	log.SetOutput(Logger)
	return logFile, LogWriter
}
