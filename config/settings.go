package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Settings holds the environment-derived configuration of the API.
type Settings struct {
	Port          string
	GinMode       string
	Environment   string
	JWTSecret     string
	TokenTTL      time.Duration
	UploadPath    string
	MaxUploadSize int64
	AllowOrigins  []string
}

// App is populated by Load and read by the rest of the service.
var App = Settings{
	Port:          "8080",
	Environment:   "production",
	TokenTTL:      90 * 24 * time.Hour,
	UploadPath:    "./uploads",
	MaxUploadSize: 10 << 20,
	AllowOrigins:  []string{"http://localhost:5173", "http://localhost:3000"},
}

// Load reads the process environment into App and returns it.
func Load() Settings {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		App.Port = port
	}
	App.GinMode = os.Getenv("GIN_MODE")
	App.Environment = strings.ToLower(strings.TrimSpace(os.Getenv("ENVIRONMENT")))
	if App.Environment == "" {
		App.Environment = "production"
	}
	App.JWTSecret = os.Getenv("JWT_SECRET")

	if hours, err := strconv.Atoi(os.Getenv("JWT_EXPIRE_HOURS")); err == nil && hours > 0 {
		App.TokenTTL = time.Duration(hours) * time.Hour
	}
	if path := os.Getenv("UPLOAD_PATH"); path != "" {
		App.UploadPath = path
	}
	if mb, err := strconv.Atoi(os.Getenv("MAX_UPLOAD_MB")); err == nil && mb > 0 {
		App.MaxUploadSize = int64(mb) << 20
	}
	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		origins := make([]string, 0)
		for _, origin := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
		App.AllowOrigins = origins
	}
	return App
}

// IsDevelopment reports whether stack traces may be exposed in error responses.
// Development is opt-in through ENVIRONMENT=development.
func IsDevelopment() bool {
	return App.Environment == "development"
}
