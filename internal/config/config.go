package config

import (
	"fmt"
	"log"
	"os"
	"time"
)

// DefaultAPIBaseURL is the production Pathly backend, used when
// PATHLY_API_URL is not set.
const DefaultAPIBaseURL = "https://pathly-backend-yx6l.onrender.com/api"

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env          string
	Addr         string
	APIBaseURL   string
	DBPath       string
	CSRFKeyHex   string
	APITimeout   time.Duration
	RateLimitRPS int
}

// Load returns application config populated from environment variables with
// sensible defaults. Exactly one API base URL is configured; divergent
// per-view endpoints are not supported.
func Load() App {
	return App{
		Env:          getEnv("PATHLY_ENV", "development"),
		Addr:         getEnv("PATHLY_ADDR", ":8080"),
		APIBaseURL:   getEnv("PATHLY_API_URL", DefaultAPIBaseURL),
		DBPath:       getEnv("PATHLY_DB", "pathly.db"),
		CSRFKeyHex:   getEnv("PATHLY_CSRF_KEY", ""),
		APITimeout:   durationEnv("PATHLY_API_TIMEOUT", 30*time.Second),
		RateLimitRPS: intEnv("PATHLY_RATE_LIMIT_RPS", 10),
	}
}

// IsProduction reports whether the app runs in production mode.
func (a App) IsProduction() bool {
	return a.Env == "production"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var parsed int
		if _, err := fmt.Sscanf(val, "%d", &parsed); err == nil {
			return parsed
		}
		log.Printf("invalid int for %s, using fallback %d", key, fallback)
	}
	return fallback
}
