package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"time"

	"pathly/internal/adapters/backend"
	"pathly/internal/adapters/http/middleware"
	"pathly/internal/adapters/storage/sessioncache"
	"pathly/internal/application/orchestrators"
	"pathly/internal/config"
	"pathly/internal/domain/session"
)

// Deps holds the adapter dependencies the handlers use.
type Deps struct {
	Backend *backend.Client
	Cache   sessioncache.Store
}

// Global deps instance (set by NewMux)
var deps *Deps

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// loadCSRFKey reads the CSRF secret from the config (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey(cfg config.App) []byte {
	if cfg.CSRFKeyHex != "" {
		key, err := hex.DecodeString(cfg.CSRFKeyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("PATHLY_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if cfg.IsProduction() {
		log.Fatal("PATHLY_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (forms won't survive restart). Set PATHLY_CSRF_KEY for production.")
	return key
}

// NewMux wires HTTP handlers for the app.
func NewMux(cfg config.App, staticDir string, d *Deps) http.Handler {
	deps = d
	sessions = middleware.NewSessionStore()

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	csrfKey := loadCSRFKey(cfg)

	rate := RateLimitPerSecond
	if cfg.RateLimitRPS > 0 {
		rate = cfg.RateLimitRPS
	}
	limiter := middleware.NewRateLimiter(rate, time.Second)

	restore := middleware.RestoreFunc(func(ctx context.Context, cookie string) (session.Session, bool) {
		return orchestrators.ExecuteRestore(ctx, cookie, orchestrators.RestoreDeps{Cache: d.Cache})
	})

	// Apply middleware: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions, restore),
		middleware.RateLimit(limiter),
		middleware.Timing(),
	)
}
