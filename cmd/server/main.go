package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"pathly/internal/adapters/backend"
	web "pathly/internal/adapters/http"
	"pathly/internal/adapters/storage"
	"pathly/internal/adapters/storage/sessioncache"
	"pathly/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// sessionCacheMaxAge is how long a persisted session survives before the
// purge sweep removes it.
const sessionCacheMaxAge = 30 * 24 * time.Hour

func main() {
	cfg := config.Load()

	level := slog.LevelInfo
	if !cfg.IsProduction() {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// Initialize database with WAL mode and a busy timeout
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	timedDB := storage.NewTimedDB(db)
	cache := sessioncache.NewSQLiteStore(timedDB)

	// Sweep expired session entries on startup and once a day after
	purge := func() {
		n, err := cache.PurgeOlderThan(context.Background(), time.Now().Add(-sessionCacheMaxAge))
		if err != nil {
			slog.Warn("session_purge_failed", "error", err)
		} else if n > 0 {
			slog.Info("session_purge", "removed", n)
		}
	}
	purge()
	go func() {
		for range time.Tick(24 * time.Hour) {
			purge()
		}
	}()

	client := backend.New(cfg.APIBaseURL, cfg.APITimeout)

	handler := web.NewMux(cfg, "internal/adapters/http/static", &web.Deps{
		Backend: client,
		Cache:   cache,
	})

	log.Printf("Pathly %s listening on %s (backend %s)", version, cfg.Addr, cfg.APIBaseURL)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
