package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pathly/internal/adapters/storage/sessioncache"
	"pathly/internal/domain/session"
)

// RestoreDeps holds dependencies for Restore.
type RestoreDeps struct {
	Cache SessionCacheStore
}

// ExecuteRestore rebuilds a session from the durable cache after the
// in-memory store lost it. A corrupt identity or an expired token clears
// the cache entry so the user starts over at login instead of looping.
// PRE: cookie is the session cookie value
// POST: Returns the restored session, or false with the cache entry gone
func ExecuteRestore(ctx context.Context, cookie string, deps RestoreDeps) (session.Session, bool) {
	entry, err := deps.Cache.Get(ctx, cookie)
	if err != nil {
		if !errors.Is(err, sessioncache.ErrNotFound) {
			slog.Warn("auth_event", "event", "restore_failed", "reason", "cache_read", "error", err)
		}
		return session.Session{}, false
	}

	sess, err := session.UnmarshalIdentity(entry.Identity, entry.Token)
	if err != nil {
		slog.Warn("auth_event", "event", "restore_failed", "reason", "corrupt_identity", "error", err)
		_ = deps.Cache.Delete(ctx, cookie)
		return session.Session{}, false
	}

	if tokenExpired(entry.Token) {
		slog.Info("auth_event", "event", "restore_failed", "reason", "token_expired", "email", sess.Email)
		_ = deps.Cache.Delete(ctx, cookie)
		return session.Session{}, false
	}

	slog.Info("auth_event", "event", "session_restored", "email", sess.Email)
	return sess, true
}

// tokenExpired checks the token's exp claim without verifying the
// signature; the backend is the verifier, this only avoids restoring a
// session the backend is guaranteed to reject. Tokens that are not JWTs
// are assumed live.
func tokenExpired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
