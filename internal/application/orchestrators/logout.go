package orchestrators

import (
	"context"
	"log/slog"
)

// LogoutDeps holds dependencies for Logout.
type LogoutDeps struct {
	Sessions SessionWriter
	Cache    SessionCacheStore
}

// ExecuteLogout destroys the session in memory and in the durable cache.
// Identity and token are always cleared together.
// PRE: cookie is the session cookie value (may be unknown or already gone)
// POST: No session state remains under the cookie; logout never fails
func ExecuteLogout(ctx context.Context, cookie string, deps LogoutDeps) {
	if cookie == "" {
		return
	}
	deps.Sessions.Delete(cookie)
	if err := deps.Cache.Delete(ctx, cookie); err != nil {
		slog.Warn("auth_event", "event", "cache_delete_failed", "error", err)
	}
	slog.Info("auth_event", "event", "logout")
}
