package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	domainSession "pathly/internal/domain/session"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const sessionContextKey contextKey = "session"

// entry pairs a session with its creation time for expiry checks.
type entry struct {
	session   domainSession.Session
	createdAt time.Time
}

// SessionStore is an in-memory session store keyed by cookie token.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]entry
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]entry),
	}
}

// Create stores a new session and returns the cookie token.
// PRE: sess carries a non-empty backend token
// POST: Session is stored, token is returned
func (ss *SessionStore) Create(sess domainSession.Session) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[token] = entry{session: sess, createdAt: time.Now()}
	return token, nil
}

// Put stores a session under an existing cookie token. Used when a
// persisted session is restored after a restart.
// PRE: token is non-empty
// POST: Session is stored under token
func (ss *SessionStore) Put(token string, sess domainSession.Session) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[token] = entry{session: sess, createdAt: time.Now()}
}

// Get retrieves a session by token.
// PRE: token is non-empty
// POST: Returns session if valid and not expired
func (ss *SessionStore) Get(token string) (domainSession.Session, bool) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	e, ok := ss.sessions[token]
	if !ok {
		return domainSession.Session{}, false
	}
	// Sessions expire after 24 hours
	if time.Since(e.createdAt) > 24*time.Hour {
		delete(ss.sessions, token)
		return domainSession.Session{}, false
	}
	return e.session, true
}

// Delete removes a session by token.
// PRE: token is non-empty
// POST: Session with given token is removed
func (ss *SessionStore) Delete(token string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, token)
}

// Update replaces the session for a given token in-place.
// PRE: token exists in the store
// POST: Session is replaced with the new value
func (ss *SessionStore) Update(token string, sess domainSession.Session) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	e, ok := ss.sessions[token]
	if !ok {
		return false
	}
	e.session = sess
	ss.sessions[token] = e
	return true
}

// SessionCookieName is the cookie carrying the local session token.
// Handlers that need the raw cookie value read it under this name.
const SessionCookieName = "pathly_session"

// RestoreFunc rebuilds a session from the persistent cache after the
// in-memory store lost it (server restart, expiry).
type RestoreFunc func(ctx context.Context, cookie string) (domainSession.Session, bool)

// Auth returns middleware that extracts the session from the cookie and
// sets it in context. On a memory miss it attempts a restore from the
// persistent cache before giving up, so a restart does not log users out.
// It does NOT block unauthenticated requests — use RequireAuth for that.
func Auth(sessions *SessionStore, restore RestoreFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err == nil && cookie.Value != "" {
				sess, ok := sessions.Get(cookie.Value)
				if !ok && restore != nil {
					if sess, ok = restore(r.Context(), cookie.Value); ok {
						sessions.Put(cookie.Value, sess)
					}
				}
				if ok {
					ctx := context.WithValue(r.Context(), sessionContextKey, sess)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth returns middleware that blocks unauthenticated requests.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetSessionFromContext(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin returns middleware that blocks requests from non-admin
// sessions. The backend re-checks the role on every write, so this guard
// only shapes the UI surface.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if !sess.IsAdmin() {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSessionFromContext extracts the session from the request context.
func GetSessionFromContext(ctx context.Context) (domainSession.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(domainSession.Session)
	return sess, ok
}

// SetSessionCookie sets the session cookie on the response.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   false, // Allow HTTP for local development
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   86400, // 24 hours
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

// IsLoggedIn reports whether the request carries a valid session.
func IsLoggedIn(ctx context.Context) bool {
	_, ok := GetSessionFromContext(ctx)
	return ok
}

// IsAdmin reports whether the current session is an admin.
func IsAdmin(ctx context.Context) bool {
	sess, ok := GetSessionFromContext(ctx)
	return ok && sess.IsAdmin()
}

// ContextWithSession returns a context with the given session set.
// Intended for use in tests.
func ContextWithSession(ctx context.Context, sess domainSession.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
