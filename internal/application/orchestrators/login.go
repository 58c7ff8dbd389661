package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"pathly/internal/adapters/backend"
	"pathly/internal/adapters/storage/sessioncache"
	"pathly/internal/domain/session"
)

// AuthGateway defines the backend surface needed by Login.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (backend.AuthResponse, error)
}

// SessionWriter defines the in-memory session surface needed by the auth
// orchestrators.
type SessionWriter interface {
	Create(sess session.Session) (string, error)
	Put(token string, sess session.Session)
	Update(token string, sess session.Session) bool
	Delete(token string)
}

// SessionCacheStore defines the durable cache surface needed by the auth
// orchestrators.
type SessionCacheStore interface {
	Get(ctx context.Context, cookie string) (sessioncache.Entry, error)
	Save(ctx context.Context, e sessioncache.Entry) error
	Delete(ctx context.Context, cookie string) error
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	Cookie  string
	Session session.Session
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	Gateway  AuthGateway
	Sessions SessionWriter
	Cache    SessionCacheStore
}

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrBackendUnavailable = errors.New("the server is unreachable — try again in a moment")
)

// ExecuteLogin exchanges credentials with the backend and establishes a
// session in memory and in the durable cache.
// PRE: Valid email and password provided
// POST: On success the session exists in memory and in the cache under the
// same cookie value
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	resp, err := deps.Gateway.Login(ctx, input.Email, input.Password)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			slog.Info("auth_event", "event", "login_failed", "email", input.Email, "status", apiErr.Status)
			if apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusBadRequest {
				return LoginResult{}, ErrInvalidCredentials
			}
			return LoginResult{}, err
		}
		slog.Warn("auth_event", "event", "login_failed", "email", input.Email, "reason", "unreachable", "error", err)
		return LoginResult{}, ErrBackendUnavailable
	}

	sess, err := session.FromServer(resp.User, resp.Token)
	if err != nil {
		slog.Warn("auth_event", "event", "login_failed", "email", input.Email, "reason", "bad_payload", "error", err)
		return LoginResult{}, err
	}

	cookie, err := deps.Sessions.Create(sess)
	if err != nil {
		return LoginResult{}, err
	}

	identity, err := sess.MarshalIdentity()
	if err != nil {
		return LoginResult{}, err
	}
	if err := deps.Cache.Save(ctx, sessioncache.Entry{
		Cookie:    cookie,
		Identity:  identity,
		Token:     sess.Token,
		CreatedAt: time.Now(),
	}); err != nil {
		// The in-memory session still works; the user just loses the
		// restart survival guarantee.
		slog.Warn("auth_event", "event", "cache_save_failed", "email", input.Email, "error", err)
	}

	slog.Info("auth_event", "event", "login_success", "email", input.Email, "role", sess.Role)

	return LoginResult{Cookie: cookie, Session: sess}, nil
}
