package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pathly/internal/adapters/backend"
	"pathly/internal/adapters/storage/sessioncache"
	"pathly/internal/domain/session"
)

// RegisterGateway defines the backend surface needed by Register.
type RegisterGateway interface {
	Register(ctx context.Context, in backend.RegisterInput) (backend.AuthResponse, error)
}

// RegisterInput carries the signup form fields.
type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	College        string
	Branch         string
	GraduationYear string
}

// RegisterDeps holds dependencies for Register.
type RegisterDeps struct {
	Gateway  RegisterGateway
	Sessions SessionWriter
	Cache    SessionCacheStore
}

var ErrMissingSignupFields = errors.New("name, email and password are required")

// ExecuteRegister creates an account on the backend and signs the new
// user straight in, mirroring the login flow.
// PRE: Name, email and password are non-empty
// POST: On success the session exists in memory and in the cache
func ExecuteRegister(ctx context.Context, input RegisterInput, deps RegisterDeps) (LoginResult, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return LoginResult{}, ErrMissingSignupFields
	}

	resp, err := deps.Gateway.Register(ctx, backend.RegisterInput{
		Name:           input.Name,
		Email:          input.Email,
		Password:       input.Password,
		College:        input.College,
		Branch:         input.Branch,
		GraduationYear: input.GraduationYear,
	})
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			slog.Info("auth_event", "event", "register_failed", "email", input.Email, "status", apiErr.Status)
			return LoginResult{}, err
		}
		slog.Warn("auth_event", "event", "register_failed", "email", input.Email, "reason", "unreachable", "error", err)
		return LoginResult{}, ErrBackendUnavailable
	}

	sess, err := session.FromServer(resp.User, resp.Token)
	if err != nil {
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
		slog.Warn("auth_event", "event", "cache_save_failed", "email", input.Email, "error", err)
	}

	slog.Info("auth_event", "event", "register_success", "email", input.Email)

	return LoginResult{Cookie: cookie, Session: sess}, nil
}
