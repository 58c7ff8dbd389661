package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"pathly/internal/adapters/backend"
)

// PasswordGateway defines the backend surface needed by ChangePassword.
type PasswordGateway interface {
	UpdatePassword(ctx context.Context, current, updated string) error
}

// ChangePasswordInput carries input for the change-password orchestrator.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// ChangePasswordDeps holds dependencies for ChangePassword.
type ChangePasswordDeps struct {
	Gateway PasswordGateway
}

var (
	ErrPasswordFieldsRequired = errors.New("all password fields are required")
	ErrPasswordMismatch       = errors.New("new password and confirmation do not match")
	ErrCurrentPasswordWrong   = errors.New("current password is incorrect")
)

// ExecuteChangePassword validates the form and forwards the change to the
// backend, which verifies the current password.
// PRE: All three fields provided, new matches confirmation
// POST: Password is changed on the backend; the session token stays valid
func ExecuteChangePassword(ctx context.Context, input ChangePasswordInput, deps ChangePasswordDeps) error {
	if input.CurrentPassword == "" || input.NewPassword == "" || input.ConfirmPassword == "" {
		return ErrPasswordFieldsRequired
	}
	if input.NewPassword != input.ConfirmPassword {
		return ErrPasswordMismatch
	}

	if err := deps.Gateway.UpdatePassword(ctx, input.CurrentPassword, input.NewPassword); err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			slog.Info("auth_event", "event", "password_change_failed", "reason", "wrong_current")
			return ErrCurrentPasswordWrong
		}
		return err
	}

	slog.Info("auth_event", "event", "password_changed")
	return nil
}
