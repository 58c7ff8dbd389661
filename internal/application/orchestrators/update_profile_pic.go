package orchestrators

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"pathly/internal/adapters/storage/sessioncache"
	"pathly/internal/domain/session"
)

// ProfileGateway defines the backend surface needed by UpdateProfilePic.
type ProfileGateway interface {
	UpdateProfilePic(ctx context.Context, filename string, file io.Reader) (session.User, error)
}

// UpdateProfilePicInput carries the upload plus the current session so the
// refreshed identity keeps its token.
type UpdateProfilePicInput struct {
	Cookie   string
	Session  session.Session
	Filename string
	File     io.Reader
}

// UpdateProfilePicDeps holds dependencies for UpdateProfilePic.
type UpdateProfilePicDeps struct {
	Gateway  ProfileGateway
	Sessions SessionWriter
	Cache    SessionCacheStore
}

var ErrMissingProfilePic = errors.New("choose an image to upload")

// ExecuteUpdateProfilePic uploads a new avatar and refreshes the session
// in memory and in the durable cache so every later page render shows it.
// PRE: input carries a live session and a non-nil file
// POST: Session under the cookie reflects the backend's updated identity
func ExecuteUpdateProfilePic(ctx context.Context, input UpdateProfilePicInput, deps UpdateProfilePicDeps) (session.Session, error) {
	if input.File == nil || input.Filename == "" {
		return session.Session{}, ErrMissingProfilePic
	}

	user, err := deps.Gateway.UpdateProfilePic(ctx, input.Filename, input.File)
	if err != nil {
		return session.Session{}, err
	}

	refreshed, err := session.FromServer(user, input.Session.Token)
	if err != nil {
		// The backend accepted the upload but returned a payload we cannot
		// map; keep the old identity with just the new picture if present.
		refreshed = input.Session
		if user.ProfilePic != "" {
			refreshed.ProfilePicURL = user.ProfilePic
		}
	}

	deps.Sessions.Update(input.Cookie, refreshed)

	identity, merr := refreshed.MarshalIdentity()
	if merr == nil {
		if err := deps.Cache.Save(ctx, sessioncache.Entry{
			Cookie:    input.Cookie,
			Identity:  identity,
			Token:     refreshed.Token,
			CreatedAt: time.Now(),
		}); err != nil {
			slog.Warn("auth_event", "event", "cache_save_failed", "email", refreshed.Email, "error", err)
		}
	}

	slog.Info("auth_event", "event", "profile_pic_updated", "email", refreshed.Email)
	return refreshed, nil
}
