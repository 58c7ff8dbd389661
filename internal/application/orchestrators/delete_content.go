package orchestrators

import (
	"context"
	"errors"
	"log/slog"
)

// Content tabs shared by the admin upload and manage pages.
const (
	TabNotes       = "notes"
	TabEvents      = "events"
	TabInternships = "internships"
)

// DeleteGateway defines the backend surface needed by DeleteContent.
type DeleteGateway interface {
	DeleteNote(ctx context.Context, id string) error
	DeleteEvent(ctx context.Context, id string) error
	DeleteInternship(ctx context.Context, id string) error
}

// DeleteContentInput names the item to remove.
type DeleteContentInput struct {
	Tab string
	ID  string
}

// DeleteContentDeps holds dependencies for DeleteContent.
type DeleteContentDeps struct {
	Gateway DeleteGateway
}

var (
	ErrUnknownTab  = errors.New("unknown content tab")
	ErrMissingItem = errors.New("content id is required")
)

// ExecuteDeleteContent removes one item of the given tab's collection.
// PRE: Tab is one of the content tabs, ID is non-empty
// POST: The backend delete was attempted exactly once
func ExecuteDeleteContent(ctx context.Context, input DeleteContentInput, deps DeleteContentDeps) error {
	if input.ID == "" {
		return ErrMissingItem
	}

	var err error
	switch input.Tab {
	case TabNotes:
		err = deps.Gateway.DeleteNote(ctx, input.ID)
	case TabEvents:
		err = deps.Gateway.DeleteEvent(ctx, input.ID)
	case TabInternships:
		err = deps.Gateway.DeleteInternship(ctx, input.ID)
	default:
		return ErrUnknownTab
	}
	if err != nil {
		return err
	}

	slog.Info("content_event", "event", "content_deleted", "tab", input.Tab, "id", input.ID)
	return nil
}
