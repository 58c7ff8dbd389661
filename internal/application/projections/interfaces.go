package projections

import (
	"context"

	"pathly/internal/domain/dashboard"
	"pathly/internal/domain/event"
	"pathly/internal/domain/internship"
	"pathly/internal/domain/note"
	"pathly/internal/domain/resource"
)

// Gateway interfaces shared by projections. Each projection takes only
// the slice it reads; the backend client satisfies all of them.

// NotesGateway lists study notes.
type NotesGateway interface {
	ListNotes(ctx context.Context) ([]note.Note, error)
}

// EventsGateway lists events.
type EventsGateway interface {
	ListEvents(ctx context.Context) ([]event.Event, error)
}

// InternshipsGateway lists internship openings.
type InternshipsGateway interface {
	ListInternships(ctx context.Context) ([]internship.Listing, error)
}

// ResourcesGateway lists learning resources.
type ResourcesGateway interface {
	ListResources(ctx context.Context) ([]resource.Resource, error)
}

// StatsGateway serves the dashboard summary.
type StatsGateway interface {
	DashboardStats(ctx context.Context) (dashboard.Stats, error)
}
