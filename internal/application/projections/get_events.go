package projections

import (
	"context"
	"log/slog"
	"time"

	"pathly/internal/domain/event"
)

// GetEventsQuery carries query parameters.
type GetEventsQuery struct {
	Search string
	Now    time.Time
}

// EventView is an event decorated for rendering.
type EventView struct {
	event.Event
	DaysLeft  int
	ShowBadge bool
}

// GetEventsResult carries the hub's three sections.
type GetEventsResult struct {
	Hackathons []EventView
	Tech       []EventView
	Other      []EventView
	Total      int
	LoadFailed bool
}

// GetEventsDeps holds dependencies for GetEvents.
type GetEventsDeps struct {
	Events EventsGateway
}

// QueryGetEvents retrieves events matching the search, partitioned into
// the hub's three fixed sections with days-left badges for future events.
// PRE: query.Now is the render time (zero means time.Now())
// POST: Total equals the sum of the three sections
func QueryGetEvents(ctx context.Context, query GetEventsQuery, deps GetEventsDeps) GetEventsResult {
	all, err := deps.Events.ListEvents(ctx)
	if err != nil {
		slog.Warn("internal_error", "op", "get_events", "error", err)
		return GetEventsResult{LoadFailed: true}
	}

	now := query.Now
	if now.IsZero() {
		now = time.Now()
	}

	buckets := event.Partition(event.FilterSearch(all, query.Search))
	result := GetEventsResult{
		Hackathons: decorate(buckets.Hackathons, now),
		Tech:       decorate(buckets.Tech, now),
		Other:      decorate(buckets.Other, now),
	}
	result.Total = len(result.Hackathons) + len(result.Tech) + len(result.Other)
	return result
}

func decorate(events []event.Event, now time.Time) []EventView {
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, EventView{
			Event:     e,
			DaysLeft:  e.DaysUntil(now),
			ShowBadge: e.ShowDaysLeft(now),
		})
	}
	return views
}
