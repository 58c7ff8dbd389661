package event

import (
	"errors"
	"math"
	"strings"
	"time"
)

// Categories an event can be posted under. The hub renders three fixed
// sections: hackathons, tech events (tech event / exhibition / workshop),
// and everything else.
const (
	CategoryHackathon    = "Hackathon"
	CategoryTechEvent    = "Tech Event"
	CategoryWorkshop     = "Workshop"
	CategoryWebinar      = "Webinar"
	CategoryExhibition   = "Exhibition"
	CategoryConference   = "Conference"
	CategoryCulturalFest = "Cultural Fest"
)

// Categories lists every valid category in display order.
var Categories = []string{
	CategoryHackathon,
	CategoryTechEvent,
	CategoryWorkshop,
	CategoryWebinar,
	CategoryExhibition,
	CategoryConference,
	CategoryCulturalFest,
}

// Domain errors
var (
	ErrEmptyTitle      = errors.New("event title cannot be empty")
	ErrMissingDate     = errors.New("event date is required")
	ErrInvalidCategory = errors.New("event category is not one of the known categories")
	ErrMissingLink     = errors.New("event link is required")
)

// Event is a hub entry served by the backend.
type Event struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Link        string    `json:"link"`
}

// Buckets is the hub's fixed three-way partition of events.
// INVARIANT: every event lands in exactly one bucket.
type Buckets struct {
	Hackathons []Event
	Tech       []Event
	Other      []Event
}

// Partition splits events into the three hub sections by exact category
// match. Hackathons match only "Hackathon"; the tech section groups
// "Tech Event", "Exhibition" and "Workshop"; everything else is other.
// PRE: none
// POST: len(Hackathons)+len(Tech)+len(Other) == len(events)
func Partition(events []Event) Buckets {
	var b Buckets
	for _, e := range events {
		switch e.Category {
		case CategoryHackathon:
			b.Hackathons = append(b.Hackathons, e)
		case CategoryTechEvent, CategoryExhibition, CategoryWorkshop:
			b.Tech = append(b.Tech, e)
		default:
			b.Other = append(b.Other, e)
		}
	}
	return b
}

// MatchesSearch reports whether the event matches a free-text query over
// title and category.
func (e Event) MatchesSearch(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(e.Title), q) ||
		strings.Contains(strings.ToLower(e.Category), q)
}

// FilterSearch returns the events matching a free-text query.
func FilterSearch(events []Event, query string) []Event {
	if query == "" {
		return events
	}
	var out []Event
	for _, e := range events {
		if e.MatchesSearch(query) {
			out = append(out, e)
		}
	}
	return out
}

// DaysUntil returns the ceiling-rounded number of days between now and the
// event date. Past events yield a non-positive value.
// PRE: now is the caller's current time
// POST: an event exactly N calendar days ahead yields N
func (e Event) DaysUntil(now time.Time) int {
	diff := e.Date.Sub(now)
	return int(math.Ceil(diff.Hours() / 24))
}

// ShowDaysLeft reports whether a "days left" badge should be rendered.
// Only strictly future events get one.
func (e Event) ShowDaysLeft(now time.Time) bool {
	return e.DaysUntil(now) > 0
}

// ValidateUpload checks the admin-upload required fields for an event.
// PRE: fields come from the admin form
// POST: returns nil if the event can be posted, the first violation otherwise
func ValidateUpload(title, category, link string, date time.Time) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if date.IsZero() {
		return ErrMissingDate
	}
	if !ValidCategory(category) {
		return ErrInvalidCategory
	}
	if link == "" {
		return ErrMissingLink
	}
	return nil
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}
