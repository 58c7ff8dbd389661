package web

import (
	"net/http"
	"strconv"

	"pathly/internal/adapters/backend"
	"pathly/internal/adapters/http/middleware"
	"pathly/internal/application/projections"
	"pathly/internal/domain/note"
)

// authedBackend returns the backend client carrying the session's token.
func authedBackend(r *http.Request) *backend.Client {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	return deps.Backend.Authed(sess.Token)
}

// handleDashboard renders the stats overview.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	result := projections.QueryGetDashboard(r.Context(), projections.GetDashboardDeps{
		Stats: authedBackend(r),
	})
	renderTemplate(w, r, "dashboard.html", map[string]any{
		"Stats":      result.Stats,
		"LoadFailed": result.LoadFailed,
	})
}

// handleNotes renders the notes hub with search, year, semester and
// subject filters.
func handleNotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	semester, _ := strconv.Atoi(q.Get("semester"))
	if semester < note.MinSemester || semester > note.MaxSemester {
		semester = 0
	}
	query := projections.GetNotesQuery{
		Search:   q.Get("q"),
		Year:     q.Get("year"),
		Semester: semester,
		Subject:  q.Get("subject"),
	}

	result := projections.QueryGetNotes(r.Context(), query, projections.GetNotesDeps{
		Notes: authedBackend(r),
	})
	renderTemplate(w, r, "notes.html", map[string]any{
		"Groups":     result.Groups,
		"Semesters":  result.Semesters,
		"Subjects":   result.Subjects,
		"Total":      result.Total,
		"LoadFailed": result.LoadFailed,
		"Years":      note.Years,
		"Search":     query.Search,
		"Year":       query.Year,
		"Semester":   query.Semester,
		"Subject":    query.Subject,
	})
}

// handleEvents renders the events hub: hackathons, tech events, other.
func handleEvents(w http.ResponseWriter, r *http.Request) {
	query := projections.GetEventsQuery{
		Search: r.URL.Query().Get("q"),
		Now:    timeNow(),
	}
	result := projections.QueryGetEvents(r.Context(), query, projections.GetEventsDeps{
		Events: authedBackend(r),
	})
	renderTemplate(w, r, "events.html", map[string]any{
		"Hackathons": result.Hackathons,
		"Tech":       result.Tech,
		"Other":      result.Other,
		"Total":      result.Total,
		"LoadFailed": result.LoadFailed,
		"Search":     query.Search,
	})
}

// handleInternships renders the internship listings.
func handleInternships(w http.ResponseWriter, r *http.Request) {
	result := projections.QueryGetInternships(r.Context(), projections.GetInternshipsDeps{
		Internships: authedBackend(r),
	})
	renderTemplate(w, r, "internships.html", map[string]any{
		"Listings":   result.Listings,
		"LoadFailed": result.LoadFailed,
	})
}

// handleResources renders the curated resource library.
func handleResources(w http.ResponseWriter, r *http.Request) {
	result := projections.QueryGetResources(r.Context(), projections.GetResourcesDeps{
		Resources: authedBackend(r),
	})
	renderTemplate(w, r, "resources.html", map[string]any{
		"Resources":  result.Resources,
		"LoadFailed": result.LoadFailed,
	})
}
