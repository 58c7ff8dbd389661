package projections

import (
	"context"
	"log/slog"

	"pathly/internal/application/listutil"
	"pathly/internal/domain/event"
	"pathly/internal/domain/internship"
	"pathly/internal/domain/note"
)

// ManageGateway combines the list surfaces the manage page can show.
type ManageGateway interface {
	NotesGateway
	EventsGateway
	InternshipsGateway
}

// GetManageContentQuery carries query parameters.
type GetManageContentQuery struct {
	Tab    string
	Search string
	Page   listutil.PageParams
}

// GetManageContentResult carries one tab's rows, filtered and paged.
// Only the slice matching Tab is populated.
type GetManageContentResult struct {
	Tab         string
	Notes       []note.Note
	Events      []event.Event
	Internships []internship.Listing
	PageInfo    listutil.PageInfo
	LoadFailed  bool
}

// GetManageContentDeps holds dependencies for GetManageContent.
type GetManageContentDeps struct {
	Gateway ManageGateway
}

// QueryGetManageContent retrieves the selected tab's collection for the
// admin manage page. Notes match on title, events on title, internships
// on role or company. An unknown tab falls back to notes.
// PRE: caller holds an admin session
// POST: PageInfo.Total counts rows after the search filter
func QueryGetManageContent(ctx context.Context, query GetManageContentQuery, deps GetManageContentDeps) GetManageContentResult {
	tab := query.Tab
	switch tab {
	case "notes", "events", "internships":
	default:
		tab = "notes"
	}
	result := GetManageContentResult{Tab: tab}

	switch tab {
	case "events":
		all, err := deps.Gateway.ListEvents(ctx)
		if err != nil {
			slog.Warn("internal_error", "op", "get_manage_content", "tab", tab, "error", err)
			result.LoadFailed = true
			return result
		}
		var matched []event.Event
		for _, e := range all {
			if listutil.ContainsFold(query.Search, e.Title) {
				matched = append(matched, e)
			}
		}
		result.PageInfo = listutil.NewPageInfo(query.Page.Page, query.Page.PerPage, len(matched))
		result.Events = matched[result.PageInfo.Offset():result.PageInfo.End()]

	case "internships":
		all, err := deps.Gateway.ListInternships(ctx)
		if err != nil {
			slog.Warn("internal_error", "op", "get_manage_content", "tab", tab, "error", err)
			result.LoadFailed = true
			return result
		}
		var matched []internship.Listing
		for _, l := range all {
			if listutil.ContainsFold(query.Search, l.Role, l.Company) {
				matched = append(matched, l)
			}
		}
		result.PageInfo = listutil.NewPageInfo(query.Page.Page, query.Page.PerPage, len(matched))
		result.Internships = matched[result.PageInfo.Offset():result.PageInfo.End()]

	default:
		all, err := deps.Gateway.ListNotes(ctx)
		if err != nil {
			slog.Warn("internal_error", "op", "get_manage_content", "tab", tab, "error", err)
			result.LoadFailed = true
			return result
		}
		var matched []note.Note
		for _, n := range all {
			if listutil.ContainsFold(query.Search, n.Title) {
				matched = append(matched, n)
			}
		}
		result.PageInfo = listutil.NewPageInfo(query.Page.Page, query.Page.PerPage, len(matched))
		result.Notes = matched[result.PageInfo.Offset():result.PageInfo.End()]
	}

	return result
}
