package web

import (
	"errors"
	"net/http"
	"net/url"

	"pathly/internal/adapters/backend"
	"pathly/internal/application/listutil"
	"pathly/internal/application/orchestrators"
	"pathly/internal/application/projections"
	"pathly/internal/domain/event"
)

// maxNoteFileBytes caps note uploads at 20 MB.
const maxNoteFileBytes = 20 << 20

// uploadTab validates the tab query/form value, defaulting to notes.
func uploadTab(raw string) string {
	switch raw {
	case orchestrators.TabEvents, orchestrators.TabInternships:
		return raw
	default:
		return orchestrators.TabNotes
	}
}

// adminUploadData builds the template data shared by GET and failed POST.
func adminUploadData(tab string) map[string]any {
	return map[string]any{
		"Tab":        tab,
		"Categories": event.Categories,
		"Semesters":  []int{1, 2, 3, 4, 5, 6, 7, 8},
	}
}

// handleAdminUpload renders the tabbed upload form and accepts
// submissions for notes (multipart), events and internships.
func handleAdminUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		tab := uploadTab(r.URL.Query().Get("tab"))
		data := adminUploadData(tab)
		data["Success"] = r.URL.Query().Get("ok") != ""
		renderTemplate(w, r, "admin_upload.html", data)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxNoteFileBytes); err != nil {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
	}
	tab := uploadTab(r.FormValue("tab"))

	var err error
	switch tab {
	case orchestrators.TabEvents:
		err = orchestrators.ExecuteUploadEvent(r.Context(), orchestrators.UploadEventInput{
			Title:       r.FormValue("title"),
			Date:        r.FormValue("date"),
			Category:    r.FormValue("category"),
			Link:        r.FormValue("link"),
			Description: r.FormValue("description"),
		}, orchestrators.UploadDeps{Gateway: authedBackend(r)})

	case orchestrators.TabInternships:
		err = orchestrators.ExecuteUploadInternship(r.Context(), orchestrators.UploadInternshipInput{
			Role:        r.FormValue("role"),
			Company:     r.FormValue("company"),
			TechStack:   r.FormValue("techStack"),
			Link:        r.FormValue("link"),
			Description: r.FormValue("description"),
			Tips:        r.FormValue("tips"),
		}, orchestrators.UploadDeps{Gateway: authedBackend(r)})

	default:
		input := orchestrators.UploadNoteInput{
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
			Subject:     r.FormValue("subject"),
			Semester:    r.FormValue("semester"),
		}
		if file, header, ferr := r.FormFile("file"); ferr == nil {
			defer file.Close()
			input.File = file
			input.Filename = header.Filename
		}
		err = orchestrators.ExecuteUploadNote(r.Context(), input, orchestrators.UploadDeps{Gateway: authedBackend(r)})
	}

	if err != nil {
		data := adminUploadData(tab)
		data["Error"] = err.Error()
		w.WriteHeader(http.StatusBadRequest)
		renderTemplate(w, r, "admin_upload.html", data)
		return
	}

	http.Redirect(w, r, "/admin/upload?tab="+url.QueryEscape(tab)+"&ok=1", http.StatusSeeOther)
}

// handleManageContent renders one tab of existing content with search
// and pagination.
func handleManageContent(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fp := listutil.ParseFilterParams(q, []string{"tab"})

	query := projections.GetManageContentQuery{
		Tab:    fp.Filters["tab"],
		Search: fp.Search,
		Page:   listutil.ParsePageParams(q),
	}
	result := projections.QueryGetManageContent(r.Context(), query, projections.GetManageContentDeps{
		Gateway: authedBackend(r),
	})

	renderTemplate(w, r, "manage_content.html", map[string]any{
		"Tab":         result.Tab,
		"Notes":       result.Notes,
		"Events":      result.Events,
		"Internships": result.Internships,
		"PageInfo":    result.PageInfo,
		"LoadFailed":  result.LoadFailed,
		"Search":      fp.Search,
		"Deleted":     q.Get("deleted") != "",
	})
}

// handleDeleteContent removes one item and returns to the manage page.
func handleDeleteContent(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.DeleteContentInput{
		Tab: uploadTab(r.FormValue("tab")),
		ID:  r.FormValue("id"),
	}
	err := orchestrators.ExecuteDeleteContent(r.Context(), input, orchestrators.DeleteContentDeps{
		Gateway: authedBackend(r),
	})
	if err != nil {
		// The item stays in the list; the backend's refusal is shown inline.
		msg := err.Error()
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			msg = apiErr.Message
		}
		result := projections.QueryGetManageContent(r.Context(), projections.GetManageContentQuery{
			Tab:  input.Tab,
			Page: listutil.ParsePageParams(r.URL.Query()),
		}, projections.GetManageContentDeps{Gateway: authedBackend(r)})

		renderTemplate(w, r, "manage_content.html", map[string]any{
			"Tab":         result.Tab,
			"Notes":       result.Notes,
			"Events":      result.Events,
			"Internships": result.Internships,
			"PageInfo":    result.PageInfo,
			"LoadFailed":  result.LoadFailed,
			"Search":      "",
			"Error":       msg,
		})
		return
	}

	http.Redirect(w, r, "/admin/manage?tab="+url.QueryEscape(input.Tab)+"&deleted=1", http.StatusSeeOther)
}
