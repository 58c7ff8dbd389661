package projections

import (
	"context"
	"log/slog"
	"sort"

	"pathly/internal/domain/note"
)

// GetNotesQuery carries query parameters.
type GetNotesQuery struct {
	Search   string
	Year     string
	Semester int
	Subject  string
}

// GetNotesResult carries the query result grouped for rendering:
// semesters in ascending order, subjects alphabetical within each.
type GetNotesResult struct {
	Groups     map[int]map[string][]note.Note
	Semesters  []int
	Subjects   []string
	Total      int
	LoadFailed bool
}

// GetNotesDeps holds dependencies for GetNotes.
type GetNotesDeps struct {
	Notes NotesGateway
}

// QueryGetNotes retrieves notes filtered by search, study year, semester
// and subject, grouped semester → subject for the hub layout. The subject
// dropdown is derived from the notes visible after the semester filter.
// PRE: query.Semester is 0 (all) or within the valid range
// POST: Total equals the number of notes across all groups
func QueryGetNotes(ctx context.Context, query GetNotesQuery, deps GetNotesDeps) GetNotesResult {
	all, err := deps.Notes.ListNotes(ctx)
	if err != nil {
		slog.Warn("internal_error", "op", "get_notes", "error", err)
		return GetNotesResult{Groups: map[int]map[string][]note.Note{}, LoadFailed: true}
	}

	filtered := note.Filter{
		Search:   query.Search,
		Semester: query.Semester,
		Subject:  query.Subject,
	}.Apply(all)

	// A study year narrows to its two semesters unless one is already picked.
	if query.Year != "" && query.Semester == 0 {
		if sems := note.SemestersForYear(query.Year); sems != nil {
			allowed := map[int]bool{}
			for _, s := range sems {
				allowed[s] = true
			}
			var inYear []note.Note
			for _, n := range filtered {
				if allowed[n.Semester] {
					inYear = append(inYear, n)
				}
			}
			filtered = inYear
		}
	}

	groups := note.GroupBySemester(filtered)
	semesters := make([]int, 0, len(groups))
	for sem := range groups {
		semesters = append(semesters, sem)
	}
	sort.Ints(semesters)

	return GetNotesResult{
		Groups:    groups,
		Semesters: semesters,
		Subjects:  note.Subjects(all, query.Semester),
		Total:     len(filtered),
	}
}
