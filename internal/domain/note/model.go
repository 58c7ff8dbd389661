package note

import (
	"sort"
	"strings"
)

// Semester bounds for a four-year B.Tech programme.
const (
	MinSemester = 1
	MaxSemester = 8
)

// Year groups two semesters under a study-year label.
type Year struct {
	Label     string
	Semesters []int
}

// Years maps the study-year labels shown in the library to their semesters.
var Years = []Year{
	{Label: "1st Year", Semesters: []int{1, 2}},
	{Label: "2nd Year", Semesters: []int{3, 4}},
	{Label: "3rd Year", Semesters: []int{5, 6}},
	{Label: "4th Year", Semesters: []int{7, 8}},
}

// SemestersForYear returns the semesters belonging to a study-year label,
// or nil for an unknown label.
func SemestersForYear(label string) []int {
	for _, y := range Years {
		if y.Label == label {
			return y.Semesters
		}
	}
	return nil
}

// Note is a study resource uploaded by an admin. Read-only to the client.
type Note struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Subject     string `json:"subject"`
	Semester    int    `json:"semester"`
	FileURL     string `json:"fileUrl"`
	CreatedAt   string `json:"createdAt"`
}

// Filter holds the three client-side filter dimensions. Zero values mean
// "all". Filtering is idempotent and order-independent across dimensions.
type Filter struct {
	Search   string // case-insensitive title substring
	Semester int    // 0 = all
	Subject  string // "" = all, exact match
}

// Apply returns the notes matching every set dimension.
// PRE: none
// POST: result is a subset of notes, original order preserved
func (f Filter) Apply(notes []Note) []Note {
	search := strings.ToLower(f.Search)
	var out []Note
	for _, n := range notes {
		if search != "" && !strings.Contains(strings.ToLower(n.Title), search) {
			continue
		}
		if f.Semester != 0 && n.Semester != f.Semester {
			continue
		}
		if f.Subject != "" && n.Subject != f.Subject {
			continue
		}
		out = append(out, n)
	}
	return out
}

// GroupBySemester groups notes semester → subject → notes for rendering.
// PRE: none
// POST: every input note appears in exactly one group
func GroupBySemester(notes []Note) map[int]map[string][]Note {
	grouped := make(map[int]map[string][]Note)
	for _, n := range notes {
		if grouped[n.Semester] == nil {
			grouped[n.Semester] = make(map[string][]Note)
		}
		grouped[n.Semester][n.Subject] = append(grouped[n.Semester][n.Subject], n)
	}
	return grouped
}

// Subjects returns the sorted distinct subjects present in the loaded
// notes, restricted to the given semester when it is non-zero. The subject
// filter options are derived from live data, not a fixed list.
func Subjects(notes []Note, semester int) []string {
	seen := make(map[string]bool)
	for _, n := range notes {
		if semester != 0 && n.Semester != semester {
			continue
		}
		if n.Subject != "" {
			seen[n.Subject] = true
		}
	}
	subjects := make([]string, 0, len(seen))
	for s := range seen {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	return subjects
}

// SortedSubjects returns the subject keys of one semester group in a
// stable order for template iteration.
func SortedSubjects(group map[string][]Note) []string {
	subjects := make([]string, 0, len(group))
	for s := range group {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	return subjects
}
