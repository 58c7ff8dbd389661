package internship

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrEmptyRole    = errors.New("internship role cannot be empty")
	ErrEmptyCompany = errors.New("internship company cannot be empty")
	ErrEmptyStack   = errors.New("internship tech stack cannot be empty")
	ErrMissingLink  = errors.New("internship apply link is required")
)

// Listing is an internship opening served by the backend. TechStack keeps
// the admin's ordering.
type Listing struct {
	ID          string   `json:"_id"`
	Role        string   `json:"role"`
	Company     string   `json:"company"`
	TechStack   []string `json:"techStack"`
	Description string   `json:"description"`
	Tips        string   `json:"tips"`
	Link        string   `json:"link"`
}

// HasTips reports whether the expert-tips callout should render.
func (l Listing) HasTips() bool {
	return strings.TrimSpace(l.Tips) != ""
}

// ParseTechStack splits the admin form's comma-separated stack into an
// ordered list, trimming whitespace and dropping empty entries.
// PRE: raw is the form field value
// POST: entries keep their input order; no entry is empty
func ParseTechStack(raw string) []string {
	var stack []string
	for _, part := range strings.Split(raw, ",") {
		if tech := strings.TrimSpace(part); tech != "" {
			stack = append(stack, tech)
		}
	}
	return stack
}

// ValidateUpload checks the admin-upload required fields for a listing.
func ValidateUpload(role, company, techStack, link string) error {
	if role == "" {
		return ErrEmptyRole
	}
	if company == "" {
		return ErrEmptyCompany
	}
	if len(ParseTechStack(techStack)) == 0 {
		return ErrEmptyStack
	}
	if link == "" {
		return ErrMissingLink
	}
	return nil
}
