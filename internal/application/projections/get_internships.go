package projections

import (
	"context"
	"log/slog"

	"pathly/internal/domain/internship"
)

// GetInternshipsResult carries the query result.
type GetInternshipsResult struct {
	Listings   []internship.Listing
	LoadFailed bool
}

// GetInternshipsDeps holds dependencies for GetInternships.
type GetInternshipsDeps struct {
	Internships InternshipsGateway
}

// QueryGetInternships retrieves all internship listings.
func QueryGetInternships(ctx context.Context, deps GetInternshipsDeps) GetInternshipsResult {
	listings, err := deps.Internships.ListInternships(ctx)
	if err != nil {
		slog.Warn("internal_error", "op", "get_internships", "error", err)
		return GetInternshipsResult{LoadFailed: true}
	}
	return GetInternshipsResult{Listings: listings}
}
