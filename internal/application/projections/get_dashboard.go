package projections

import (
	"context"
	"log/slog"

	"pathly/internal/domain/dashboard"
)

// GetDashboardResult carries the query result.
type GetDashboardResult struct {
	Stats      dashboard.Stats
	LoadFailed bool
}

// GetDashboardDeps holds dependencies for GetDashboard.
type GetDashboardDeps struct {
	Stats StatsGateway
}

// QueryGetDashboard retrieves the dashboard summary. A backend failure
// degrades to zero counters with LoadFailed set; the page still renders.
// PRE: caller holds an authenticated session
// POST: Result is always renderable
func QueryGetDashboard(ctx context.Context, deps GetDashboardDeps) GetDashboardResult {
	stats, err := deps.Stats.DashboardStats(ctx)
	if err != nil {
		slog.Warn("internal_error", "op", "get_dashboard", "error", err)
		return GetDashboardResult{LoadFailed: true}
	}
	return GetDashboardResult{Stats: stats}
}
