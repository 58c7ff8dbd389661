package projections

import (
	"context"
	"log/slog"

	"pathly/internal/domain/resource"
)

// GetResourcesResult carries the query result.
type GetResourcesResult struct {
	Resources  []resource.Resource
	LoadFailed bool
}

// GetResourcesDeps holds dependencies for GetResources.
type GetResourcesDeps struct {
	Resources ResourcesGateway
}

// QueryGetResources retrieves all learning resources.
func QueryGetResources(ctx context.Context, deps GetResourcesDeps) GetResourcesResult {
	resources, err := deps.Resources.ListResources(ctx)
	if err != nil {
		slog.Warn("internal_error", "op", "get_resources", "error", err)
		return GetResourcesResult{LoadFailed: true}
	}
	return GetResourcesResult{Resources: resources}
}
