package api

import (
	"github.com/gamedex/gamedex-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Catalog  *service.CatalogService
	Metadata *service.MetadataService
	Cover    *service.CoverService
	Report   *service.ReportService
	Instance *service.InstanceService
}
