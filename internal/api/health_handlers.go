package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Response time for this component"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy, degraded, or unhealthy"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	components := make(map[string]ComponentHealth)
	overall := "healthy"

	catalogHealth := s.checkCatalog()
	components["catalog"] = catalogHealth
	if catalogHealth.Status == "unhealthy" {
		overall = "unhealthy"
	} else if catalogHealth.Status == "degraded" {
		overall = "degraded"
	}

	dbHealth := s.checkDatabase(ctx)
	components["database"] = dbHealth
	if dbHealth.Status != "healthy" {
		overall = "unhealthy"
	}

	// Missing upstream credentials degrade the service, they don't break it:
	// the catalog itself keeps working.
	metadataHealth := s.checkMetadata()
	components["metadata"] = metadataHealth
	if metadataHealth.Status == "degraded" && overall == "healthy" {
		overall = "degraded"
	}

	coversHealth := s.checkCovers()
	components["covers"] = coversHealth
	if coversHealth.Status == "degraded" && overall == "healthy" {
		overall = "degraded"
	}

	return &HealthOutput{
		Body: HealthResponse{
			Status:     overall,
			Components: components,
		},
	}, nil
}

// checkCatalog verifies a catalog snapshot is loaded.
func (s *Server) checkCatalog() ComponentHealth {
	if s.services == nil || s.services.Catalog == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "catalog not configured",
		}
	}

	if s.services.Catalog.GameCount() == 0 {
		return ComponentHealth{
			Status:  "degraded",
			Message: "catalog is empty",
		}
	}

	return ComponentHealth{Status: "healthy"}
}

// checkDatabase verifies the report database is readable.
func (s *Server) checkDatabase(ctx context.Context) ComponentHealth {
	if s.services == nil || s.services.Report == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "database not configured",
		}
	}

	start := time.Now()
	_, err := s.services.Report.Count(ctx)
	latency := time.Since(start)

	if err != nil {
		return ComponentHealth{
			Status:  "unhealthy",
			Latency: latency.String(),
			Message: "database read failed",
		}
	}

	return ComponentHealth{
		Status:  "healthy",
		Latency: latency.String(),
	}
}

// checkMetadata reports whether RAWG lookups are available.
func (s *Server) checkMetadata() ComponentHealth {
	if s.services == nil || s.services.Metadata == nil || !s.services.Metadata.Configured() {
		return ComponentHealth{
			Status:  "degraded",
			Message: "RAWG API key not configured",
		}
	}
	return ComponentHealth{Status: "healthy"}
}

// checkCovers reports whether the IGDB cover proxy is available.
func (s *Server) checkCovers() ComponentHealth {
	if s.services == nil || s.services.Cover == nil || !s.services.Cover.Configured() {
		return ComponentHealth{
			Status:  "degraded",
			Message: "IGDB credentials not configured",
		}
	}
	return ComponentHealth{Status: "healthy"}
}
