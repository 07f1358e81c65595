package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gamedex/gamedex-server/internal/domain"
	"github.com/gamedex/gamedex-server/internal/service"
)

func (s *Server) registerReportRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "submitReport",
		Method:      http.MethodPost,
		Path:        "/api/v1/reports",
		Summary:     "Submit error report",
		Description: "Records a catalog error report and forwards it to the configured webhook",
		Tags:        []string{"Reports"},
		Middlewares: huma.Middlewares{s.rateLimitByIP(s.reportLimiter)},
	}, s.handleSubmitReport)

	huma.Register(s.api, huma.Operation{
		OperationID: "listReports",
		Method:      http.MethodGet,
		Path:        "/api/v1/reports",
		Summary:     "List error reports",
		Description: "Returns stored reports, newest first",
		Tags:        []string{"Reports"},
	}, s.handleListReports)
}

// === DTOs ===

type SubmitReportInput struct {
	Body service.ReportInput
}

type ReportOutput struct {
	Body domain.Report
}

type ListReportsInput struct {
	Limit int `query:"limit" default:"50" minimum:"1" maximum:"500" doc:"Maximum number of reports to return"`
}

type ListReportsResponse struct {
	Reports []*domain.Report `json:"reports" doc:"Stored reports, newest first"`
	Total   int              `json:"total" doc:"Number of reports returned"`
}

type ListReportsOutput struct {
	Body ListReportsResponse
}

// === Handlers ===

func (s *Server) handleSubmitReport(ctx context.Context, input *SubmitReportInput) (*ReportOutput, error) {
	report, err := s.services.Report.Submit(ctx, &input.Body)
	if err != nil {
		return nil, err
	}

	return &ReportOutput{Body: *report}, nil
}

func (s *Server) handleListReports(ctx context.Context, input *ListReportsInput) (*ListReportsOutput, error) {
	reports, err := s.services.Report.List(ctx, input.Limit)
	if err != nil {
		return nil, err
	}

	return &ListReportsOutput{
		Body: ListReportsResponse{
			Reports: reports,
			Total:   len(reports),
		},
	}, nil
}
