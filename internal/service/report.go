package service

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"time"

	"github.com/gamedex/gamedex-server/internal/domain"
	domainerrors "github.com/gamedex/gamedex-server/internal/errors"
	"github.com/gamedex/gamedex-server/internal/id"
	"github.com/gamedex/gamedex-server/internal/logger"
	"github.com/gamedex/gamedex-server/internal/store/sqlite"
	"github.com/gamedex/gamedex-server/internal/validation"
)

const (
	// forwardTimeout bounds the fire-and-forget webhook delivery.
	forwardTimeout = 15 * time.Second
)

// ReportInput is a report submission before it gets an ID.
type ReportInput struct {
	GameName    string   `json:"game_name,omitempty" validate:"required,max=200"`
	GameID      string   `json:"game_id,omitempty" validate:"required,max=200"`
	ErrorTypes  []string `json:"error_types,omitempty" validate:"required,min=1,dive,oneof=trailer description images storeLink requirements other"`
	Description string   `json:"description,omitempty" validate:"required,max=2000"`
}

// ReportService records error reports locally and forwards them to the
// configured webhook. Forwarding is best-effort: a dead webhook never fails
// a submission.
type ReportService struct {
	store      *sqlite.Store
	validator  *validation.Validator
	logger     *logger.Logger
	webhookURL string
	httpClient *http.Client

	now func() time.Time
}

// NewReportService creates a new report service. webhookURL may be empty, in
// which case reports are only recorded locally.
func NewReportService(store *sqlite.Store, validator *validation.Validator, webhookURL string, log *logger.Logger) *ReportService {
	return &ReportService{
		store:      store,
		validator:  validator,
		logger:     log,
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: forwardTimeout},
		now:        time.Now,
	}
}

// Submit validates and records a report, then forwards it asynchronously.
func (s *ReportService) Submit(ctx context.Context, input *ReportInput) (*domain.Report, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	reportID, err := id.Generate("rpt")
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to generate report ID")
	}

	now := s.now().UTC()
	report := &domain.Report{
		ID:          reportID,
		GameName:    input.GameName,
		GameID:      input.GameID,
		ErrorTypes:  input.ErrorTypes,
		Description: input.Description,
		Timestamp:   now,
		CreatedAt:   now,
	}

	if err := s.store.CreateReport(ctx, report); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to record report")
	}

	s.logger.Info("report recorded",
		"report_id", report.ID,
		"game_name", report.GameName,
		"error_types", report.ErrorTypes,
		"forwarding", s.webhookURL != "",
	)

	if s.webhookURL != "" {
		// Detached from the request context so a client disconnect doesn't
		// cancel delivery.
		go s.forward(report)
	}

	return report, nil
}

// List returns stored reports, newest first. limit <= 0 means no limit.
func (s *ReportService) List(ctx context.Context, limit int) ([]*domain.Report, error) {
	reports, err := s.store.ListReports(ctx, limit)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to list reports")
	}
	return reports, nil
}

// Count returns the number of stored reports. Used by the health check to
// verify the database is readable.
func (s *ReportService) Count(ctx context.Context) (int, error) {
	return s.store.CountReports(ctx)
}

// forward delivers a report to the webhook and marks it forwarded on success.
func (s *ReportService) forward(report *domain.Report) {
	ctx, cancel := context.WithTimeout(context.Background(), forwardTimeout)
	defer cancel()

	if err := s.deliver(ctx, report); err != nil {
		s.logger.WithError(err).Warn("webhook delivery failed", "report_id", report.ID)
		return
	}

	if err := s.store.MarkReportForwarded(ctx, report.ID); err != nil {
		s.logger.WithError(err).Warn("failed to mark report forwarded", "report_id", report.ID)
		return
	}

	s.logger.Debug("report forwarded", "report_id", report.ID)
}

func (s *ReportService) deliver(ctx context.Context, report *domain.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Gamedex/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook answered %d", resp.StatusCode)
	}
	return nil
}
