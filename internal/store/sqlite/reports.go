package sqlite

import (
	"context"
	"database/sql"
	"encoding/json/v2"
	"fmt"

	"github.com/gamedex/gamedex-server/internal/domain"
)

// CreateReport persists a submitted error report.
func (s *Store) CreateReport(ctx context.Context, report *domain.Report) error {
	errorTypes, err := json.Marshal(report.ErrorTypes)
	if err != nil {
		return fmt.Errorf("marshal error types: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (id, game_name, game_id, error_types, description, timestamp, created_at, forwarded)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ID,
		report.GameName,
		report.GameID,
		string(errorTypes),
		report.Description,
		formatTime(report.Timestamp),
		formatTime(report.CreatedAt),
		boolToInt(report.Forwarded),
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// GetReport retrieves a report by ID.
// Returns ErrNotFound if the report does not exist.
func (s *Store) GetReport(ctx context.Context, id string) (*domain.Report, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, game_name, game_id, error_types, description, timestamp, created_at, forwarded
		 FROM reports WHERE id = ?`, id)

	report, err := scanReport(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

// ListReports returns reports ordered by creation time, newest first.
// limit <= 0 means no limit.
func (s *Store) ListReports(ctx context.Context, limit int) ([]*domain.Report, error) {
	query := `SELECT id, game_name, game_id, error_types, description, timestamp, created_at, forwarded
	          FROM reports ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var reports []*domain.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// MarkReportForwarded records that a report reached the webhook.
func (s *Store) MarkReportForwarded(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE reports SET forwarded = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("update report: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountReports returns the total number of stored reports.
func (s *Store) CountReports(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports`).Scan(&count)
	return count, err
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (*domain.Report, error) {
	var (
		report       domain.Report
		errorTypes   string
		timestampStr string
		createdStr   string
		forwarded    int
	)

	err := row.Scan(
		&report.ID,
		&report.GameName,
		&report.GameID,
		&errorTypes,
		&report.Description,
		&timestampStr,
		&createdStr,
		&forwarded,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(errorTypes), &report.ErrorTypes); err != nil {
		return nil, fmt.Errorf("unmarshal error types: %w", err)
	}

	var parseErr error
	if report.Timestamp, parseErr = parseTime(timestampStr); parseErr != nil {
		return nil, fmt.Errorf("parse timestamp: %w", parseErr)
	}
	if report.CreatedAt, parseErr = parseTime(createdStr); parseErr != nil {
		return nil, fmt.Errorf("parse created_at: %w", parseErr)
	}
	report.Forwarded = forwarded != 0

	return &report, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
