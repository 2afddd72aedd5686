package repository

import (
	"context"
	"fmt"
	"strings"

	"outbound_tool/internal/model"
)

// DispatchRepository defines operations for dispatch report data
type DispatchRepository interface {
	Count(ctx context.Context, filters model.DispatchFilters) (int, error)
	Find(ctx context.Context, filters model.DispatchFilters) ([]model.DispatchReport, error)
	Create(ctx context.Context, report *model.DispatchReport) error
	Confirm(ctx context.Context, dispatchIDs []string, confirmedByOpsID string) (int64, error)
}

type dispatchRepository struct {
	db DB
}

// NewDispatchRepository creates a new DispatchRepository
func NewDispatchRepository(db DB) DispatchRepository {
	return &dispatchRepository{db: db}
}

const dispatchColumns = `dispatch_id, cluster_name, station_name, region, status, lh_trip_number,
            actual_docked_time, actual_depart_time, processor_name, plate_number,
            submitted_by_ops_id, confirmed_by_ops_id, confirmed_at, created_at, status_updated_at`

// buildDispatchWhere appends filter clauses conditionally, numbering
// positional parameters in construction order.
func buildDispatchWhere(filters model.DispatchFilters) (string, []any) {
	var conditions []string
	args := []any{}
	argCount := 1

	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *filters.Status)
		argCount++
	}
	if filters.Region != nil && *filters.Region != "" {
		conditions = append(conditions, fmt.Sprintf("region = $%d", argCount))
		args = append(args, *filters.Region)
		argCount++
	}
	if filters.StartDate != nil && *filters.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argCount))
		args = append(args, *filters.StartDate)
		argCount++
	}
	if filters.EndDate != nil && *filters.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", argCount))
		args = append(args, *filters.EndDate)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// Count returns the unpaged total for a filtered dispatch query
func (r *dispatchRepository) Count(ctx context.Context, filters model.DispatchFilters) (int, error) {
	whereClause, args := buildDispatchWhere(filters)
	sql := `SELECT COUNT(*)::int AS total FROM dispatch_reports` + whereClause

	var total int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count dispatch reports: %w", err)
	}
	return total, nil
}

// Find retrieves dispatch reports with optional filters, newest first
func (r *dispatchRepository) Find(ctx context.Context, filters model.DispatchFilters) ([]model.DispatchReport, error) {
	whereClause, args := buildDispatchWhere(filters)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + dispatchColumns + ` FROM dispatch_reports`)
	queryBuilder.WriteString(whereClause)
	queryBuilder.WriteString(" ORDER BY created_at DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, filters.Limit, filters.Offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query dispatch reports: %w", err)
	}
	defer rows.Close()

	var reports []model.DispatchReport
	for rows.Next() {
		var d model.DispatchReport
		if err := rows.Scan(
			&d.DispatchID, &d.ClusterName, &d.StationName, &d.Region, &d.Status, &d.LHTripNumber,
			&d.ActualDockedTime, &d.ActualDepartTime, &d.ProcessorName, &d.PlateNumber,
			&d.SubmittedByOpsID, &d.ConfirmedByOpsID, &d.ConfirmedAt, &d.CreatedAt, &d.StatusUpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan dispatch row: %w", err)
		}
		reports = append(reports, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dispatch rows: %w", err)
	}
	return reports, nil
}

// Create inserts a single dispatch report row
func (r *dispatchRepository) Create(ctx context.Context, report *model.DispatchReport) error {
	sql := `INSERT INTO dispatch_reports
            (cluster_name, station_name, region, status, lh_trip_number, actual_docked_time,
             actual_depart_time, processor_name, plate_number, submitted_by_ops_id, created_at, status_updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
            RETURNING dispatch_id, created_at, status_updated_at`
	err := r.db.QueryRow(ctx, sql,
		report.ClusterName, report.StationName, report.Region, report.Status, report.LHTripNumber,
		report.ActualDockedTime, report.ActualDepartTime, report.ProcessorName, report.PlateNumber,
		report.SubmittedByOpsID,
	).Scan(&report.DispatchID, &report.CreatedAt, &report.StatusUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create dispatch report: %w", err)
	}
	return nil
}

// Confirm marks the given reports Confirmed in one statement and returns
// the number of rows touched
func (r *dispatchRepository) Confirm(ctx context.Context, dispatchIDs []string, confirmedByOpsID string) (int64, error) {
	sql := `UPDATE dispatch_reports
            SET status = 'Confirmed',
                confirmed_by_ops_id = $2,
                confirmed_at = NOW(),
                status_updated_at = NOW()
            WHERE dispatch_id::text = ANY($1::text[])`
	cmdTag, err := r.db.Exec(ctx, sql, dispatchIDs, confirmedByOpsID)
	if err != nil {
		return 0, fmt.Errorf("failed to confirm dispatch reports: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
