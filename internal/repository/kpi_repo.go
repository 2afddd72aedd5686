package repository

import (
	"context"
	"fmt"
	"strings"

	"outbound_tool/internal/model"
)

// KPIRepository serves the read-only reporting views
type KPIRepository interface {
	Mdt(ctx context.Context, startDate, endDate string) ([]model.KPIMdtRow, error)
	Intraday(ctx context.Context, date string) ([]model.KPIIntradayRow, error)
}

type kpiRepository struct {
	db DB
}

// NewKPIRepository creates a new KPIRepository
func NewKPIRepository(db DB) KPIRepository {
	return &kpiRepository{db: db}
}

// Mdt returns mean-dock-time rows in a date window, newest first
func (r *kpiRepository) Mdt(ctx context.Context, startDate, endDate string) ([]model.KPIMdtRow, error) {
	var conditions []string
	args := []any{}

	if startDate != "" {
		args = append(args, startDate)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if endDate != "" {
		args = append(args, endDate)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}

	sql := `SELECT date, region, station_name, mdt_minutes, trips FROM kpi_mdt`
	if len(conditions) > 0 {
		sql += " WHERE " + strings.Join(conditions, " AND ")
	}
	sql += " ORDER BY date DESC"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query kpi_mdt: %w", err)
	}
	defer rows.Close()

	var result []model.KPIMdtRow
	for rows.Next() {
		var k model.KPIMdtRow
		if err := rows.Scan(&k.Date, &k.Region, &k.StationName, &k.MdtMinutes, &k.Trips); err != nil {
			return nil, fmt.Errorf("failed to scan kpi_mdt row: %w", err)
		}
		result = append(result, k)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating kpi_mdt rows: %w", err)
	}
	return result, nil
}

// Intraday returns intraday volume samples, newest first
func (r *kpiRepository) Intraday(ctx context.Context, date string) ([]model.KPIIntradayRow, error) {
	sql := `SELECT date, timestamp, region, station_name, volume FROM kpi_intraday`
	args := []any{}
	if date != "" {
		args = append(args, date)
		sql += ` WHERE date = $1`
	}
	sql += ` ORDER BY timestamp DESC`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query kpi_intraday: %w", err)
	}
	defer rows.Close()

	var result []model.KPIIntradayRow
	for rows.Next() {
		var k model.KPIIntradayRow
		if err := rows.Scan(&k.Date, &k.Timestamp, &k.Region, &k.StationName, &k.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan kpi_intraday row: %w", err)
		}
		result = append(result, k)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating kpi_intraday rows: %w", err)
	}
	return result, nil
}
