package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"outbound_tool/internal/model"

	"github.com/jackc/pgx/v5"
)

// LookupRepository serves the typeahead/reference lookups backed by
// outbound_map and the synced line-haul sheet rows.
type LookupRepository interface {
	Clusters(ctx context.Context, region, query string) ([]model.ClusterLookup, error)
	Hubs(ctx context.Context, cluster string) ([]model.HubLookup, error)
	LHTrip(ctx context.Context, tripNumber string) (*model.LHTripRow, error)
}

type lookupRepository struct {
	db DB
}

// NewLookupRepository creates a new LookupRepository
func NewLookupRepository(db DB) LookupRepository {
	return &lookupRepository{db: db}
}

// Clusters returns distinct active cluster names, optionally narrowed by
// region and a name fragment
func (r *lookupRepository) Clusters(ctx context.Context, region, query string) ([]model.ClusterLookup, error) {
	conditions := []string{"active = true"}
	args := []any{}

	if region != "" {
		args = append(args, region)
		conditions = append(conditions, fmt.Sprintf("region = $%d", len(args)))
	}
	if query != "" {
		args = append(args, "%"+query+"%")
		conditions = append(conditions, fmt.Sprintf("cluster_name ILIKE $%d", len(args)))
	}

	sql := `SELECT DISTINCT cluster_name, region
            FROM outbound_map
            WHERE ` + strings.Join(conditions, " AND ") + `
            ORDER BY cluster_name`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clusters: %w", err)
	}
	defer rows.Close()

	var clusters []model.ClusterLookup
	for rows.Next() {
		var c model.ClusterLookup
		if err := rows.Scan(&c.ClusterName, &c.Region); err != nil {
			return nil, fmt.Errorf("failed to scan cluster row: %w", err)
		}
		clusters = append(clusters, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cluster rows: %w", err)
	}
	return clusters, nil
}

// Hubs returns active hub names and docks, optionally for one cluster
func (r *lookupRepository) Hubs(ctx context.Context, cluster string) ([]model.HubLookup, error) {
	sql := `SELECT hub_name, dock_number FROM outbound_map WHERE active = true`
	args := []any{}
	if cluster != "" {
		args = append(args, cluster)
		sql += ` AND cluster_name = $1`
	}
	sql += ` ORDER BY hub_name`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query hub lookup: %w", err)
	}
	defer rows.Close()

	var hubs []model.HubLookup
	for rows.Next() {
		var h model.HubLookup
		if err := rows.Scan(&h.HubName, &h.DockNumber); err != nil {
			return nil, fmt.Errorf("failed to scan hub lookup row: %w", err)
		}
		hubs = append(hubs, h)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hub lookup rows: %w", err)
	}
	return hubs, nil
}

// LHTrip aggregates the synced sheet rows for one trip number into a
// single summary row; nil when the trip is unknown
func (r *lookupRepository) LHTrip(ctx context.Context, tripNumber string) (*model.LHTripRow, error) {
	row := &model.LHTripRow{}
	sql := `SELECT
              trip_number AS lh_trip_number,
              NULL::text AS cluster_name,
              MAX(to_dest_station_name) AS station_name,
              NULL::text AS region,
              NULLIF(STRING_AGG(DISTINCT to_number, ', ') FILTER (WHERE to_number IS NOT NULL), '') AS to_numbers,
              MAX(updated_at) AS updated_at
            FROM dispatch_google_sheet_rows
            WHERE trip_number = $1
            GROUP BY trip_number`
	err := r.db.QueryRow(ctx, sql, tripNumber).Scan(
		&row.LHTripNumber, &row.ClusterName, &row.StationName, &row.Region, &row.ToNumbers, &row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query lh trip: %w", err)
	}
	return row, nil
}
