package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"outbound_tool/internal/model"

	"github.com/jackc/pgx/v5"
)

// HubRepository defines operations for outbound_map reference data.
// Field names reaching Insert and Update have already been checked against
// the hub column allow-list by the service layer.
type HubRepository interface {
	Count(ctx context.Context, filters model.HubFilters) (int, error)
	Find(ctx context.Context, filters model.HubFilters) ([]model.Hub, error)
	Insert(ctx context.Context, fields []string, values []any) (*model.Hub, error)
	Update(ctx context.Context, id string, fields []string, values []any) (*model.Hub, error)
	Deactivate(ctx context.Context, id string) (*model.Hub, error)
}

type hubRepository struct {
	db DB
}

// NewHubRepository creates a new HubRepository
func NewHubRepository(db DB) HubRepository {
	return &hubRepository{db: db}
}

const hubColumns = `id, hub_name, cluster_name, region, dock_number, active`

func scanHub(row pgx.Row) (*model.Hub, error) {
	h := &model.Hub{}
	err := row.Scan(&h.ID, &h.HubName, &h.ClusterName, &h.Region, &h.DockNumber, &h.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return h, nil
}

func buildHubWhere(filters model.HubFilters) (string, []any) {
	args := []any{}
	if filters.Active != nil {
		args = append(args, *filters.Active)
		return " WHERE active = $1", args
	}
	return "", args
}

// Count returns the unpaged total for a filtered hub query
func (r *hubRepository) Count(ctx context.Context, filters model.HubFilters) (int, error) {
	whereClause, args := buildHubWhere(filters)
	sql := `SELECT COUNT(*)::int AS total FROM outbound_map` + whereClause

	var total int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count hubs: %w", err)
	}
	return total, nil
}

// Find retrieves hubs ordered by name
func (r *hubRepository) Find(ctx context.Context, filters model.HubFilters) ([]model.Hub, error) {
	whereClause, args := buildHubWhere(filters)
	sql := fmt.Sprintf(`SELECT `+hubColumns+` FROM outbound_map%s ORDER BY hub_name LIMIT $%d OFFSET $%d`,
		whereClause, len(args)+1, len(args)+2)
	args = append(args, filters.Limit, filters.Offset)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query hubs: %w", err)
	}
	defer rows.Close()

	var hubs []model.Hub
	for rows.Next() {
		var h model.Hub
		if err := rows.Scan(&h.ID, &h.HubName, &h.ClusterName, &h.Region, &h.DockNumber, &h.Active); err != nil {
			return nil, fmt.Errorf("failed to scan hub row: %w", err)
		}
		hubs = append(hubs, h)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hub rows: %w", err)
	}
	return hubs, nil
}

// Insert creates a hub from the allow-listed field set
func (r *hubRepository) Insert(ctx context.Context, fields []string, values []any) (*model.Hub, error) {
	placeholders := make([]string, len(fields))
	for i := range fields {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	sql := fmt.Sprintf(`INSERT INTO outbound_map (%s) VALUES (%s) RETURNING `+hubColumns,
		strings.Join(fields, ", "), strings.Join(placeholders, ", "))

	hub, err := scanHub(r.db.QueryRow(ctx, sql, values...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert hub: %w", err)
	}
	return hub, nil
}

// Update applies the allow-listed field set to one hub; nil when the id
// matches no row
func (r *hubRepository) Update(ctx context.Context, id string, fields []string, values []any) (*model.Hub, error) {
	assignments := make([]string, len(fields))
	for i, field := range fields {
		assignments[i] = fmt.Sprintf("%s = $%d", field, i+1)
	}
	args := append(values, id)

	sql := fmt.Sprintf(`UPDATE outbound_map SET %s WHERE id = $%d RETURNING `+hubColumns,
		strings.Join(assignments, ", "), len(args))

	hub, err := scanHub(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to update hub: %w", err)
	}
	return hub, nil
}

// Deactivate soft-deletes a hub; nil when the id matches no row
func (r *hubRepository) Deactivate(ctx context.Context, id string) (*model.Hub, error) {
	sql := `UPDATE outbound_map SET active = false WHERE id = $1 RETURNING ` + hubColumns
	hub, err := scanHub(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		return nil, fmt.Errorf("failed to deactivate hub: %w", err)
	}
	return hub, nil
}
