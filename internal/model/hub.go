package model

import "time"

// Hub is reference data correlating a hub to its cluster, region and dock.
// Rows are soft-deleted via the active flag.
type Hub struct {
	ID          int     `json:"id"`
	HubName     *string `json:"hub_name"`
	ClusterName *string `json:"cluster_name"`
	Region      *string `json:"region"`
	DockNumber  *string `json:"dock_number"`
	Active      bool    `json:"active"`
}

// HubFilters contains filter parameters for hub list queries.
type HubFilters struct {
	Active *bool
	Limit  int
	Offset int
}

// HubPage is a filtered slice of hubs plus the unpaged total.
type HubPage struct {
	Hubs  []Hub `json:"hubs"`
	Total int   `json:"total"`
}

// ClusterLookup is a typeahead row for cluster selection.
type ClusterLookup struct {
	ClusterName string  `json:"cluster_name"`
	Region      *string `json:"region"`
}

// HubLookup is a typeahead row for hub/dock selection.
type HubLookup struct {
	HubName    string  `json:"hub_name"`
	DockNumber *string `json:"dock_number"`
}

// ProcessorLookup is a typeahead row for processor selection.
type ProcessorLookup struct {
	Name  string `json:"name"`
	OpsID string `json:"ops_id"`
}

// LHTripRow is the aggregated line-haul trip summary assembled from the
// synced sheet rows for one trip number.
type LHTripRow struct {
	LHTripNumber string     `json:"lh_trip_number"`
	ClusterName  *string    `json:"cluster_name"`
	StationName  *string    `json:"station_name"`
	Region       *string    `json:"region"`
	ToNumbers    *string    `json:"to_numbers"`
	UpdatedAt    *time.Time `json:"updated_at"`
}
