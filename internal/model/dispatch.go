package model

import "time"

const (
	DispatchStatusPending   = "Pending"
	DispatchStatusConfirmed = "Confirmed"
)

// DispatchReport is one row per truck/trip batch: created on submit with
// status Pending, flipped to Confirmed on verify.
type DispatchReport struct {
	DispatchID       int64      `json:"dispatch_id"`
	ClusterName      *string    `json:"cluster_name"`
	StationName      *string    `json:"station_name"`
	Region           *string    `json:"region"`
	Status           string     `json:"status"`
	LHTripNumber     *string    `json:"lh_trip_number"`
	ActualDockedTime *time.Time `json:"actual_docked_time"`
	ActualDepartTime *time.Time `json:"actual_depart_time"`
	ProcessorName    *string    `json:"processor_name"`
	PlateNumber      *string    `json:"plate_number"`
	SubmittedByOpsID string     `json:"submitted_by_ops_id"`
	ConfirmedByOpsID *string    `json:"confirmed_by_ops_id"`
	ConfirmedAt      *time.Time `json:"confirmed_at"`
	CreatedAt        time.Time  `json:"created_at"`
	StatusUpdatedAt  time.Time  `json:"status_updated_at"`
}

// DispatchFilters contains filter parameters for dispatch list queries.
// Date bounds are passed through to the database as-is.
type DispatchFilters struct {
	Status    *string
	Region    *string
	StartDate *string
	EndDate   *string
	Limit     int
	Offset    int
}

// DispatchPage is a filtered slice of reports plus the unpaged total.
type DispatchPage struct {
	Rows  []DispatchReport `json:"rows"`
	Total int              `json:"total"`
}

// SubmitDispatchRequest carries a batch of rows to record. Row fields
// arrive under several historical key spellings, so rows stay generic
// until the service normalizes them.
type SubmitDispatchRequest struct {
	Rows             []map[string]any `json:"rows"`
	SubmittedByOpsID string           `json:"submitted_by_ops_id"`
}

// VerifyDispatchRequest confirms a set of previously submitted rows.
type VerifyDispatchRequest struct {
	Rows            []string `json:"rows"`
	VerifiedByOpsID string   `json:"verified_by_ops_id"`
}

// VerifyResult mirrors the per-id acknowledgement shape the dashboard
// expects; csv_link and seatalk_status are filled by downstream tooling.
type VerifyResult struct {
	DispatchIDs   []string `json:"dispatch_ids"`
	CSVLink       *string  `json:"csv_link"`
	SeatalkStatus string   `json:"seatalk_status"`
}
