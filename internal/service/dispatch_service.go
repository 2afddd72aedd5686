package service

import (
	"context"
	"fmt"
	"time"

	"outbound_tool/internal/model"
	"outbound_tool/internal/repository"
)

// DispatchService defines operations for dispatch report batches
type DispatchService interface {
	List(ctx context.Context, filters model.DispatchFilters) (*model.DispatchPage, error)
	Submit(ctx context.Context, submittedByOpsID string, rows []map[string]any) (int, error)
	Verify(ctx context.Context, verifiedByOpsID string, dispatchIDs []string) ([]model.VerifyResult, error)
}

type dispatchService struct {
	repo repository.DispatchRepository
}

// NewDispatchService creates a new DispatchService
func NewDispatchService(repo repository.DispatchRepository) DispatchService {
	return &dispatchService{repo: repo}
}

// List returns a filtered page of reports plus the unpaged total
func (s *dispatchService) List(ctx context.Context, filters model.DispatchFilters) (*model.DispatchPage, error) {
	total, err := s.repo.Count(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to count dispatch reports: %w", err)
	}
	rows, err := s.repo.Find(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list dispatch reports: %w", err)
	}
	if rows == nil {
		rows = []model.DispatchReport{}
	}
	return &model.DispatchPage{Rows: rows, Total: total}, nil
}

// pickString returns the first non-empty value among the given keys.
// Batch rows arrive with several historical key spellings per field.
func pickString(row map[string]any, keys ...string) *string {
	for _, key := range keys {
		if v, ok := row[key]; ok {
			if str, ok := v.(string); ok && str != "" {
				return &str
			}
		}
	}
	return nil
}

func pickTime(row map[string]any, keys ...string) *time.Time {
	raw := pickString(row, keys...)
	if raw == nil {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, *raw); err == nil {
			return &t
		}
	}
	return nil
}

// Submit records one report per batch row. Inserts are issued one at a
// time without a wrapping transaction, so a mid-batch database failure
// leaves the earlier rows committed.
func (s *dispatchService) Submit(ctx context.Context, submittedByOpsID string, rows []map[string]any) (int, error) {
	created := 0
	for _, row := range rows {
		status := model.DispatchStatusPending
		if st := pickString(row, "status"); st != nil {
			status = *st
		}

		report := &model.DispatchReport{
			ClusterName:      pickString(row, "cluster_name", "clusterName"),
			StationName:      pickString(row, "station_name", "station"),
			Region:           pickString(row, "region"),
			Status:           status,
			LHTripNumber:     pickString(row, "lh_trip_number", "lh_trip", "lHTripNumber"),
			ActualDockedTime: pickTime(row, "actual_docked_time", "actualDockedTime"),
			ActualDepartTime: pickTime(row, "actual_depart_time", "actualDepartTime"),
			ProcessorName:    pickString(row, "processor_name", "processorName"),
			PlateNumber:      pickString(row, "plate_number", "plateNumber"),
			SubmittedByOpsID: submittedByOpsID,
		}

		if err := s.repo.Create(ctx, report); err != nil {
			return created, fmt.Errorf("failed to submit dispatch row: %w", err)
		}
		created++
	}
	return created, nil
}

// Verify confirms the given reports in one statement and shapes the
// per-id acknowledgements the dashboard expects
func (s *dispatchService) Verify(ctx context.Context, verifiedByOpsID string, dispatchIDs []string) ([]model.VerifyResult, error) {
	if _, err := s.repo.Confirm(ctx, dispatchIDs, verifiedByOpsID); err != nil {
		return nil, fmt.Errorf("failed to verify dispatch reports: %w", err)
	}

	results := make([]model.VerifyResult, 0, len(dispatchIDs))
	for _, id := range dispatchIDs {
		results = append(results, model.VerifyResult{
			DispatchIDs:   []string{id},
			CSVLink:       nil,
			SeatalkStatus: "pending",
		})
	}
	return results, nil
}
