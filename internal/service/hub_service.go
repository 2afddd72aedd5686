package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"outbound_tool/internal/model"
	"outbound_tool/internal/repository"
)

var (
	ErrHubNotFound     = errors.New("hub not found")
	ErrUnknownHubField = errors.New("unknown hub field")
	ErrNoHubFields     = errors.New("hub data is required")
)

// hubFieldAllowList is the only set of JSON keys accepted for hub create
// and update. Anything else is rejected before SQL assembly; request keys
// never reach the statement as identifiers.
var hubFieldAllowList = map[string]struct{}{
	"hub_name":     {},
	"cluster_name": {},
	"region":       {},
	"dock_number":  {},
	"active":       {},
}

// HubService defines operations over outbound_map reference data
type HubService interface {
	List(ctx context.Context, filters model.HubFilters) (*model.HubPage, error)
	Create(ctx context.Context, fields map[string]any) (*model.Hub, error)
	Update(ctx context.Context, id string, fields map[string]any) (*model.Hub, error)
	Deactivate(ctx context.Context, id string) (*model.Hub, error)
}

type hubService struct {
	repo repository.HubRepository
}

// NewHubService creates a new HubService
func NewHubService(repo repository.HubRepository) HubService {
	return &hubService{repo: repo}
}

// List returns a filtered page of hubs plus the unpaged total
func (s *hubService) List(ctx context.Context, filters model.HubFilters) (*model.HubPage, error) {
	total, err := s.repo.Count(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to count hubs: %w", err)
	}
	hubs, err := s.repo.Find(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list hubs: %w", err)
	}
	if hubs == nil {
		hubs = []model.Hub{}
	}
	return &model.HubPage{Hubs: hubs, Total: total}, nil
}

// splitFields validates the request keys against the allow-list and
// returns them in a deterministic order alongside their values.
func splitFields(fields map[string]any) ([]string, []any, error) {
	if len(fields) == 0 {
		return nil, nil, ErrNoHubFields
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		if _, ok := hubFieldAllowList[name]; !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownHubField, name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	values := make([]any, 0, len(names))
	for _, name := range names {
		values = append(values, fields[name])
	}
	return names, values, nil
}

// Create inserts a hub from allow-listed fields
func (s *hubService) Create(ctx context.Context, fields map[string]any) (*model.Hub, error) {
	names, values, err := splitFields(fields)
	if err != nil {
		return nil, err
	}
	hub, err := s.repo.Insert(ctx, names, values)
	if err != nil {
		return nil, fmt.Errorf("failed to create hub: %w", err)
	}
	return hub, nil
}

// Update applies allow-listed fields to one hub
func (s *hubService) Update(ctx context.Context, id string, fields map[string]any) (*model.Hub, error) {
	names, values, err := splitFields(fields)
	if err != nil {
		return nil, err
	}
	hub, err := s.repo.Update(ctx, id, names, values)
	if err != nil {
		return nil, fmt.Errorf("failed to update hub: %w", err)
	}
	if hub == nil {
		return nil, ErrHubNotFound
	}
	return hub, nil
}

// Deactivate soft-deletes a hub
func (s *hubService) Deactivate(ctx context.Context, id string) (*model.Hub, error) {
	hub, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to deactivate hub: %w", err)
	}
	if hub == nil {
		return nil, ErrHubNotFound
	}
	return hub, nil
}
