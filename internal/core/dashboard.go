package core

import (
	"context"

	"jobtrack-client-go/internal/models"
)

// LoadDashboardStats fetches the aggregates behind the dashboard shell:
// application counts by status, the monthly application series, pending
// tasks and upcoming interviews.
func (s *DataStore) LoadDashboardStats(ctx context.Context) error {
	if s.gated() {
		return nil
	}
	s.begin(ResourceDashboard)

	env, err := s.api.Get(ctx, "/jobs/stats")
	if err != nil {
		s.finish(ResourceDashboard, err)
		return err
	}

	var stats models.DashboardStats
	if err := decodePayload(env, &stats); err != nil {
		s.finish(ResourceDashboard, err)
		return err
	}

	s.mu.Lock()
	s.stats = &stats
	s.mu.Unlock()

	s.finish(ResourceDashboard, nil)
	return nil
}

// DashboardStats returns the last loaded dashboard aggregates, or nil.
func (s *DataStore) DashboardStats() *models.DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stats == nil {
		return nil
	}
	stats := *s.stats
	return &stats
}
