package services

import (
	"context"
	"time"
)

// HealthStatus reports service liveness and dataset state.
type HealthStatus struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	Rows      int       `json:"rows"`
	CheckedAt time.Time `json:"checked_at"`
}

// HealthService answers health checks.
type HealthService struct {
	charts  *ChartService
	version string
	started time.Time
}

// NewHealthService creates a health service over the chart service.
func NewHealthService(charts *ChartService, version string) *HealthService {
	return &HealthService{
		charts:  charts,
		version: version,
		started: time.Now(),
	}
}

// Check reports current health. A loaded dataset with rows is healthy; an
// empty one degrades the status without failing the endpoint.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := "healthy"
	rows := s.charts.snapshot().Len()
	if rows == 0 {
		status = "degraded"
	}
	return HealthStatus{
		Status:    status,
		Version:   s.version,
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Rows:      rows,
		CheckedAt: time.Now().UTC(),
	}
}
