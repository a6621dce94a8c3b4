package service

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/sevenkilo/tracker-backend/internal/model"
	"github.com/sevenkilo/tracker-backend/internal/repo"
)

type Alert struct {
	RunRepo *repo.ProductionRun
}

func NewAlert(runRepo *repo.ProductionRun) *Alert {
	return &Alert{
		RunRepo: runRepo,
	}
}

// GetRecentAlerts scans runs from the last `days` days against the
// operational thresholds. Used by the dashboard.
func (s *Alert) GetRecentAlerts(ctx context.Context, days int) ([]model.Alert, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -days)

	runs, err := s.RunRepo.GetRunsByDateRange(ctx, start, end, 0)
	if err != nil {
		return nil, err
	}

	return lo.FlatMap(runs, func(run *model.ProductionRun, _ int) []model.Alert {
		return RunAlerts(run)
	}), nil
}
