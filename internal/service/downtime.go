package service

import (
	"context"
	"time"

	"github.com/sevenkilo/tracker-backend/internal/model"
	"github.com/sevenkilo/tracker-backend/internal/repo"
)

// Pareto chart labels are truncated to keep the category axis readable.
const paretoLabelMaxLen = 25

type Downtime struct {
	EventRepo *repo.StopEvent
}

func NewDowntime(eventRepo *repo.StopEvent) *Downtime {
	return &Downtime{
		EventRepo: eventRepo,
	}
}

// GetTopReasons returns the heaviest downtime causes over a date range,
// ordered by total duration. limit of 0 returns all.
func (s *Downtime) GetTopReasons(ctx context.Context, start, end time.Time, lineID, limit int) ([]model.DowntimeReason, error) {
	reasons, err := s.EventRepo.AggregateDowntimeReasons(ctx, start, end, lineID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(reasons) > limit {
		reasons = reasons[:limit]
	}
	return reasons, nil
}

// GetPareto shapes aggregated downtime into Pareto chart data: categories in
// descending duration order with running cumulative percentages.
func (s *Downtime) GetPareto(ctx context.Context, start, end time.Time, lineID int) (*model.DowntimePareto, error) {
	reasons, err := s.EventRepo.AggregateDowntimeReasons(ctx, start, end, lineID)
	if err != nil {
		return nil, err
	}
	return shapePareto(reasons), nil
}

func shapePareto(reasons []model.DowntimeReason) *model.DowntimePareto {
	pareto := &model.DowntimePareto{
		Categories:            make([]string, 0, len(reasons)),
		Values:                make([]int, 0, len(reasons)),
		CumulativePercentages: make([]float64, 0, len(reasons)),
		Pareto80Index:         -1,
	}
	for _, r := range reasons {
		pareto.TotalDuration += r.TotalDuration
	}
	if pareto.TotalDuration == 0 {
		return pareto
	}

	cumulative := 0
	for i, r := range reasons {
		pareto.Categories = append(pareto.Categories, paretoCategory(r))
		pareto.Values = append(pareto.Values, r.TotalDuration)

		cumulative += r.TotalDuration
		pct := round2(float64(cumulative) / float64(pareto.TotalDuration) * 100)
		pareto.CumulativePercentages = append(pareto.CumulativePercentages, pct)

		if pareto.Pareto80Index == -1 && pct >= 80 {
			pareto.Pareto80Index = i
		}
	}
	return pareto
}

// paretoCategory labels a category as "<code> - <reason>" with the coded
// reason capped at 25 characters.
func paretoCategory(r model.DowntimeReason) string {
	reason := r.CodeReason
	if reason == "" {
		reason = "Unknown"
	}
	return r.Code + " - " + truncateLabel(reason)
}

// truncateLabel caps a label at paretoLabelMaxLen characters, ellipsis
// included. Runes, not bytes, so multi-byte text is never split mid-sequence.
func truncateLabel(label string) string {
	runes := []rune(label)
	if len(runes) <= paretoLabelMaxLen {
		return label
	}
	return string(runes[:paretoLabelMaxLen-3]) + "..."
}
