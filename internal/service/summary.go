package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sevenkilo/tracker-backend/internal/model"
	modelcache "github.com/sevenkilo/tracker-backend/internal/model/cache"
	"github.com/sevenkilo/tracker-backend/internal/repo"
)

const summaryCacheExpiry = 5 * time.Minute

type Summary struct {
	RunRepo *repo.ProductionRun
}

func NewSummary(runRepo *repo.ProductionRun) *Summary {
	return &Summary{
		RunRepo: runRepo,
	}
}

// GetDailySummary breaks one day's production down per shift. Today's
// summary changes as runs close so the cache window is short.
func (s *Summary) GetDailySummary(ctx context.Context, date time.Time, lineID int) (*model.DailySummary, error) {
	key := fmt.Sprintf("%s|%d", date.Format("2006-01-02"), lineID)
	var summary model.DailySummary
	_, err := modelcache.DailySummary.MutexGetSet(key, &summary, func() (model.DailySummary, error) {
		return s.calculateDailySummary(ctx, date, lineID)
	}, summaryCacheExpiry)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *Summary) calculateDailySummary(ctx context.Context, date time.Time, lineID int) (model.DailySummary, error) {
	runs, err := s.RunRepo.GetRunsByDate(ctx, date, lineID, "")
	if err != nil {
		return model.DailySummary{}, err
	}

	summary := model.DailySummary{
		Date:   date,
		Shifts: make(map[string]*model.ShiftSummary),
		LineID: lineID,
	}

	for _, run := range runs {
		shiftName := "UNKNOWN"
		if run.Shift != nil {
			shiftName = run.Shift.Name
		}
		shift, ok := summary.Shifts[shiftName]
		if !ok {
			shift = &model.ShiftSummary{
				ShiftName:  shiftName,
				TeamLeader: run.TeamLeaderName,
			}
			summary.Shifts[shiftName] = shift
		}
		shift.TotalProduction += run.GoodProductsPack
		shift.TotalDowntime += run.TotalDowntimeMinutes
		shift.Runs = append(shift.Runs, run)
	}

	totals, err := s.RunRepo.AggregateTotals(ctx, date, date, lineID)
	if err != nil {
		return model.DailySummary{}, err
	}
	summary.DailyTotals = *totals

	return summary, nil
}

// GetWeeklySummary covers the 7 days starting at weekStart.
func (s *Summary) GetWeeklySummary(ctx context.Context, weekStart time.Time, lineID int) (*model.WeeklySummary, error) {
	weekEnd := weekStart.AddDate(0, 0, 6)

	summary := &model.WeeklySummary{
		WeekStart:      weekStart,
		WeekEnd:        weekEnd,
		DailySummaries: make(map[string]*model.DailySummary, 7),
		LineID:         lineID,
	}

	for d := weekStart; !d.After(weekEnd); d = d.AddDate(0, 0, 1) {
		daily, err := s.GetDailySummary(ctx, d, lineID)
		if err != nil {
			return nil, err
		}
		summary.DailySummaries[d.Format("2006-01-02")] = daily
	}

	totals, err := s.RunRepo.AggregateTotals(ctx, weekStart, weekEnd, lineID)
	if err != nil {
		return nil, err
	}
	summary.WeeklyTotals = *totals

	return summary, nil
}

// WeekStartOf normalizes any date to the Monday of its ISO week.
func WeekStartOf(date time.Time) time.Time {
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return date.AddDate(0, 0, -(weekday - 1))
}
