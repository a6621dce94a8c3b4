package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sevenkilo/tracker-backend/internal/model"
	modelcache "github.com/sevenkilo/tracker-backend/internal/model/cache"
	"github.com/sevenkilo/tracker-backend/internal/repo"
)

const trendCacheExpiry = 10 * time.Minute

type Trend struct {
	RunRepo    *repo.ProductionRun
	ReportRepo *repo.ProductionReport
}

func NewTrend(runRepo *repo.ProductionRun, reportRepo *repo.ProductionReport) *Trend {
	return &Trend{
		RunRepo:    runRepo,
		ReportRepo: reportRepo,
	}
}

func trendCacheKey(start, end time.Time, lineID int) string {
	return fmt.Sprintf("%s|%s|%d", start.Format("2006-01-02"), end.Format("2006-01-02"), lineID)
}

// dateRange returns every date from start to end inclusive, normalized to
// midnight UTC.
func dateRange(start, end time.Time) []time.Time {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// GetProductTrend shapes per-product daily production into chart-ready form.
// Every dataset is gap-filled to the full date range: a date without
// production carries an explicit zero so datasets stay positionally aligned
// with the labels. lineID of 0 covers all lines.
func (s *Trend) GetProductTrend(ctx context.Context, start, end time.Time, lineID int) (*model.ProductTrend, error) {
	var trend model.ProductTrend
	_, err := modelcache.ProductTrend.MutexGetSet(trendCacheKey(start, end, lineID), &trend, func() (model.ProductTrend, error) {
		return s.calculateProductTrend(ctx, start, end, lineID)
	}, trendCacheExpiry)
	if err != nil {
		return nil, err
	}
	return &trend, nil
}

func (s *Trend) calculateProductTrend(ctx context.Context, start, end time.Time, lineID int) (model.ProductTrend, error) {
	rows, err := s.RunRepo.AggregateProductDailyOutputs(ctx, start, end, lineID)
	if err != nil {
		return model.ProductTrend{}, err
	}
	return shapeProductTrend(rows, start, end), nil
}

func shapeProductTrend(rows []model.ProductDailyOutput, start, end time.Time) model.ProductTrend {
	dates := dateRange(start, end)
	labels := make([]string, len(dates))
	dateIndex := make(map[string]int, len(dates))
	for i, d := range dates {
		labels[i] = d.Format("2006-01-02")
		dateIndex[labels[i]] = i
	}

	products := make(map[int]model.ProductTotals)
	series := make(map[int][]int)
	for _, row := range rows {
		if _, ok := series[row.ProductID]; !ok {
			series[row.ProductID] = make([]int, len(labels))
			products[row.ProductID] = model.ProductTotals{
				Name: row.ProductName,
				Code: row.ProductCode,
			}
		}
		idx, ok := dateIndex[row.Date.Format("2006-01-02")]
		if !ok {
			continue
		}
		series[row.ProductID][idx] += row.TotalPacks

		totals := products[row.ProductID]
		totals.TotalPacks += row.TotalPacks
		products[row.ProductID] = totals
	}

	productIDs := make([]int, 0, len(series))
	for id := range series {
		productIDs = append(productIDs, id)
	}
	sort.Ints(productIDs)

	datasets := make([]model.ProductTrendSeries, 0, len(productIDs))
	for _, id := range productIDs {
		datasets = append(datasets, model.ProductTrendSeries{
			Label: products[id].Name,
			Data:  series[id],
		})
	}

	return model.ProductTrend{
		ChartData: model.ProductTrendChartData{
			Labels:   labels,
			Datasets: datasets,
		},
		Products:      products,
		DateRange:     dates,
		TotalProducts: len(datasets),
	}
}

// GetOEETrend returns per-date averaged OEE components, gap-filled so every
// date in the range appears even when no run was reported.
func (s *Trend) GetOEETrend(ctx context.Context, start, end time.Time, lineID int) ([]model.OEEDailyRow, error) {
	var rows []model.OEEDailyRow
	_, err := modelcache.OEETrend.MutexGetSet(trendCacheKey(start, end, lineID), &rows, func() ([]model.OEEDailyRow, error) {
		return s.calculateOEETrend(ctx, start, end, lineID)
	}, trendCacheExpiry)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Trend) calculateOEETrend(ctx context.Context, start, end time.Time, lineID int) ([]model.OEEDailyRow, error) {
	rows, err := s.ReportRepo.AggregateOEEDailyRows(ctx, start, end, lineID)
	if err != nil {
		return nil, err
	}
	return fillOEETrend(rows, start, end), nil
}

func fillOEETrend(rows []model.OEEDailyRow, start, end time.Time) []model.OEEDailyRow {
	byDate := make(map[string]model.OEEDailyRow, len(rows))
	for _, row := range rows {
		byDate[row.Date.Format("2006-01-02")] = row
	}

	dates := dateRange(start, end)
	filled := make([]model.OEEDailyRow, 0, len(dates))
	for _, d := range dates {
		if row, ok := byDate[d.Format("2006-01-02")]; ok {
			row.Date = d
			filled = append(filled, row)
			continue
		}
		filled = append(filled, model.OEEDailyRow{Date: d})
	}
	return filled
}

// RefreshCaches recomputes the common dashboard windows. Called by the calc
// worker on its trend cadence and by the admin surface on demand.
func (s *Trend) RefreshCaches(ctx context.Context) error {
	if err := modelcache.ProductTrend.Flush(); err != nil {
		return err
	}
	if err := modelcache.OEETrend.Flush(); err != nil {
		return err
	}

	now := time.Now()
	for _, days := range []int{7, 30} {
		start := now.AddDate(0, 0, -days+1)
		if _, err := s.GetProductTrend(ctx, start, now, 0); err != nil {
			return err
		}
		if _, err := s.GetOEETrend(ctx, start, now, 0); err != nil {
			return err
		}
	}
	return nil
}
