package model

import (
	"time"
)

// ProductDailyOutput is one aggregation row: packs produced of one product on
// one date. Rows are the raw material the trend service shapes into chart
// series.
type ProductDailyOutput struct {
	Date        time.Time `bun:"date" json:"date"`
	ProductID   int       `bun:"product_id" json:"productId"`
	ProductName string    `bun:"product_name" json:"productName"`
	ProductCode string    `bun:"product_code" json:"productCode"`
	TotalPacks  int       `bun:"total_packs" json:"totalPacks"`
}

// ProductTrendSeries is one product's gap-filled series, positionally aligned
// with the trend labels.
type ProductTrendSeries struct {
	Label string `json:"label"`
	Data  []int  `json:"data"`
}

type ProductTrendChartData struct {
	Labels   []string             `json:"labels"`
	Datasets []ProductTrendSeries `json:"datasets"`
}

type ProductTotals struct {
	Name       string `json:"name"`
	Code       string `json:"code"`
	TotalPacks int    `json:"totalPacks"`
}

// ProductTrend is the chart-ready production trend over a date range.
// Invariant: every dataset's Data has exactly len(ChartData.Labels) entries;
// dates without production carry an explicit zero so the axis stays aligned.
// It is rebuilt from production runs on every request and never persisted.
type ProductTrend struct {
	ChartData     ProductTrendChartData `json:"chartData"`
	Products      map[int]ProductTotals `json:"products"`
	DateRange     []time.Time           `json:"dateRange"`
	TotalProducts int                   `json:"totalProducts"`
}

// OEEDailyRow is one day's averaged OEE metrics.
type OEEDailyRow struct {
	Date            time.Time `bun:"date" json:"date"`
	AvgOEE          float64   `bun:"avg_oee" json:"avgOee"`
	AvgAvailability float64   `bun:"avg_availability" json:"avgAvailability"`
	AvgPerformance  float64   `bun:"avg_performance" json:"avgPerformance"`
	AvgQuality      float64   `bun:"avg_quality" json:"avgQuality"`
	RunsCount       int       `bun:"runs_count" json:"runsCount"`
}
