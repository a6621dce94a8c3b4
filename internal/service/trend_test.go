package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevenkilo/tracker-backend/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateRange(t *testing.T) {
	dates := dateRange(day(2026, 3, 1), day(2026, 3, 5))
	require.Len(t, dates, 5)
	assert.Equal(t, day(2026, 3, 1), dates[0])
	assert.Equal(t, day(2026, 3, 5), dates[4])

	// Non-midnight inputs normalize to the same dates.
	dates = dateRange(
		time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC),
	)
	require.Len(t, dates, 1)
	assert.Equal(t, day(2026, 3, 1), dates[0])
}

func TestShapeProductTrendGapFilling(t *testing.T) {
	rows := []model.ProductDailyOutput{
		{Date: day(2026, 3, 1), ProductID: 2, ProductName: "Cola 500ml", ProductCode: "COLA-500", TotalPacks: 120},
		{Date: day(2026, 3, 3), ProductID: 2, ProductName: "Cola 500ml", ProductCode: "COLA-500", TotalPacks: 80},
		{Date: day(2026, 3, 2), ProductID: 1, ProductName: "Water 1L", ProductCode: "WTR-1000", TotalPacks: 200},
	}

	trend := shapeProductTrend(rows, day(2026, 3, 1), day(2026, 3, 4))

	assert.Equal(t, []string{"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04"}, trend.ChartData.Labels)
	require.Len(t, trend.ChartData.Datasets, 2)
	assert.Equal(t, 2, trend.TotalProducts)

	// Datasets come out in product ID order and are padded with explicit
	// zeros on production-free dates.
	for _, ds := range trend.ChartData.Datasets {
		assert.Len(t, ds.Data, len(trend.ChartData.Labels))
	}
	assert.Equal(t, "Water 1L", trend.ChartData.Datasets[0].Label)
	assert.Equal(t, []int{0, 200, 0, 0}, trend.ChartData.Datasets[0].Data)
	assert.Equal(t, "Cola 500ml", trend.ChartData.Datasets[1].Label)
	assert.Equal(t, []int{120, 0, 80, 0}, trend.ChartData.Datasets[1].Data)

	assert.Equal(t, 200, trend.Products[1].TotalPacks)
	assert.Equal(t, 200, trend.Products[2].TotalPacks)
	assert.Equal(t, "COLA-500", trend.Products[2].Code)
}

func TestShapeProductTrendEmpty(t *testing.T) {
	trend := shapeProductTrend(nil, day(2026, 3, 1), day(2026, 3, 7))

	assert.Len(t, trend.ChartData.Labels, 7)
	assert.Empty(t, trend.ChartData.Datasets)
	assert.Zero(t, trend.TotalProducts)
}

func TestShapeProductTrendSumsSameDayRuns(t *testing.T) {
	rows := []model.ProductDailyOutput{
		{Date: day(2026, 3, 1), ProductID: 1, ProductName: "Water 1L", TotalPacks: 100},
		{Date: day(2026, 3, 1), ProductID: 1, ProductName: "Water 1L", TotalPacks: 50},
	}

	trend := shapeProductTrend(rows, day(2026, 3, 1), day(2026, 3, 1))

	require.Len(t, trend.ChartData.Datasets, 1)
	assert.Equal(t, []int{150}, trend.ChartData.Datasets[0].Data)
	assert.Equal(t, 150, trend.Products[1].TotalPacks)
}

func TestFillOEETrend(t *testing.T) {
	rows := []model.OEEDailyRow{
		{Date: day(2026, 3, 2), AvgOEE: 75.5, AvgAvailability: 90, RunsCount: 3},
	}

	filled := fillOEETrend(rows, day(2026, 3, 1), day(2026, 3, 3))

	require.Len(t, filled, 3)
	assert.Zero(t, filled[0].AvgOEE)
	assert.Zero(t, filled[0].RunsCount)
	assert.Equal(t, 75.5, filled[1].AvgOEE)
	assert.Equal(t, day(2026, 3, 2), filled[1].Date)
	assert.Zero(t, filled[2].AvgOEE)
}
