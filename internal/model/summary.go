package model

import (
	"time"

	"gopkg.in/guregu/null.v3"
)

// ProductionTotals are the shared aggregate columns of the summary queries.
type ProductionTotals struct {
	TotalProduction int        `bun:"total_production" json:"totalProduction"`
	TotalDowntime   int        `bun:"total_downtime" json:"totalDowntime"`
	AvgOEE          null.Float `bun:"avg_oee" json:"avgOee"`
	TotalRuns       int        `bun:"total_runs" json:"totalRuns"`
	TotalSyrup      float64    `bun:"total_syrup" json:"totalSyrup"`
}

// ShiftSummary is the per-shift slice of a daily summary.
type ShiftSummary struct {
	ShiftName       string           `json:"shiftName"`
	TeamLeader      string           `json:"teamLeader"`
	TotalProduction int              `json:"totalProduction"`
	TotalDowntime   int              `json:"totalDowntime"`
	Runs            []*ProductionRun `json:"runs"`
}

type DailySummary struct {
	Date        time.Time                `json:"date"`
	Shifts      map[string]*ShiftSummary `json:"shifts"`
	DailyTotals ProductionTotals         `json:"dailyTotals"`
	LineID      int                      `json:"lineId,omitempty"`
}

type WeeklySummary struct {
	WeekStart      time.Time                `json:"weekStart"`
	WeekEnd        time.Time                `json:"weekEnd"`
	DailySummaries map[string]*DailySummary `json:"dailySummaries"`
	WeeklyTotals   ProductionTotals         `json:"weeklyTotals"`
	LineID         int                      `json:"lineId,omitempty"`
}

// DowntimeReason is one aggregated downtime cause over a date range.
type DowntimeReason struct {
	Code            string `bun:"code" json:"code"`
	CodeReason      string `bun:"code_reason" json:"codeReason"`
	Reason          string `bun:"reason" json:"reason"`
	MachineName     string `bun:"machine_name" json:"machineName"`
	TotalDuration   int    `bun:"total_duration" json:"totalDuration"`
	OccurrenceCount int    `bun:"occurrence_count" json:"occurrenceCount"`
}

// DowntimePareto is chart-ready Pareto data for downtime analysis.
type DowntimePareto struct {
	Categories            []string  `json:"categories"`
	Values                []int     `json:"values"`
	CumulativePercentages []float64 `json:"cumulativePercentages"`
	TotalDuration         int       `json:"totalDuration"`
	// Pareto80Index is the index of the first category crossing 80% of the
	// cumulative total, or -1 when the set never reaches it.
	Pareto80Index int `json:"pareto80Index"`
}

// MachineUtilization is one machine's utilization over a date range.
type MachineUtilization struct {
	MachineName            string  `json:"machineName"`
	UtilizationPercentage  float64 `json:"utilizationPercentage"`
	TotalPlannedTime       float64 `json:"totalPlannedTime"`
	TotalDowntime          int     `json:"totalDowntime"`
	ActualRuntime          float64 `json:"actualRuntime"`
	RatedOutput            float64 `json:"ratedOutput"`
}
