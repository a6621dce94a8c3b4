package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// ProductionReport holds the calculated metrics for one completed run.
// Metrics are nullable: a run without packaging data has no quality figure,
// a run on a line without an active machine has no performance figure.
type ProductionReport struct {
	bun.BaseModel `bun:"production_reports,alias:rep"`

	ReportID int `bun:"report_id,pk,autoincrement" json:"id"`
	RunID    int `bun:",unique" json:"runId"`

	SyrupYieldPercentage    null.Float `json:"syrupYieldPercentage"`
	PreformYieldPercentage  null.Float `json:"preformYieldPercentage"`
	BottleRejectPercentage  null.Float `json:"bottleRejectPercentage"`
	CO2UtilizationPercent   null.Float `bun:"co2_utilization_percent" json:"co2UtilizationPercent"`

	Availability null.Float `json:"availability"`
	Performance  null.Float `json:"performance"`
	Quality      null.Float `json:"quality"`
	OEE          null.Float `bun:"oee" json:"oee"`

	CalculatedAt *time.Time `bun:",nullzero,default:current_timestamp" json:"calculatedAt"`
}

// OEEGrade maps OEE onto the industry bands.
func (r *ProductionReport) OEEGrade() string {
	if !r.OEE.Valid {
		return "No Data"
	}
	switch oee := r.OEE.Float64; {
	case oee >= 85:
		return "World Class"
	case oee >= 70:
		return "Good"
	case oee >= 50:
		return "Fair"
	default:
		return "Poor"
	}
}
