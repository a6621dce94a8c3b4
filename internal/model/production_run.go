package model

import (
	"time"

	"github.com/uptrace/bun"
)

// ProductionRun is a single run of one product on one line during one shift.
// The batch number is unique per line and date.
type ProductionRun struct {
	bun.BaseModel `bun:"production_runs,alias:pr"`

	RunID                 int        `bun:"run_id,pk,autoincrement" json:"id"`
	OrderID               int        `json:"orderId"`
	ProductionBatchNumber string     `json:"productionBatchNumber"`
	Date                  time.Time  `bun:"date,type:date" json:"date"`
	LineID                int        `json:"lineId"`
	ProductID             int        `json:"productId"`
	PackageSizeID         int        `json:"packageSizeId"`
	ProductionStart       time.Time  `json:"productionStart"`
	ProductionEnd         *time.Time `bun:",nullzero" json:"productionEnd"`

	ShiftID        int    `json:"shiftId"`
	TeamLeaderName string `json:"teamLeaderName"`

	TotalDowntimeMinutes int     `json:"totalDowntimeMinutes"`
	FinalSyrupVolume     float64 `json:"finalSyrupVolume"`
	MixingRatio          string  `json:"mixingRatio"`
	FillerOutput         float64 `json:"fillerOutput"`
	GoodProductsPack     int     `json:"goodProductsPack"`

	IsCompleted bool       `json:"isCompleted"`
	CreatedAt   *time.Time `bun:",nullzero,default:current_timestamp" json:"createdAt"`
	UpdatedAt   *time.Time `bun:",nullzero,default:current_timestamp" json:"updatedAt"`

	Line        *ProductionLine    `bun:"rel:belongs-to,join:line_id=line_id" json:"line,omitempty"`
	Product     *Product           `bun:"rel:belongs-to,join:product_id=product_id" json:"product,omitempty"`
	PackageSize *PackageSize       `bun:"rel:belongs-to,join:package_size_id=package_size_id" json:"packageSize,omitempty"`
	Shift       *Shift             `bun:"rel:belongs-to,join:shift_id=shift_id" json:"shift,omitempty"`
	Packaging   *PackagingMaterial `bun:"rel:has-one,join:run_id=run_id" json:"packaging,omitempty"`
	Utility     *Utility           `bun:"rel:has-one,join:run_id=run_id" json:"utility,omitempty"`
	Report      *ProductionReport  `bun:"rel:has-one,join:run_id=run_id" json:"report,omitempty"`
}

// ProductionDurationMinutes is the wall-clock duration of the run, or 0 while
// the run is still open.
func (r *ProductionRun) ProductionDurationMinutes() float64 {
	if r.ProductionEnd == nil || r.ProductionEnd.IsZero() {
		return 0
	}
	return r.ProductionEnd.Sub(r.ProductionStart).Minutes()
}

// PlannedProductionTimeMinutes falls back to the shift duration while the run
// has no recorded end time.
func (r *ProductionRun) PlannedProductionTimeMinutes() float64 {
	if d := r.ProductionDurationMinutes(); d > 0 {
		return d
	}
	if r.Shift != nil {
		return r.Shift.DurationHours * 60
	}
	return 0
}
