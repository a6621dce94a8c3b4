package model

import (
	"github.com/uptrace/bun"
)

// PackagingMaterial records consumables and rejects for one production run.
type PackagingMaterial struct {
	bun.BaseModel `bun:"packaging_materials,alias:pm"`

	ID    int `bun:",pk,autoincrement" json:"id"`
	RunID int `bun:",unique" json:"runId"`

	QtyPreformUsed   int     `json:"qtyPreformUsed"`
	QtyCapUsed       int     `json:"qtyCapUsed"`
	QtyProductReject int     `json:"qtyProductReject"`
	QtyPreformReject int     `json:"qtyPreformReject"`
	QtyBottleReject  int     `json:"qtyBottleReject"`
	QtyCapReject     int     `json:"qtyCapReject"`
	LabelRejectG     float64 `bun:"label_reject_g" json:"labelRejectG"`
	ShrinkWrapKG     float64 `bun:"shrink_wrap_kg" json:"shrinkWrapKg"`
	StretchWrapG     float64 `bun:"stretch_wrap_g" json:"stretchWrapG"`
}

// Utility records utility consumption for one production run.
type Utility struct {
	bun.BaseModel `bun:"utilities,alias:u"`

	ID    int `bun:",pk,autoincrement" json:"id"`
	RunID int `bun:",unique" json:"runId"`

	KgCO2               float64 `bun:"kg_co2" json:"kgCo2"`
	BoilerFuelL         float64 `bun:"boiler_fuel_l" json:"boilerFuelL"`
	GeneratorFuelL      float64 `bun:"generator_fuel_l" json:"generatorFuelL"`
	EDGPowerConsumption float64 `bun:"edg_power_consumption" json:"edgPowerConsumption"`
}
