package model

import (
	"github.com/uptrace/bun"
)

type ProductionLine struct {
	bun.BaseModel `bun:"production_lines,alias:pl"`

	LineID      int    `bun:"line_id,pk,autoincrement" json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	// RatedSpeed is the line's rated speed in bottles per hour.
	RatedSpeed float64 `json:"ratedSpeed"`
}
