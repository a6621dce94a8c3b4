package model

import (
	"github.com/uptrace/bun"
)

type Machine struct {
	bun.BaseModel `bun:"machines,alias:m"`

	MachineID   int    `bun:"machine_id,pk,autoincrement" json:"id"`
	LineID      int    `json:"lineId"`
	MachineName string `json:"machineName"`
	MachineCode string `json:"machineCode"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	// RatedOutput is the machine's rated output in bottles per hour.
	RatedOutput float64 `json:"ratedOutput"`
}

type DowntimeCode struct {
	bun.BaseModel `bun:"downtime_codes,alias:dc"`

	CodeID    int    `bun:"code_id,pk,autoincrement" json:"id"`
	MachineID int    `json:"machineId"`
	Code      string `bun:",unique" json:"code"`
	Reason    string `json:"reason"`
}
