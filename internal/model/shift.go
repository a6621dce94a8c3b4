package model

import (
	"github.com/uptrace/bun"
)

const (
	Shift8H1  = "8H_SHIFT_1"
	Shift8H2  = "8H_SHIFT_2"
	Shift8H3  = "8H_SHIFT_3"
	Shift12H1 = "12H_SHIFT_1"
	Shift12H2 = "12H_SHIFT_2"
)

type Shift struct {
	bun.BaseModel `bun:"shifts,alias:sh"`

	ShiftID int    `bun:"shift_id,pk,autoincrement" json:"id"`
	Name    string `json:"name"`
	// StartTime/EndTime are clock times in "15:04" form.
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	DurationHours float64 `json:"durationHours"`
}
