package model

import (
	"time"

	"github.com/uptrace/bun"
)

// StopEvent is one downtime event during a production run. Creating one
// recomputes the run's downtime total (see service.Report).
type StopEvent struct {
	bun.BaseModel `bun:"stop_events,alias:se"`

	EventID         int        `bun:"event_id,pk,autoincrement" json:"id"`
	RunID           int        `json:"runId"`
	MachineID       int        `json:"machineId"`
	CodeID          int        `json:"codeId"`
	Reason          string     `json:"reason"`
	DurationMinutes int        `json:"durationMinutes"`
	Timestamp       *time.Time `bun:",nullzero,default:current_timestamp" json:"timestamp"`

	Machine *Machine      `bun:"rel:belongs-to,join:machine_id=machine_id" json:"machine,omitempty"`
	Code    *DowntimeCode `bun:"rel:belongs-to,join:code_id=code_id" json:"code,omitempty"`
}
