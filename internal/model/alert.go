package model

const (
	AlertTypeLowOEE       = "LOW_OEE"
	AlertTypeHighDowntime = "HIGH_DOWNTIME"
	AlertTypeLowQuality   = "LOW_QUALITY"

	AlertSeverityMedium = "MEDIUM"
	AlertSeverityHigh   = "HIGH"
)

// Alert is a threshold violation on a recent production run.
type Alert struct {
	Type        string  `json:"type"`
	Severity    string  `json:"severity"`
	Message     string  `json:"message"`
	RunID       int     `json:"runId"`
	BatchNumber string  `json:"batchNumber"`
	Value       float64 `json:"value"`
}
