package service

import (
	"fmt"
	"math"

	"github.com/sevenkilo/tracker-backend/internal/model"
)

// Units per pack. Packs are recorded per dozen while machine outputs are
// rated in bottles per hour.
const unitsPerPack = 12

// expected CO2 consumption in kg per pack
const expectedCO2PerPack = 0.1

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Availability is the share of planned production time the line actually ran:
// (planned - downtime) / planned * 100.
func Availability(plannedMinutes float64, downtimeMinutes int) float64 {
	if plannedMinutes <= 0 {
		return 0
	}
	actualRuntime := plannedMinutes - float64(downtimeMinutes)
	return round2(actualRuntime / plannedMinutes * 100)
}

// Performance compares actual output in units against the rated output of the
// line's main machine over the run duration.
func Performance(goodPacks int, ratedOutputPerHour, durationMinutes float64) float64 {
	if durationMinutes <= 0 {
		return 0
	}
	theoretical := ratedOutputPerHour * durationMinutes / 60
	if theoretical <= 0 {
		return 0
	}
	return round2(float64(goodPacks*unitsPerPack) / theoretical * 100)
}

// Quality is the good-pack share of total production including rejects.
func Quality(goodPacks, productRejects, bottleRejects int) float64 {
	total := goodPacks + productRejects + bottleRejects
	if total <= 0 {
		return 0
	}
	return round2(float64(goodPacks) / float64(total) * 100)
}

// OEE combines the three percentage factors; the divisor normalizes the two
// extra factors of 100.
func OEE(availability, performance, quality float64) float64 {
	return round2(availability * performance * quality / 10000)
}

// SyrupYield compares the recorded final syrup volume against the volume the
// product's standard ratio predicts for the packs produced.
func SyrupYield(actualSyrupL float64, goodPacks, volumeML int, standardRatio float64) float64 {
	expectedL := float64(goodPacks) * float64(volumeML) * standardRatio / 1000
	if expectedL <= 0 {
		return 0
	}
	return round2(actualSyrupL / expectedL * 100)
}

// PreformYield is the share of preforms that survived blowing.
func PreformYield(preformsUsed, preformRejects int) float64 {
	total := preformsUsed + preformRejects
	if total <= 0 {
		return 0
	}
	return round2(float64(preformsUsed) / float64(total) * 100)
}

// BottleRejectPercent is the bottle reject share of total bottles handled.
func BottleRejectPercent(goodPacks, bottleRejects int) float64 {
	total := goodPacks + bottleRejects
	if total <= 0 {
		return 0
	}
	return round2(float64(bottleRejects) / float64(total) * 100)
}

// CO2Utilization compares expected CO2 consumption for the packs produced
// against the recorded consumption.
func CO2Utilization(goodPacks int, actualKgCO2 float64) float64 {
	if goodPacks <= 0 || actualKgCO2 <= 0 {
		return 0
	}
	expected := float64(goodPacks) * expectedCO2PerPack
	return round2(expected / actualKgCO2 * 100)
}

// RunAlerts checks one run's report against the operational thresholds and
// returns zero or more alerts.
func RunAlerts(run *model.ProductionRun) []model.Alert {
	var alerts []model.Alert
	if run.Report == nil {
		return alerts
	}

	if run.Report.OEE.Valid && run.Report.OEE.Float64 < 60 {
		severity := model.AlertSeverityMedium
		if run.Report.OEE.Float64 < 40 {
			severity = model.AlertSeverityHigh
		}
		alerts = append(alerts, model.Alert{
			Type:        model.AlertTypeLowOEE,
			Severity:    severity,
			Message:     fmt.Sprintf("Low OEE: %.1f%% on batch %s", run.Report.OEE.Float64, run.ProductionBatchNumber),
			RunID:       run.RunID,
			BatchNumber: run.ProductionBatchNumber,
			Value:       run.Report.OEE.Float64,
		})
	}

	if run.TotalDowntimeMinutes > 60 {
		severity := model.AlertSeverityMedium
		if run.TotalDowntimeMinutes > 120 {
			severity = model.AlertSeverityHigh
		}
		alerts = append(alerts, model.Alert{
			Type:        model.AlertTypeHighDowntime,
			Severity:    severity,
			Message:     fmt.Sprintf("High downtime: %d minutes on batch %s", run.TotalDowntimeMinutes, run.ProductionBatchNumber),
			RunID:       run.RunID,
			BatchNumber: run.ProductionBatchNumber,
			Value:       float64(run.TotalDowntimeMinutes),
		})
	}

	if run.Report.Quality.Valid && run.Report.Quality.Float64 < 95 {
		severity := model.AlertSeverityMedium
		if run.Report.Quality.Float64 < 90 {
			severity = model.AlertSeverityHigh
		}
		alerts = append(alerts, model.Alert{
			Type:        model.AlertTypeLowQuality,
			Severity:    severity,
			Message:     fmt.Sprintf("Low quality: %.1f%% on batch %s", run.Report.Quality.Float64, run.ProductionBatchNumber),
			RunID:       run.RunID,
			BatchNumber: run.ProductionBatchNumber,
			Value:       run.Report.Quality.Float64,
		})
	}

	return alerts
}
