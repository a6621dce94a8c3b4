package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/guregu/null.v3"

	"github.com/sevenkilo/tracker-backend/internal/model"
)

func TestAvailability(t *testing.T) {
	assert.Equal(t, 87.5, Availability(480, 60))
	assert.Equal(t, 100.0, Availability(480, 0))
	assert.Equal(t, 0.0, Availability(480, 480))
	assert.Equal(t, 0.0, Availability(0, 30), "no planned time means no availability")
}

func TestPerformance(t *testing.T) {
	// 1000 packs of 12 units over 8 hours on a 3000 units/h machine:
	// 12000 / 24000 = 50%.
	assert.Equal(t, 50.0, Performance(1000, 3000, 480))
	assert.Equal(t, 0.0, Performance(1000, 3000, 0))
	assert.Equal(t, 0.0, Performance(1000, 0, 480))
}

func TestQuality(t *testing.T) {
	assert.Equal(t, 95.0, Quality(950, 30, 20))
	assert.Equal(t, 100.0, Quality(500, 0, 0))
	assert.Equal(t, 0.0, Quality(0, 0, 0))
}

func TestOEE(t *testing.T) {
	assert.Equal(t, 85.5, OEE(90, 95, 100))
	assert.Equal(t, 0.0, OEE(0, 95, 100))

	// World-class reference point.
	assert.Equal(t, 72.68, OEE(90, 95, 85))
}

func TestSyrupYield(t *testing.T) {
	// 1000 packs x 500ml x ratio 0.2 = 100L expected.
	assert.Equal(t, 98.0, SyrupYield(98, 1000, 500, 0.2))
	assert.Equal(t, 0.0, SyrupYield(98, 0, 500, 0.2))
}

func TestPreformYield(t *testing.T) {
	assert.Equal(t, 99.01, PreformYield(10000, 100))
	assert.Equal(t, 0.0, PreformYield(0, 0))
}

func TestBottleRejectPercent(t *testing.T) {
	assert.Equal(t, 2.0, BottleRejectPercent(980, 20))
	assert.Equal(t, 0.0, BottleRejectPercent(0, 0))
}

func TestCO2Utilization(t *testing.T) {
	// 1000 packs expect 100kg CO2; 125kg actual means 80% utilization.
	assert.Equal(t, 80.0, CO2Utilization(1000, 125))
	assert.Equal(t, 0.0, CO2Utilization(0, 125))
	assert.Equal(t, 0.0, CO2Utilization(1000, 0))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, round2(100.0/3))
	assert.Equal(t, 66.67, round2(200.0/3))
}

func runWithReport(oee, quality float64, downtime int) *model.ProductionRun {
	return &model.ProductionRun{
		RunID:                 1,
		ProductionBatchNumber: "B-001",
		TotalDowntimeMinutes:  downtime,
		Report: &model.ProductionReport{
			OEE:     null.FloatFrom(oee),
			Quality: null.FloatFrom(quality),
		},
	}
}

func TestRunAlertsThresholds(t *testing.T) {
	t.Run("HealthyRun", func(t *testing.T) {
		assert.Empty(t, RunAlerts(runWithReport(85, 99, 10)))
	})

	t.Run("NoReport", func(t *testing.T) {
		assert.Empty(t, RunAlerts(&model.ProductionRun{RunID: 1}))
	})

	t.Run("LowOEE", func(t *testing.T) {
		alerts := RunAlerts(runWithReport(55, 99, 10))
		assert.Len(t, alerts, 1)
		assert.Equal(t, model.AlertTypeLowOEE, alerts[0].Type)
		assert.Equal(t, model.AlertSeverityMedium, alerts[0].Severity)

		alerts = RunAlerts(runWithReport(35, 99, 10))
		assert.Equal(t, model.AlertSeverityHigh, alerts[0].Severity)
		assert.Len(t, alerts, 1)
	})

	t.Run("HighDowntime", func(t *testing.T) {
		alerts := RunAlerts(runWithReport(85, 99, 90))
		assert.Len(t, alerts, 1)
		assert.Equal(t, model.AlertTypeHighDowntime, alerts[0].Type)
		assert.Equal(t, model.AlertSeverityMedium, alerts[0].Severity)

		alerts = RunAlerts(runWithReport(85, 99, 121))
		assert.Equal(t, model.AlertSeverityHigh, alerts[0].Severity)
	})

	t.Run("LowQuality", func(t *testing.T) {
		alerts := RunAlerts(runWithReport(85, 94, 10))
		assert.Len(t, alerts, 1)
		assert.Equal(t, model.AlertTypeLowQuality, alerts[0].Type)
		assert.Equal(t, model.AlertSeverityMedium, alerts[0].Severity)

		alerts = RunAlerts(runWithReport(85, 89.5, 10))
		assert.Equal(t, model.AlertSeverityHigh, alerts[0].Severity)
	})

	t.Run("AllThreeAtOnce", func(t *testing.T) {
		alerts := RunAlerts(runWithReport(30, 80, 200))
		assert.Len(t, alerts, 3)
		for _, a := range alerts {
			assert.Equal(t, model.AlertSeverityHigh, a.Severity)
			assert.Equal(t, "B-001", a.BatchNumber)
		}
	})
}

func TestOEEGrade(t *testing.T) {
	grade := func(v float64) string {
		r := &model.ProductionReport{OEE: null.FloatFrom(v)}
		return r.OEEGrade()
	}
	assert.Equal(t, "World Class", grade(85))
	assert.Equal(t, "Good", grade(70))
	assert.Equal(t, "Fair", grade(50))
	assert.Equal(t, "Poor", grade(49.99))
	assert.Equal(t, "No Data", (&model.ProductionReport{}).OEEGrade())
}
