package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/sevenkilo/tracker-backend/internal/migrations"
	"github.com/sevenkilo/tracker-backend/internal/model"
	"github.com/sevenkilo/tracker-backend/internal/repo"
)

func migratedDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb, err := sql.Open(sqliteshim.ShimName, "file:"+filepath.Join(t.TempDir(), "report.sqlite3"))
	require.NoError(t, err)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.Run(context.Background(), db))
	return db
}

func completedRun(t *testing.T) *model.ProductionRun {
	t.Helper()
	start := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)
	return &model.ProductionRun{
		RunID:                 1,
		ProductionBatchNumber: "B-100326-1",
		LineID:                1,
		ProductionStart:       start,
		ProductionEnd:         &end,
		TotalDowntimeMinutes:  48,
		GoodProductsPack:      1000,
		FinalSyrupVolume:      98,
		IsCompleted:           true,
		Shift:                 &model.Shift{DurationHours: 8},
		Product:               &model.Product{StandardSyrupRatio: 0.2},
		PackageSize:           &model.PackageSize{VolumeML: 500},
		Packaging: &model.PackagingMaterial{
			QtyPreformUsed:   12100,
			QtyPreformReject: 100,
			QtyProductReject: 30,
			QtyBottleReject:  20,
		},
		Utility: &model.Utility{KgCO2: 125},
	}
}

func TestCalculateFullRun(t *testing.T) {
	db := migratedDB(t)
	ctx := context.Background()

	_, err := db.NewInsert().Model(&model.Machine{
		LineID:      1,
		MachineName: "Filler 1",
		MachineCode: "FIL-01",
		IsActive:    true,
		RatedOutput: 3000,
	}).Exec(ctx)
	require.NoError(t, err)

	svc := NewReport(repo.NewProductionRun(db), repo.NewProductionReport(db), repo.NewMachine(db))
	report, err := svc.Calculate(ctx, completedRun(t))
	require.NoError(t, err)

	// 480 planned minutes, 48 down: 90%.
	assert.Equal(t, 90.0, report.Availability.Float64)
	// 1000 packs x 12 units over 8h at 3000/h: 50%.
	assert.Equal(t, 50.0, report.Performance.Float64)
	// 1000 / 1050 good share.
	assert.Equal(t, 95.24, report.Quality.Float64)
	assert.Equal(t, OEE(90, 50, 95.24), report.OEE.Float64)

	assert.Equal(t, 98.0, report.SyrupYieldPercentage.Float64)
	assert.Equal(t, 99.18, report.PreformYieldPercentage.Float64)
	assert.Equal(t, 1.96, report.BottleRejectPercentage.Float64)
	assert.Equal(t, 80.0, report.CO2UtilizationPercent.Float64)
}

func TestCalculateMissingInputsStayNull(t *testing.T) {
	db := migratedDB(t)
	ctx := context.Background()

	// No machine on the line, no packaging, no utility record.
	run := completedRun(t)
	run.Packaging = nil
	run.Utility = nil
	run.Product = nil

	svc := NewReport(repo.NewProductionRun(db), repo.NewProductionReport(db), repo.NewMachine(db))
	report, err := svc.Calculate(ctx, run)
	require.NoError(t, err)

	assert.True(t, report.Availability.Valid)
	assert.False(t, report.Performance.Valid, "no active machine means no performance figure")
	assert.False(t, report.Quality.Valid, "no packaging record means no quality figure")
	assert.False(t, report.SyrupYieldPercentage.Valid)
	assert.False(t, report.PreformYieldPercentage.Valid)
	assert.False(t, report.CO2UtilizationPercent.Valid)

	// Missing factors count as zero, so OEE collapses to zero.
	assert.True(t, report.OEE.Valid)
	assert.Zero(t, report.OEE.Float64)
}

func TestCalculateMachineLookupErrorPropagates(t *testing.T) {
	db := migratedDB(t)
	svc := NewReport(repo.NewProductionRun(db), repo.NewProductionReport(db), repo.NewMachine(db))

	// A failing database is not "line has no machine": the error must
	// surface instead of producing a report with a genuine-looking zero OEE.
	require.NoError(t, db.Close())

	report, err := svc.Calculate(context.Background(), completedRun(t))
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCalculateRejectsOpenRun(t *testing.T) {
	db := migratedDB(t)

	run := completedRun(t)
	run.IsCompleted = false

	svc := NewReport(repo.NewProductionRun(db), repo.NewProductionReport(db), repo.NewMachine(db))
	_, err := svc.Calculate(context.Background(), run)
	assert.ErrorIs(t, err, ErrRunNotCompleted)
}

func TestUpdateCalculationsPersists(t *testing.T) {
	db := migratedDB(t)
	ctx := context.Background()

	require.NoError(t, migrations.Seed(ctx, db))

	_, err := db.NewInsert().Model(&model.ProductionLine{Name: "Line 1", IsActive: true}).Exec(ctx)
	require.NoError(t, err)
	_, err = db.NewInsert().Model(&model.Product{Name: "Cola", ProductCode: "COLA-500", StandardSyrupRatio: 0.2}).Exec(ctx)
	require.NoError(t, err)
	_, err = db.NewInsert().Model(&model.PackageSize{VolumeML: 500}).Exec(ctx)
	require.NoError(t, err)

	run := completedRun(t)
	run.LineID = 1
	run.ProductID = 1
	run.PackageSizeID = 1
	run.ShiftID = 1
	run.Date = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	_, err = db.NewInsert().Model(run).Exec(ctx)
	require.NoError(t, err)

	reportRepo := repo.NewProductionReport(db)
	svc := NewReport(repo.NewProductionRun(db), reportRepo, repo.NewMachine(db))

	report, err := svc.UpdateCalculations(ctx, run.RunID)
	require.NoError(t, err)
	assert.True(t, report.Availability.Valid)

	stored, err := reportRepo.GetReportByRun(ctx, run.RunID)
	require.NoError(t, err)
	assert.Equal(t, report.Availability.Float64, stored.Availability.Float64)

	// Upsert: recalculating must update in place, not duplicate.
	_, err = svc.UpdateCalculations(ctx, run.RunID)
	require.NoError(t, err)
	count, err := db.NewSelect().Model((*model.ProductionReport)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
