package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/guregu/null.v3"

	"github.com/sevenkilo/tracker-backend/internal/model"
	"github.com/sevenkilo/tracker-backend/internal/pkg/apperr"
	"github.com/sevenkilo/tracker-backend/internal/repo"
)

var ErrRunNotCompleted = errors.New("production run is not completed")

type Report struct {
	RunRepo     *repo.ProductionRun
	ReportRepo  *repo.ProductionReport
	MachineRepo *repo.Machine
}

func NewReport(runRepo *repo.ProductionRun, reportRepo *repo.ProductionReport, machineRepo *repo.Machine) *Report {
	return &Report{
		RunRepo:     runRepo,
		ReportRepo:  reportRepo,
		MachineRepo: machineRepo,
	}
}

// Calculate derives all metrics for a loaded run. Metrics whose inputs are
// missing (no packaging record, no active machine) stay null rather than
// reading as a genuine zero. The run must carry its Shift, Product and
// PackageSize relations.
func (s *Report) Calculate(ctx context.Context, run *model.ProductionRun) (*model.ProductionReport, error) {
	if !run.IsCompleted {
		return nil, ErrRunNotCompleted
	}

	report := &model.ProductionReport{RunID: run.RunID}

	availability := Availability(run.PlannedProductionTimeMinutes(), run.TotalDowntimeMinutes)
	report.Availability = null.FloatFrom(availability)

	performance := 0.0
	machine, err := s.MachineRepo.GetMainMachineByLine(ctx, run.LineID)
	switch {
	case err == nil:
		performance = Performance(run.GoodProductsPack, machine.RatedOutput, run.ProductionDurationMinutes())
		report.Performance = null.FloatFrom(performance)
	case errors.Is(err, apperr.ErrNotFound):
		// A line without an active machine has no performance figure.
	default:
		return nil, errors.Wrapf(err, "failed to look up main machine for line %d", run.LineID)
	}

	quality := 0.0
	if run.Packaging != nil {
		quality = Quality(run.GoodProductsPack, run.Packaging.QtyProductReject, run.Packaging.QtyBottleReject)
		report.Quality = null.FloatFrom(quality)

		report.PreformYieldPercentage = null.FloatFrom(
			PreformYield(run.Packaging.QtyPreformUsed, run.Packaging.QtyPreformReject))
		report.BottleRejectPercentage = null.FloatFrom(
			BottleRejectPercent(run.GoodProductsPack, run.Packaging.QtyBottleReject))
	}

	report.OEE = null.FloatFrom(OEE(availability, performance, quality))

	if run.Product != nil && run.PackageSize != nil {
		report.SyrupYieldPercentage = null.FloatFrom(
			SyrupYield(run.FinalSyrupVolume, run.GoodProductsPack, run.PackageSize.VolumeML, run.Product.StandardSyrupRatio))
	}

	if run.Utility != nil && run.Utility.KgCO2 > 0 {
		report.CO2UtilizationPercent = null.FloatFrom(
			CO2Utilization(run.GoodProductsPack, run.Utility.KgCO2))
	}

	return report, nil
}

// UpdateCalculations recalculates and persists the report for one run.
func (s *Report) UpdateCalculations(ctx context.Context, runID int) (*model.ProductionReport, error) {
	run, err := s.RunRepo.GetRunByID(ctx, runID)
	if err != nil {
		return nil, err
	}
	report, err := s.Calculate(ctx, run)
	if err != nil {
		return nil, err
	}
	if err := s.ReportRepo.UpsertReport(ctx, report); err != nil {
		return nil, errors.Wrapf(err, "failed to persist report for run %d", runID)
	}
	return report, nil
}

// RecalculateStale recomputes reports for completed runs that have no report
// or whose run changed after the last calculation. Returns the number of
// reports written. separation throttles DB pressure between runs.
func (s *Report) RecalculateStale(ctx context.Context, separation time.Duration) (int, error) {
	runs, err := s.RunRepo.GetCompletedRunsMissingReports(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, run := range runs {
		report, err := s.Calculate(ctx, run)
		if err != nil {
			log.Error().Err(err).Int("runId", run.RunID).Msg("failed to calculate report")
			continue
		}
		if err := s.ReportRepo.UpsertReport(ctx, report); err != nil {
			log.Error().Err(err).Int("runId", run.RunID).Msg("failed to persist report")
			continue
		}
		count++

		select {
		case <-ctx.Done():
			return count, ctx.Err()
		case <-time.After(separation):
		}
	}
	return count, nil
}

// RefreshRange recalculates reports for every completed run in a date range.
// When force is false, runs with an up-to-date report are skipped.
func (s *Report) RefreshRange(ctx context.Context, start, end time.Time, force bool) (int, error) {
	runs, err := s.RunRepo.GetRunsByDateRange(ctx, start, end, 0)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, run := range runs {
		if !run.IsCompleted {
			continue
		}
		if !force && run.Report != nil && run.Report.CalculatedAt != nil &&
			run.UpdatedAt != nil && !run.Report.CalculatedAt.Before(*run.UpdatedAt) {
			continue
		}
		if _, err := s.UpdateCalculations(ctx, run.RunID); err != nil {
			log.Error().Err(err).Int("runId", run.RunID).Msg("failed to refresh report")
			continue
		}
		count++
	}
	return count, nil
}
