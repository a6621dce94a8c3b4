package service

import (
	"context"
	"time"

	"github.com/sevenkilo/tracker-backend/internal/model"
	"github.com/sevenkilo/tracker-backend/internal/repo"
)

type Utilization struct {
	RunRepo     *repo.ProductionRun
	MachineRepo *repo.Machine
}

func NewUtilization(runRepo *repo.ProductionRun, machineRepo *repo.Machine) *Utilization {
	return &Utilization{
		RunRepo:     runRepo,
		MachineRepo: machineRepo,
	}
}

// GetMachineUtilization reports utilization of each active machine on a line
// over a date range. Runs are recorded against the line, not individual
// machines, so every machine on the line shares the line's planned time and
// downtime figures.
func (s *Utilization) GetMachineUtilization(ctx context.Context, start, end time.Time, lineID int) (map[string]model.MachineUtilization, error) {
	machines, err := s.MachineRepo.GetActiveMachinesByLine(ctx, lineID)
	if err != nil {
		return nil, err
	}

	planned, downtime, err := s.RunRepo.AggregatePlannedAndDowntime(ctx, start, end, lineID)
	if err != nil {
		return nil, err
	}

	utilizationPct := 0.0
	if planned > 0 {
		utilizationPct = round2((planned - float64(downtime)) / planned * 100)
	}

	result := make(map[string]model.MachineUtilization, len(machines))
	for _, machine := range machines {
		result[machine.MachineName] = model.MachineUtilization{
			MachineName:           machine.MachineName,
			UtilizationPercentage: utilizationPct,
			TotalPlannedTime:      planned,
			TotalDowntime:         downtime,
			ActualRuntime:         planned - float64(downtime),
			RatedOutput:           machine.RatedOutput,
		}
	}
	return result, nil
}
