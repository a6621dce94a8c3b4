package v1

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"github.com/sevenkilo/tracker-backend/internal/model"
	"github.com/sevenkilo/tracker-backend/internal/pkg/apperr"
	"github.com/sevenkilo/tracker-backend/internal/repo"
	"github.com/sevenkilo/tracker-backend/internal/server/svr"
	"github.com/sevenkilo/tracker-backend/internal/service"
	"github.com/sevenkilo/tracker-backend/internal/util/rekuest"
)

type RunsController struct {
	fx.In

	RunRepo       *repo.ProductionRun
	EventRepo     *repo.StopEvent
	OrderRepo     *repo.ManufacturingOrder
	ReportService *service.Report
}

func RegisterRuns(v1 *svr.V1, c RunsController) {
	runs := v1.Group("/runs")
	runs.Get("/", c.ListActive)
	runs.Post("/", c.Create)
	runs.Get("/:id", c.GetByID)
	runs.Post("/:id/complete", c.Complete)
	runs.Get("/:id/stop-events", c.ListStopEvents)
	runs.Post("/:id/stop-events", c.AddStopEvent)
}

func (c *RunsController) ListActive(ctx *fiber.Ctx) error {
	runs, err := c.RunRepo.GetActiveRuns(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(runs)
}

func (c *RunsController) GetByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return apperr.ErrInvalidReq.Msg("invalid run id")
	}
	run, err := c.RunRepo.GetRunByID(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(run)
}

type CreateRunRequest struct {
	OrderID               int     `json:"orderId"`
	ProductionBatchNumber string  `json:"productionBatchNumber" validate:"required,max=100"`
	Date                  string  `json:"date" validate:"required,datetime=2006-01-02"`
	LineID                int     `json:"lineId" validate:"required,gt=0"`
	ProductID             int     `json:"productId" validate:"required,gt=0"`
	PackageSizeID         int     `json:"packageSizeId" validate:"required,gt=0"`
	ShiftID               int     `json:"shiftId" validate:"required,gt=0"`
	TeamLeaderName        string  `json:"teamLeaderName" validate:"required,max=100"`
	ProductionStart       string  `json:"productionStart" validate:"required"`
	FinalSyrupVolume      float64 `json:"finalSyrupVolume" validate:"gte=0"`
	MixingRatio           string  `json:"mixingRatio" validate:"max=50"`
	FillerOutput          float64 `json:"fillerOutput" validate:"gte=0"`
	GoodProductsPack      int     `json:"goodProductsPack" validate:"gte=0"`
}

func (c *RunsController) Create(ctx *fiber.Ctx) error {
	var request CreateRunRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	date, _ := time.Parse(dateLayout, request.Date)
	start, err := time.Parse(time.RFC3339, request.ProductionStart)
	if err != nil {
		return apperr.ErrInvalidReq.Msg("invalid productionStart: expected RFC3339, got %q", request.ProductionStart)
	}

	rctx := ctx.UserContext()
	if request.OrderID > 0 {
		order, err := c.OrderRepo.GetOrderByID(rctx, request.OrderID)
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.ErrInvalidReq.Msg("unknown orderId %d", request.OrderID)
		} else if err != nil {
			return err
		}
		if order.Status == model.OrderStatusCompleted || order.Status == model.OrderStatusCancelled {
			return apperr.ErrInvalidReq.Msg("order %s is %s and accepts no further runs", order.OrderNumber, order.Status)
		}
		// First run against a pending order moves it to in progress.
		if order.Status == model.OrderStatusPending {
			if err := c.OrderRepo.UpdateStatus(rctx, order.OrderID, model.OrderStatusInProgress); err != nil {
				return err
			}
		}
	}

	run := &model.ProductionRun{
		OrderID:               request.OrderID,
		ProductionBatchNumber: request.ProductionBatchNumber,
		Date:                  date,
		LineID:                request.LineID,
		ProductID:             request.ProductID,
		PackageSizeID:         request.PackageSizeID,
		ShiftID:               request.ShiftID,
		TeamLeaderName:        request.TeamLeaderName,
		ProductionStart:       start,
		FinalSyrupVolume:      request.FinalSyrupVolume,
		MixingRatio:           request.MixingRatio,
		FillerOutput:          request.FillerOutput,
		GoodProductsPack:      request.GoodProductsPack,
	}
	if err := c.RunRepo.CreateRun(rctx, run); err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(run)
}

type CompleteRunRequest struct {
	ProductionEnd string `json:"productionEnd" validate:"required"`
}

// Complete closes the run and immediately calculates its report.
func (c *RunsController) Complete(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return apperr.ErrInvalidReq.Msg("invalid run id")
	}

	var request CompleteRunRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}
	end, err := time.Parse(time.RFC3339, request.ProductionEnd)
	if err != nil {
		return apperr.ErrInvalidReq.Msg("invalid productionEnd: expected RFC3339, got %q", request.ProductionEnd)
	}

	rctx := ctx.UserContext()
	if err := c.RunRepo.CompleteRun(rctx, id, end); err != nil {
		return err
	}
	report, err := c.ReportService.UpdateCalculations(rctx, id)
	if err != nil {
		return err
	}
	return ctx.JSON(report)
}

func (c *RunsController) ListStopEvents(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return apperr.ErrInvalidReq.Msg("invalid run id")
	}
	events, err := c.EventRepo.GetEventsByRun(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(events)
}

type AddStopEventRequest struct {
	MachineID       int    `json:"machineId" validate:"required,gt=0"`
	CodeID          int    `json:"codeId" validate:"required,gt=0"`
	Reason          string `json:"reason" validate:"max=255"`
	DurationMinutes int    `json:"durationMinutes" validate:"required,gt=0"`
}

// AddStopEvent records downtime against the run; the run's downtime total is
// recomputed in the same transaction.
func (c *RunsController) AddStopEvent(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return apperr.ErrInvalidReq.Msg("invalid run id")
	}

	var request AddStopEventRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	rctx := ctx.UserContext()
	if _, err := c.RunRepo.GetRunByID(rctx, id); err != nil {
		return err
	}

	event := &model.StopEvent{
		RunID:           id,
		MachineID:       request.MachineID,
		CodeID:          request.CodeID,
		Reason:          request.Reason,
		DurationMinutes: request.DurationMinutes,
	}
	if err := c.EventRepo.CreateEvent(rctx, event); err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(event)
}
