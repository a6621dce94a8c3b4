package service

import (
	"context"
	"time"

	"github.com/sevenkilo/tracker-backend/internal/model"
	modelcache "github.com/sevenkilo/tracker-backend/internal/model/cache"
	"github.com/sevenkilo/tracker-backend/internal/repo"
)

// Catalog serves the slow-moving lookup tables behind singular caches.
type Catalog struct {
	LineRepo    *repo.ProductionLine
	ProductRepo *repo.Product
	ShiftRepo   *repo.Shift
	MachineRepo *repo.Machine
	OrderRepo   *repo.ManufacturingOrder
}

func NewCatalog(lineRepo *repo.ProductionLine, productRepo *repo.Product, shiftRepo *repo.Shift, machineRepo *repo.Machine, orderRepo *repo.ManufacturingOrder) *Catalog {
	return &Catalog{
		LineRepo:    lineRepo,
		ProductRepo: productRepo,
		ShiftRepo:   shiftRepo,
		MachineRepo: machineRepo,
		OrderRepo:   orderRepo,
	}
}

func (s *Catalog) GetLines(ctx context.Context) ([]*model.ProductionLine, error) {
	var lines []*model.ProductionLine
	_, err := modelcache.Lines.MutexGetSet(&lines, func() ([]*model.ProductionLine, error) {
		return s.LineRepo.GetActiveLines(ctx)
	}, 24*time.Hour)
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *Catalog) GetProducts(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	_, err := modelcache.Products.MutexGetSet(&products, func() ([]*model.Product, error) {
		return s.ProductRepo.GetProducts(ctx)
	}, 24*time.Hour)
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Catalog) GetShifts(ctx context.Context) ([]*model.Shift, error) {
	var shifts []*model.Shift
	_, err := modelcache.Shifts.MutexGetSet(&shifts, func() ([]*model.Shift, error) {
		return s.ShiftRepo.GetShifts(ctx)
	}, 24*time.Hour)
	if err != nil {
		return nil, err
	}
	return shifts, nil
}

// GetMachinesByLine bypasses the cache: machine lists are small and only the
// admin surface reads them.
func (s *Catalog) GetMachinesByLine(ctx context.Context, lineID int) ([]*model.Machine, error) {
	return s.MachineRepo.GetActiveMachinesByLine(ctx, lineID)
}

// GetOpenOrders bypasses the cache: order status changes as runs are created
// and a stale list would offer closed orders on the run entry form.
func (s *Catalog) GetOpenOrders(ctx context.Context) ([]*model.ManufacturingOrder, error) {
	return s.OrderRepo.GetOpenOrders(ctx)
}
