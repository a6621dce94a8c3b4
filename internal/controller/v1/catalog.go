package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/sevenkilo/tracker-backend/internal/pkg/apperr"
	"github.com/sevenkilo/tracker-backend/internal/server/svr"
	"github.com/sevenkilo/tracker-backend/internal/service"
)

type CatalogController struct {
	fx.In

	CatalogService *service.Catalog
}

func RegisterCatalog(v1 *svr.V1, c CatalogController) {
	v1.Get("/lines", c.Lines)
	v1.Get("/products", c.Products)
	v1.Get("/shifts", c.Shifts)
	v1.Get("/machines", c.Machines)
	v1.Get("/orders", c.OpenOrders)
}

func (c *CatalogController) Lines(ctx *fiber.Ctx) error {
	lines, err := c.CatalogService.GetLines(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(lines)
}

func (c *CatalogController) Products(ctx *fiber.Ctx) error {
	products, err := c.CatalogService.GetProducts(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(products)
}

func (c *CatalogController) Shifts(ctx *fiber.Ctx) error {
	shifts, err := c.CatalogService.GetShifts(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(shifts)
}

// OpenOrders lists the manufacturing orders a new run may be recorded
// against (pending or in progress).
func (c *CatalogController) OpenOrders(ctx *fiber.Ctx) error {
	orders, err := c.CatalogService.GetOpenOrders(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(orders)
}

func (c *CatalogController) Machines(ctx *fiber.Ctx) error {
	lineID := ctx.QueryInt("line_id", 0)
	if lineID <= 0 {
		return apperr.ErrInvalidReq.Msg("line_id is required")
	}
	machines, err := c.CatalogService.GetMachinesByLine(ctx.UserContext(), lineID)
	if err != nil {
		return err
	}
	return ctx.JSON(machines)
}
