package model

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	OrderStatusPending    = "Pending"
	OrderStatusInProgress = "In Progress"
	OrderStatusCompleted  = "Completed"
	OrderStatusCancelled  = "Cancelled"
)

type ManufacturingOrder struct {
	bun.BaseModel `bun:"manufacturing_orders,alias:mo"`

	OrderID       int       `bun:"order_id,pk,autoincrement" json:"id"`
	OrderNumber   string    `bun:",unique" json:"orderNumber"`
	OrderDate     time.Time `bun:"order_date,type:date" json:"orderDate"`
	ProductID     int       `json:"productId"`
	PackageSizeID int       `json:"packageSizeId"`
	// Quantity of the product to be manufactured, in packs.
	Quantity  int        `json:"quantity"`
	Status    string     `json:"status"`
	CreatedAt *time.Time `bun:",nullzero,default:current_timestamp" json:"createdAt"`
	UpdatedAt *time.Time `bun:",nullzero,default:current_timestamp" json:"updatedAt"`
}
