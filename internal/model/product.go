package model

import (
	"github.com/uptrace/bun"
)

type Product struct {
	bun.BaseModel `bun:"products,alias:p"`

	ProductID   int    `bun:"product_id,pk,autoincrement" json:"id"`
	Name        string `json:"name"`
	ProductCode string `bun:",unique" json:"productCode"`
	// StandardSyrupRatio is used for syrup yield calculations.
	StandardSyrupRatio float64 `json:"standardSyrupRatio"`
}
