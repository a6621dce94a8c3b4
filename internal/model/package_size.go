package model

import (
	"github.com/uptrace/bun"
)

const (
	PackageTypePET = "PET"
	PackageTypeCan = "CAN"
)

type PackageSize struct {
	bun.BaseModel `bun:"package_sizes,alias:ps"`

	PackageSizeID int `bun:"package_size_id,pk,autoincrement" json:"id"`
	// Size is the display size, e.g. "500ml", "1L".
	Size        string `json:"size"`
	PackageType string `json:"packageType"`
	VolumeML    int    `bun:"volume_ml" json:"volumeMl"`
}
