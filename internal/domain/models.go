package domain

import (
	"errors"
	"time"
)

// ErrNotFound is returned by every store when a row does not exist or is not
// owned by the caller. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("not found")

type MaterialCategory string

const (
	CategoryCanvas  MaterialCategory = "canvas"
	CategorySticker MaterialCategory = "sticker"
	CategoryPaper   MaterialCategory = "paper"
	CategoryVinyl   MaterialCategory = "vinyl"
	CategoryFabric  MaterialCategory = "fabric"
	CategoryOther   MaterialCategory = "other"
)

func (c MaterialCategory) Valid() bool {
	switch c {
	case CategoryCanvas, CategorySticker, CategoryPaper, CategoryVinyl, CategoryFabric, CategoryOther:
		return true
	}
	return false
}

type Material struct {
	ID          string           `json:"id"`
	OwnerID     string           `json:"ownerId"`
	Name        string           `json:"name"`
	Category    MaterialCategory `json:"category"`
	CostPerUnit float64          `json:"costPerUnit"` // per square meter
	Supplier    string           `json:"supplier"`
	Description string           `json:"description,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	DeletedAt   *time.Time       `json:"deletedAt,omitempty"`
}

type Ink struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"ownerId"`
	Name        string     `json:"name"`
	Color       string     `json:"color"`
	CostPerML   float64    `json:"costPerMl"`
	Supplier    string     `json:"supplier"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

// CostLine is an ad-hoc extra cost attached to a service (finishing, delivery, ...).
type CostLine struct {
	Description string  `json:"description"`
	Value       float64 `json:"value"`
}

// Snapshot captures a catalog item as it was when a service was recorded.
// Later edits to the catalog never change it.
type Snapshot struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Cost     float64 `json:"cost"`
}

// Service is one recorded print job with its full cost breakdown.
// TotalCost, Profit and Margin are derived on the write path and are never
// accepted from a caller.
type Service struct {
	ID         string     `json:"id"`
	OwnerID    string     `json:"ownerId"`
	Name       string     `json:"name"`
	Material   Snapshot   `json:"material"`
	Ink        Snapshot   `json:"ink"`
	OtherCosts []CostLine `json:"otherCosts,omitempty"`
	TotalCost  float64    `json:"totalCost"`
	SalePrice  float64    `json:"salePrice"`
	Profit     float64    `json:"profit"`
	Margin     float64    `json:"margin"`
	CreatedAt  time.Time  `json:"createdAt"`
	DeletedAt  *time.Time `json:"deletedAt,omitempty"`
}
