package models

import "github.com/shopspring/decimal"

// CartLine pairs a catalog product with the quantity reserved for it. A line
// only exists while its quantity is positive; dropping to zero removes the
// line instead.
type CartLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type SnapshotItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Shipping  decimal.Decimal `json:"shipping"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Snapshot is a derived, read-only view of the cart. It is recomputed on
// demand and never persisted as source of truth.
type Snapshot struct {
	Items []SnapshotItem  `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func (s *Snapshot) Empty() bool {
	return len(s.Items) == 0
}

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

type UpdateQuantityRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"min=0"`
}

type ExportRequest struct {
	Format   string `json:"format"   validate:"required,oneof=json csv xlsx pdf"`
	Filename string `json:"filename" validate:"omitempty"`
}
