package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock statuses.
const (
	StockIn  = "In Stock"
	StockLow = "Low Stock"
	StockOut = "Out of Stock"
)

// DeriveStatus classifies a stock level. Quantities at or below zero are out of stock.
func DeriveStatus(quantity, minStockLevel int) string {
	switch {
	case quantity <= 0:
		return StockOut
	case quantity <= minStockLevel:
		return StockLow
	default:
		return StockIn
	}
}

// InventoryItem is a quantity-tracked stock line.
type InventoryItem struct {
	ID            string          `json:"id"`
	ItemCode      string          `json:"itemCode"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Quantity      int             `json:"quantity"`
	Unit          string          `json:"unit"`
	Location      string          `json:"location"`
	MinStockLevel int             `json:"minStockLevel"`
	MaxStockLevel int             `json:"maxStockLevel"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Supplier      string          `json:"supplier"`
	Status        string          `json:"status"`
	CreatedBy     string          `json:"createdBy"`
	UpdatedBy     string          `json:"updatedBy,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	History       []HistoryEntry  `json:"history"`
}

// IsLowStock reports 0 < quantity <= minStockLevel.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity > 0 && i.Quantity <= i.MinStockLevel
}

// IsOutOfStock reports quantity == 0.
func (i *InventoryItem) IsOutOfStock() bool {
	return i.Quantity == 0
}

// Value returns quantity × unit price.
func (i *InventoryItem) Value() decimal.Decimal {
	return LineTotal(i.Quantity, i.UnitPrice)
}

// NewInventoryItem holds the caller-supplied fields of an inventory item.
type NewInventoryItem struct {
	Description   string          `json:"description" validate:"required"`
	Category      string          `json:"category"`
	Quantity      int             `json:"quantity" validate:"gte=0"`
	Unit          string          `json:"unit"`
	Location      string          `json:"location"`
	MinStockLevel int             `json:"minStockLevel" validate:"gte=0"`
	MaxStockLevel int             `json:"maxStockLevel" validate:"gte=0"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Supplier      string          `json:"supplier"`
	CreatedBy     string          `json:"createdBy"`
}

// InventoryItemPatch is a partial update; nil fields are left unchanged.
// Status has no patch field: it always follows quantity.
type InventoryItemPatch struct {
	Description   *string          `json:"description,omitempty"`
	Category      *string          `json:"category,omitempty"`
	Quantity      *int             `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Unit          *string          `json:"unit,omitempty"`
	Location      *string          `json:"location,omitempty"`
	MinStockLevel *int             `json:"minStockLevel,omitempty" validate:"omitempty,gte=0"`
	MaxStockLevel *int             `json:"maxStockLevel,omitempty" validate:"omitempty,gte=0"`
	UnitPrice     *decimal.Decimal `json:"unitPrice,omitempty"`
	Supplier      *string          `json:"supplier,omitempty"`
	UpdatedBy     string           `json:"updatedBy,omitempty"`
}

// Apply merges the patch over item and re-derives its status.
func (p InventoryItemPatch) Apply(item *InventoryItem) {
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.Unit != nil {
		item.Unit = *p.Unit
	}
	if p.Location != nil {
		item.Location = *p.Location
	}
	if p.MinStockLevel != nil {
		item.MinStockLevel = *p.MinStockLevel
	}
	if p.MaxStockLevel != nil {
		item.MaxStockLevel = *p.MaxStockLevel
	}
	if p.UnitPrice != nil {
		item.UnitPrice = *p.UnitPrice
	}
	if p.Supplier != nil {
		item.Supplier = *p.Supplier
	}
	if p.UpdatedBy != "" {
		item.UpdatedBy = p.UpdatedBy
	}
	item.Status = DeriveStatus(item.Quantity, item.MinStockLevel)
}
