package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/erazemk/wms/internal/model"
)

// Inventory manages quantity-tracked stock items.
type Inventory struct {
	c *Collection[model.InventoryItem]
}

// NewInventory creates the inventory service.
func NewInventory(d Deps) *Inventory {
	return &Inventory{c: NewCollection(d, Descriptor[model.InventoryItem]{
		Entity:  model.EntityInventory,
		Prefix:  PrefixInventory,
		History: func(i *model.InventoryItem) *[]model.HistoryEntry { return &i.History },
		Touch: func(i *model.InventoryItem, now time.Time, user string) {
			i.UpdatedAt = now
			i.UpdatedBy = user
		},
	})}
}

// Create stores a new item. Its code is derived from the category and its
// status from the starting quantity.
func (s *Inventory) Create(ctx context.Context, in model.NewInventoryItem) *model.InventoryItem {
	if in.Quantity < 0 {
		slog.Error("refusing to create item with negative quantity", "quantity", in.Quantity)
		return nil
	}
	return s.c.Insert(ctx, CategoryCode(in.Category), func(id string, now time.Time) *model.InventoryItem {
		user := in.CreatedBy
		if user == "" {
			user = model.SystemUser
		}
		return &model.InventoryItem{
			ID:            id,
			ItemCode:      id,
			Description:   in.Description,
			Category:      in.Category,
			Quantity:      in.Quantity,
			Unit:          in.Unit,
			Location:      in.Location,
			MinStockLevel: in.MinStockLevel,
			MaxStockLevel: in.MaxStockLevel,
			UnitPrice:     in.UnitPrice,
			Supplier:      in.Supplier,
			Status:        model.DeriveStatus(in.Quantity, in.MinStockLevel),
			CreatedBy:     in.CreatedBy,
			CreatedAt:     now,
			UpdatedAt:     now,
			History: []model.HistoryEntry{{
				Action:   model.ActionCreated,
				Date:     now,
				User:     user,
				Quantity: model.IntPtr(in.Quantity),
			}},
		}
	})
}

// All returns every inventory item.
func (s *Inventory) All(ctx context.Context) []model.InventoryItem {
	return s.c.All(ctx)
}

// LoadAll is All that also reports whether the listing succeeded.
func (s *Inventory) LoadAll(ctx context.Context) ([]model.InventoryItem, bool) {
	return s.c.LoadAll(ctx)
}

// Get returns the item with id, or nil.
func (s *Inventory) Get(ctx context.Context, id string) *model.InventoryItem {
	return s.c.Get(ctx, id)
}

// Update merges patch over the stored item and re-derives its status.
// A patch setting a negative quantity is refused.
func (s *Inventory) Update(ctx context.Context, id string, patch model.InventoryItemPatch) *model.InventoryItem {
	return s.c.Mutate(ctx, "update", id, func(item *model.InventoryItem, _ time.Time) (model.HistoryEntry, bool) {
		if patch.Quantity != nil && *patch.Quantity < 0 {
			slog.Error("refusing negative quantity", "id", id, "quantity", *patch.Quantity)
			return model.HistoryEntry{}, false
		}
		patch.Apply(item)
		return model.HistoryEntry{
			Action:   model.ActionUpdated,
			User:     patch.UpdatedBy,
			Status:   item.Status,
			Quantity: model.IntPtr(item.Quantity),
		}, true
	})
}

// AdjustQuantity adds delta to the item's quantity and records the movement
// under action (Receive, Issue, Transfer or Adjust). An adjustment that would
// take the quantity below zero is refused.
func (s *Inventory) AdjustQuantity(ctx context.Context, id string, delta int, action model.Action, user string) *model.InventoryItem {
	return s.c.Mutate(ctx, "adjust", id, func(item *model.InventoryItem, _ time.Time) (model.HistoryEntry, bool) {
		previous := item.Quantity
		next := previous + delta
		if next < 0 {
			slog.Warn("adjustment exceeds stock on hand", "id", id, "quantity", previous, "delta", delta)
			return model.HistoryEntry{}, false
		}
		item.Quantity = next
		item.Status = model.DeriveStatus(next, item.MinStockLevel)
		return model.HistoryEntry{
			Action:           action,
			User:             user,
			Status:           item.Status,
			Adjustment:       model.IntPtr(delta),
			PreviousQuantity: model.IntPtr(previous),
			NewQuantity:      model.IntPtr(next),
		}, true
	})
}

// Delete removes the item with id.
func (s *Inventory) Delete(ctx context.Context, id string) bool {
	return s.c.Delete(ctx, id)
}

// ByStatus returns the items in stock status.
func (s *Inventory) ByStatus(ctx context.Context, status string) []model.InventoryItem {
	return s.c.Filter(ctx, func(i *model.InventoryItem) bool { return i.Status == status })
}

// ByCategory returns the items in category.
func (s *Inventory) ByCategory(ctx context.Context, category string) []model.InventoryItem {
	return s.c.Filter(ctx, func(i *model.InventoryItem) bool { return i.Category == category })
}

// LowStock returns the items with 0 < quantity <= minStockLevel.
func (s *Inventory) LowStock(ctx context.Context) []model.InventoryItem {
	return s.c.Filter(ctx, (*model.InventoryItem).IsLowStock)
}

// OutOfStock returns the items with nothing on hand.
func (s *Inventory) OutOfStock(ctx context.Context) []model.InventoryItem {
	return s.c.Filter(ctx, (*model.InventoryItem).IsOutOfStock)
}
