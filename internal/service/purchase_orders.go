package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erazemk/wms/internal/model"
)

// PurchaseOrders manages purchase order records.
type PurchaseOrders struct {
	c *Collection[model.PurchaseOrder]
}

// NewPurchaseOrders creates the purchase order service.
func NewPurchaseOrders(d Deps) *PurchaseOrders {
	return &PurchaseOrders{c: NewCollection(d, Descriptor[model.PurchaseOrder]{
		Entity:  model.EntityPurchaseOrder,
		Prefix:  PrefixPurchaseOrder,
		History: func(po *model.PurchaseOrder) *[]model.HistoryEntry { return &po.History },
		Touch: func(po *model.PurchaseOrder, now time.Time, user string) {
			po.UpdatedAt = now
			po.UpdatedBy = user
		},
	})}
}

// Create stores a new order in Pending status. Line totals and the order
// total are computed from the lines.
func (s *PurchaseOrders) Create(ctx context.Context, in model.NewPurchaseOrder) *model.PurchaseOrder {
	prefix := YearPrefix("PO", s.c.Now())
	return s.c.Insert(ctx, prefix, func(id string, now time.Time) *model.PurchaseOrder {
		user := in.CreatedBy
		if user == "" {
			user = model.SystemUser
		}
		lines, total := orderLines(in.Items)
		return &model.PurchaseOrder{
			ID:              id,
			PONumber:        id,
			PRReference:     in.PRReference,
			Supplier:        in.Supplier,
			SupplierContact: in.SupplierContact,
			Date:            now,
			DeliveryDate:    in.DeliveryDate,
			Items:           lines,
			TotalAmount:     total,
			Status:          model.POStatusPending,
			PaymentTerms:    in.PaymentTerms,
			Notes:           in.Notes,
			CreatedBy:       in.CreatedBy,
			CreatedAt:       now,
			UpdatedAt:       now,
			History: []model.HistoryEntry{{
				Action: model.ActionCreated,
				Date:   now,
				User:   user,
				Status: model.POStatusPending,
			}},
		}
	})
}

func orderLines(lines []model.OrderLine) ([]model.OrderLine, decimal.Decimal) {
	out := make([]model.OrderLine, len(lines))
	total := decimal.Zero
	for i, l := range lines {
		l.Total = model.LineTotal(l.Quantity, l.UnitPrice)
		total = total.Add(l.Total)
		out[i] = l
	}
	return out, total
}

// All returns every purchase order.
func (s *PurchaseOrders) All(ctx context.Context) []model.PurchaseOrder {
	return s.c.All(ctx)
}

// LoadAll is All that also reports whether the listing succeeded.
func (s *PurchaseOrders) LoadAll(ctx context.Context) ([]model.PurchaseOrder, bool) {
	return s.c.LoadAll(ctx)
}

// Get returns the order with id, or nil.
func (s *PurchaseOrders) Get(ctx context.Context, id string) *model.PurchaseOrder {
	return s.c.Get(ctx, id)
}

// Update merges patch over the stored order. Totals are taken as given.
func (s *PurchaseOrders) Update(ctx context.Context, id string, patch model.PurchaseOrderPatch) *model.PurchaseOrder {
	return s.c.Mutate(ctx, "update", id, func(po *model.PurchaseOrder, _ time.Time) (model.HistoryEntry, bool) {
		patch.Apply(po)
		entry := model.HistoryEntry{
			Action: model.ActionUpdated,
			User:   patch.UpdatedBy,
			Status: po.Status,
		}
		if patch.Notes != nil {
			entry.Notes = *patch.Notes
		}
		return entry, true
	})
}

// UpdateStatus sets the order's status.
func (s *PurchaseOrders) UpdateStatus(ctx context.Context, id, status, user string) *model.PurchaseOrder {
	return s.Update(ctx, id, model.PurchaseOrderPatch{Status: &status, UpdatedBy: user})
}

// Delete removes the order with id.
func (s *PurchaseOrders) Delete(ctx context.Context, id string) bool {
	return s.c.Delete(ctx, id)
}

// ByStatus returns the orders in status.
func (s *PurchaseOrders) ByStatus(ctx context.Context, status string) []model.PurchaseOrder {
	return s.c.Filter(ctx, func(po *model.PurchaseOrder) bool { return po.Status == status })
}

// BySupplier returns the orders whose supplier contains supplier, ignoring case.
func (s *PurchaseOrders) BySupplier(ctx context.Context, supplier string) []model.PurchaseOrder {
	needle := strings.ToLower(supplier)
	return s.c.Filter(ctx, func(po *model.PurchaseOrder) bool {
		return strings.Contains(strings.ToLower(po.Supplier), needle)
	})
}

// ByPRReference returns the orders raised from purchase request prNumber.
func (s *PurchaseOrders) ByPRReference(ctx context.Context, prNumber string) []model.PurchaseOrder {
	return s.c.Filter(ctx, func(po *model.PurchaseOrder) bool { return po.PRReference == prNumber })
}
