package model

import "slices"

// Clone returns a copy of pr that shares no slices or pointers with it.
func (pr PurchaseRequest) Clone() PurchaseRequest {
	pr.Items = slices.Clone(pr.Items)
	pr.History = cloneHistory(pr.History)
	return pr
}

// Clone returns a copy of po that shares no slices or pointers with it.
func (po PurchaseOrder) Clone() PurchaseOrder {
	po.Items = slices.Clone(po.Items)
	po.DeliveryDate = clonePtr(po.DeliveryDate)
	po.History = cloneHistory(po.History)
	return po
}

// Clone returns a copy of item that shares no slices or pointers with it.
func (item InventoryItem) Clone() InventoryItem {
	item.History = cloneHistory(item.History)
	return item
}

// Clone returns a copy of a that shares no slices or pointers with it.
func (a Asset) Clone() Asset {
	a.AssignedTo = clonePtr(a.AssignedTo)
	a.History = cloneHistory(a.History)
	return a
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() Snapshot {
	return Snapshot{
		PurchaseRequests: CloneAll(s.PurchaseRequests),
		PurchaseOrders:   CloneAll(s.PurchaseOrders),
		Inventory:        CloneAll(s.Inventory),
		Assets:           CloneAll(s.Assets),
	}
}

// CloneAll deep-copies every record in list. A nil list stays nil.
func CloneAll[T interface{ Clone() T }](list []T) []T {
	if list == nil {
		return nil
	}
	out := make([]T, len(list))
	for i := range list {
		out[i] = list[i].Clone()
	}
	return out
}

func cloneHistory(h []HistoryEntry) []HistoryEntry {
	if h == nil {
		return nil
	}
	out := make([]HistoryEntry, len(h))
	for i, e := range h {
		e.Quantity = clonePtr(e.Quantity)
		e.Adjustment = clonePtr(e.Adjustment)
		e.PreviousQuantity = clonePtr(e.PreviousQuantity)
		e.NewQuantity = clonePtr(e.NewQuantity)
		out[i] = e
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
