package model

// Snapshot is a point-in-time copy of all four entity collections.
type Snapshot struct {
	PurchaseRequests []PurchaseRequest `json:"purchaseRequests"`
	PurchaseOrders   []PurchaseOrder   `json:"purchaseOrders"`
	Inventory        []InventoryItem   `json:"inventory"`
	Assets           []Asset           `json:"assets"`
}

// Activities flattens every history entry in the snapshot into activity rows,
// in collection order.
func (s *Snapshot) Activities() []Activity {
	var out []Activity
	for _, pr := range s.PurchaseRequests {
		out = appendActivities(out, EntityPurchaseRequest, pr.ID, pr.History)
	}
	for _, po := range s.PurchaseOrders {
		out = appendActivities(out, EntityPurchaseOrder, po.ID, po.History)
	}
	for _, item := range s.Inventory {
		out = appendActivities(out, EntityInventory, item.ID, item.History)
	}
	for _, a := range s.Assets {
		out = appendActivities(out, EntityAsset, a.ID, a.History)
	}
	return out
}

func appendActivities(out []Activity, entity, id string, history []HistoryEntry) []Activity {
	for _, e := range history {
		out = append(out, Activity{Entity: entity, ID: id, Entry: e})
	}
	return out
}
