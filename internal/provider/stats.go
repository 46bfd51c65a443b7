package provider

import (
	"sort"

	"github.com/erazemk/wms/internal/model"
)

// DefaultActivityLimit is the number of rows RecentActivity returns when asked for none.
const DefaultActivityLimit = 10

// ComputeStats derives the dashboard counters from snap. It keeps no state.
func ComputeStats(snap *model.Snapshot) model.Stats {
	var s model.Stats
	s.TotalInventoryItems = len(snap.Inventory)
	for _, pr := range snap.PurchaseRequests {
		if model.IsPendingPR(pr.Status) {
			s.PendingPRs++
		}
	}
	for _, po := range snap.PurchaseOrders {
		if model.IsActivePO(po.Status) {
			s.ActivePOs++
		}
	}
	for _, a := range snap.Assets {
		if a.IsTagged {
			s.AssetsTagged++
		}
	}
	for i := range snap.Inventory {
		item := &snap.Inventory[i]
		if item.IsLowStock() {
			s.LowStockItems++
		}
		if item.IsOutOfStock() {
			s.OutOfStockItems++
		}
	}
	return s
}

// RecentActivity returns the newest limit history entries across snap.
func RecentActivity(snap *model.Snapshot, limit int) []model.Activity {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	rows := snap.Activities()
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Entry.Date.After(rows[j].Entry.Date)
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	if rows == nil {
		rows = []model.Activity{}
	}
	return rows
}
