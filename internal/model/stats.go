package model

// Stats holds the dashboard counters.
type Stats struct {
	TotalInventoryItems int `json:"totalInventoryItems"`
	PendingPRs          int `json:"pendingPRs"`
	ActivePOs           int `json:"activePOs"`
	AssetsTagged        int `json:"assetsTagged"`
	LowStockItems       int `json:"lowStockItems"`
	OutOfStockItems     int `json:"outOfStockItems"`
}

// IsPendingPR reports whether a purchase request status counts as pending.
func IsPendingPR(status string) bool {
	return status == PRStatusSubmitted || status == PRStatusForCanvass
}

// IsActivePO reports whether a purchase order status counts as active.
func IsActivePO(status string) bool {
	return status == POStatusPending || status == POStatusApproved
}
