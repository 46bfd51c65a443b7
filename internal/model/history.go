package model

import "time"

// Action tags a history entry.
type Action string

// Lifecycle actions.
const (
	ActionCreated       Action = "Created"
	ActionUpdated       Action = "Updated"
	ActionAssigned      Action = "Assigned"
	ActionReturned      Action = "Returned"
	ActionPhotoAttached Action = "PhotoAttached"
)

// Inventory transition types recorded by quantity adjustments.
const (
	ActionReceive  Action = "Receive"
	ActionIssue    Action = "Issue"
	ActionTransfer Action = "Transfer"
	ActionAdjust   Action = "Adjust"
)

// HistoryEntry is one event in a record's append-only history log.
// Only the fields relevant to the action are populated.
type HistoryEntry struct {
	Action Action    `json:"action"`
	Date   time.Time `json:"date"`
	User   string    `json:"user"`

	Status string `json:"status,omitempty"`
	Notes  string `json:"notes,omitempty"`

	// Inventory.
	Quantity         *int `json:"quantity,omitempty"`
	Adjustment       *int `json:"adjustment,omitempty"`
	PreviousQuantity *int `json:"previousQuantity,omitempty"`
	NewQuantity      *int `json:"newQuantity,omitempty"`

	// Assets.
	AssignedTo       string `json:"assignedTo,omitempty"`
	PreviousAssignee string `json:"previousAssignee,omitempty"`
	PhotoKey         string `json:"photoKey,omitempty"`
}

// IntPtr returns a pointer to v, for the optional quantity fields.
func IntPtr(v int) *int {
	return &v
}

// Activity is a history entry tagged with the record it belongs to.
type Activity struct {
	Entity string       `json:"entity"`
	ID     string       `json:"id"`
	Entry  HistoryEntry `json:"entry"`
}

// Entity names used in activity feeds, metrics and reports.
const (
	EntityPurchaseRequest = "purchase_request"
	EntityPurchaseOrder   = "purchase_order"
	EntityInventory       = "inventory"
	EntityAsset           = "asset"
)

// StockMovements lists the actions accepted by quantity adjustments.
var StockMovements = []Action{ActionReceive, ActionIssue, ActionTransfer, ActionAdjust}
