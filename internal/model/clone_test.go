package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCloneSharesNothing(t *testing.T) {
	delivery := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	assignee := "Maria Santos"
	snap := Snapshot{
		PurchaseRequests: []PurchaseRequest{{
			ID:      "PR-2026-000001",
			Items:   []RequestLine{{Description: "Laptop", Quantity: 1, EstimatedPrice: decimal.NewFromInt(900)}},
			History: []HistoryEntry{{Action: ActionCreated}},
		}},
		PurchaseOrders: []PurchaseOrder{{
			ID:           "PO-2026-000001",
			DeliveryDate: &delivery,
			Items:        []OrderLine{{Description: "Paper", Quantity: 10}},
		}},
		Inventory: []InventoryItem{{
			ID:      "OFF-000001",
			History: []HistoryEntry{{Action: ActionIssue, NewQuantity: IntPtr(3)}},
		}},
		Assets: []Asset{{ID: "EQU-000001", AssignedTo: &assignee}},
	}

	c := snap.Clone()
	c.PurchaseRequests[0].Items[0].Description = "changed"
	c.PurchaseRequests[0].History = append(c.PurchaseRequests[0].History[:0], HistoryEntry{Action: ActionUpdated})
	c.PurchaseOrders[0].Items[0].Quantity = 99
	*c.PurchaseOrders[0].DeliveryDate = delivery.AddDate(1, 0, 0)
	*c.Inventory[0].History[0].NewQuantity = 0
	*c.Assets[0].AssignedTo = "someone else"

	if got := snap.PurchaseRequests[0].Items[0].Description; got != "Laptop" {
		t.Errorf("expected original line item to be untouched, got %q", got)
	}
	if got := snap.PurchaseRequests[0].History[0].Action; got != ActionCreated {
		t.Errorf("expected original history to be untouched, got %q", got)
	}
	if got := snap.PurchaseOrders[0].Items[0].Quantity; got != 10 {
		t.Errorf("expected original order quantity 10, got %d", got)
	}
	if !snap.PurchaseOrders[0].DeliveryDate.Equal(delivery) {
		t.Errorf("expected original delivery date to be untouched, got %v", snap.PurchaseOrders[0].DeliveryDate)
	}
	if got := *snap.Inventory[0].History[0].NewQuantity; got != 3 {
		t.Errorf("expected original history quantity 3, got %d", got)
	}
	if got := snap.Assets[0].Assignee(); got != assignee {
		t.Errorf("expected original assignee %q, got %q", assignee, got)
	}
}
