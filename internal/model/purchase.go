package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase request statuses.
const (
	PRStatusSubmitted  = "Submitted"
	PRStatusForCanvass = "For Canvass"
	PRStatusApproved   = "Approved"
	PRStatusRejected   = "Rejected"
	PRStatusCompleted  = "Completed"
)

// Purchase order statuses.
const (
	POStatusPending   = "Pending"
	POStatusApproved  = "Approved"
	POStatusDelivered = "Delivered"
	POStatusCompleted = "Completed"
	POStatusCancelled = "Cancelled"
)

// RequestLine is one requested item on a purchase request.
type RequestLine struct {
	Description    string          `json:"description" validate:"required"`
	Quantity       int             `json:"quantity" validate:"gt=0"`
	Unit           string          `json:"unit,omitempty"`
	EstimatedPrice decimal.Decimal `json:"estimatedPrice"`
	Total          decimal.Decimal `json:"total"`
}

// OrderLine is one ordered item on a purchase order.
type OrderLine struct {
	Description string          `json:"description" validate:"required"`
	Quantity    int             `json:"quantity" validate:"gt=0"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

// LineTotal returns quantity × price.
func LineTotal(quantity int, price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// PurchaseRequest is a department's request to acquire items.
type PurchaseRequest struct {
	ID          string         `json:"id"`
	PRNumber    string         `json:"prNumber"`
	Date        time.Time      `json:"date"`
	Department  string         `json:"department"`
	RequestedBy string         `json:"requestedBy"`
	Items       []RequestLine  `json:"items"`
	Status      string         `json:"status"`
	Notes       string         `json:"notes"`
	UpdatedBy   string         `json:"updatedBy,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	History     []HistoryEntry `json:"history"`
}

// NewPurchaseRequest holds the caller-supplied fields of a purchase request.
type NewPurchaseRequest struct {
	Department  string        `json:"department" validate:"required"`
	RequestedBy string        `json:"requestedBy"`
	Items       []RequestLine `json:"items" validate:"dive"`
	Notes       string        `json:"notes"`
}

// PurchaseRequestPatch is a partial update; nil fields are left unchanged.
type PurchaseRequestPatch struct {
	Department *string        `json:"department,omitempty"`
	Items      *[]RequestLine `json:"items,omitempty" validate:"omitempty,dive"`
	Notes      *string        `json:"notes,omitempty"`
	Status     *string        `json:"status,omitempty" validate:"omitempty,pr_status"`
	UpdatedBy  string         `json:"updatedBy,omitempty"`
}

// Apply merges the patch over pr.
func (p PurchaseRequestPatch) Apply(pr *PurchaseRequest) {
	if p.Department != nil {
		pr.Department = *p.Department
	}
	if p.Items != nil {
		pr.Items = *p.Items
	}
	if p.Notes != nil {
		pr.Notes = *p.Notes
	}
	if p.Status != nil {
		pr.Status = *p.Status
	}
	if p.UpdatedBy != "" {
		pr.UpdatedBy = p.UpdatedBy
	}
}

// PurchaseOrder is a supplier-facing order, optionally derived from a purchase request.
type PurchaseOrder struct {
	ID              string          `json:"id"`
	PONumber        string          `json:"poNumber"`
	PRReference     string          `json:"prReference,omitempty"`
	Supplier        string          `json:"supplier"`
	SupplierContact string          `json:"supplierContact"`
	Date            time.Time       `json:"date"`
	DeliveryDate    *time.Time      `json:"deliveryDate"`
	Items           []OrderLine     `json:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          string          `json:"status"`
	PaymentTerms    string          `json:"paymentTerms"`
	Notes           string          `json:"notes"`
	CreatedBy       string          `json:"createdBy"`
	UpdatedBy       string          `json:"updatedBy,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	History         []HistoryEntry  `json:"history"`
}

// NewPurchaseOrder holds the caller-supplied fields of a purchase order.
type NewPurchaseOrder struct {
	PRReference     string      `json:"prReference"`
	Supplier        string      `json:"supplier" validate:"required"`
	SupplierContact string      `json:"supplierContact"`
	DeliveryDate    *time.Time  `json:"deliveryDate"`
	Items           []OrderLine `json:"items" validate:"dive"`
	PaymentTerms    string      `json:"paymentTerms"`
	Notes           string      `json:"notes"`
	CreatedBy       string      `json:"createdBy"`
}

// PurchaseOrderPatch is a partial update; nil fields are left unchanged.
// Totals are not recomputed on edit.
type PurchaseOrderPatch struct {
	PRReference     *string          `json:"prReference,omitempty"`
	Supplier        *string          `json:"supplier,omitempty"`
	SupplierContact *string          `json:"supplierContact,omitempty"`
	DeliveryDate    *time.Time       `json:"deliveryDate,omitempty"`
	Items           *[]OrderLine     `json:"items,omitempty" validate:"omitempty,dive"`
	TotalAmount     *decimal.Decimal `json:"totalAmount,omitempty"`
	Status          *string          `json:"status,omitempty" validate:"omitempty,po_status"`
	PaymentTerms    *string          `json:"paymentTerms,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	UpdatedBy       string           `json:"updatedBy,omitempty"`
}

// Apply merges the patch over po.
func (p PurchaseOrderPatch) Apply(po *PurchaseOrder) {
	if p.PRReference != nil {
		po.PRReference = *p.PRReference
	}
	if p.Supplier != nil {
		po.Supplier = *p.Supplier
	}
	if p.SupplierContact != nil {
		po.SupplierContact = *p.SupplierContact
	}
	if p.DeliveryDate != nil {
		d := *p.DeliveryDate
		po.DeliveryDate = &d
	}
	if p.Items != nil {
		po.Items = *p.Items
	}
	if p.TotalAmount != nil {
		po.TotalAmount = *p.TotalAmount
	}
	if p.Status != nil {
		po.Status = *p.Status
	}
	if p.PaymentTerms != nil {
		po.PaymentTerms = *p.PaymentTerms
	}
	if p.Notes != nil {
		po.Notes = *p.Notes
	}
	if p.UpdatedBy != "" {
		po.UpdatedBy = p.UpdatedBy
	}
}

// PRStatuses lists every purchase request status.
var PRStatuses = []string{PRStatusSubmitted, PRStatusForCanvass, PRStatusApproved, PRStatusRejected, PRStatusCompleted}

// POStatuses lists every purchase order status.
var POStatuses = []string{POStatusPending, POStatusApproved, POStatusDelivered, POStatusCompleted, POStatusCancelled}
