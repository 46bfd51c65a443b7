package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset statuses.
const (
	AssetAvailable   = "Available"
	AssetInUse       = "In Use"
	AssetMaintenance = "Maintenance"
	AssetRepair      = "Repair"
	AssetRetired     = "Retired"
)

// Asset is an individually tagged piece of equipment.
type Asset struct {
	ID            string          `json:"id"`
	AssetID       string          `json:"assetID"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	SerialNumber  string          `json:"serialNumber"`
	Location      string          `json:"location"`
	AssignedTo    *string         `json:"assignedTo"`
	Status        string          `json:"status"`
	PurchaseDate  time.Time       `json:"purchaseDate"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	Warranty      string          `json:"warranty"`
	QRCode        string          `json:"qrCode"`
	QRURL         string          `json:"qrURL"`
	QRGeneratedAt time.Time       `json:"qrGeneratedAt"`
	IsTagged      bool            `json:"isTagged"`
	PhotoKey      string          `json:"photoKey,omitempty"`
	CreatedBy     string          `json:"createdBy"`
	UpdatedBy     string          `json:"updatedBy,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	History       []HistoryEntry  `json:"history"`
}

// Assignee returns the current assignee or "".
func (a *Asset) Assignee() string {
	if a.AssignedTo == nil {
		return ""
	}
	return *a.AssignedTo
}

// NewAsset holds the caller-supplied fields of an asset.
type NewAsset struct {
	Description   string          `json:"description" validate:"required"`
	Category      string          `json:"category"`
	SerialNumber  string          `json:"serialNumber"`
	Location      string          `json:"location"`
	AssignedTo    string          `json:"assignedTo"`
	Status        string          `json:"status" validate:"omitempty,asset_status"`
	PurchaseDate  *time.Time      `json:"purchaseDate"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	Warranty      string          `json:"warranty"`
	CreatedBy     string          `json:"createdBy"`
}

// AssetPatch is a partial update; nil fields are left unchanged.
// QR data and the tagged flag cannot be patched.
type AssetPatch struct {
	Description   *string          `json:"description,omitempty"`
	Category      *string          `json:"category,omitempty"`
	SerialNumber  *string          `json:"serialNumber,omitempty"`
	Location      *string          `json:"location,omitempty"`
	AssignedTo    *string          `json:"assignedTo,omitempty"`
	Status        *string          `json:"status,omitempty" validate:"omitempty,asset_status"`
	PurchaseDate  *time.Time       `json:"purchaseDate,omitempty"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice,omitempty"`
	Warranty      *string          `json:"warranty,omitempty"`
	UpdatedBy     string           `json:"updatedBy,omitempty"`
}

// Apply merges the patch over a. An empty AssignedTo clears the assignee.
func (p AssetPatch) Apply(a *Asset) {
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.SerialNumber != nil {
		a.SerialNumber = *p.SerialNumber
	}
	if p.Location != nil {
		a.Location = *p.Location
	}
	if p.AssignedTo != nil {
		if *p.AssignedTo == "" {
			a.AssignedTo = nil
		} else {
			v := *p.AssignedTo
			a.AssignedTo = &v
		}
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.PurchaseDate != nil {
		a.PurchaseDate = *p.PurchaseDate
	}
	if p.PurchasePrice != nil {
		a.PurchasePrice = *p.PurchasePrice
	}
	if p.Warranty != nil {
		a.Warranty = *p.Warranty
	}
	if p.UpdatedBy != "" {
		a.UpdatedBy = p.UpdatedBy
	}
}

// AssetStatuses lists every asset status.
var AssetStatuses = []string{AssetAvailable, AssetInUse, AssetMaintenance, AssetRepair, AssetRetired}
