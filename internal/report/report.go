// Package report renders Excel workbooks from a snapshot of the panel's data.
package report

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/erazemk/wms/internal/model"
)

// ContentType is the MIME type of the generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Kind selects a report.
type Kind string

// Report kinds.
const (
	KindInventory        Kind = "inventory"
	KindPurchaseRequests Kind = "purchase-requests"
	KindPurchaseOrders   Kind = "purchase-orders"
	KindAssets           Kind = "assets"
	KindAuditTrail       Kind = "audit-trail"
)

// ErrUnknownKind is returned by Build for a kind it cannot render.
var ErrUnknownKind = errors.New("unknown report kind")

// Kinds lists every report kind.
func Kinds() []Kind {
	return []Kind{KindInventory, KindPurchaseRequests, KindPurchaseOrders, KindAssets, KindAuditTrail}
}

// Options controls the time window of a report.
type Options struct {
	// Since drops audit entries dated before it. Zero keeps everything.
	Since time.Time
	// Now is the reference time for aging; zero means time.Now().
	Now time.Time
}

const dateFormat = "2006-01-02"

type sheet struct {
	name string
	rows [][]any
}

// Build renders the report of kind from snap.
func Build(kind Kind, snap *model.Snapshot, opts Options) (*excelize.File, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	var s sheet
	switch kind {
	case KindInventory:
		s = inventorySheet(snap.Inventory)
	case KindPurchaseRequests:
		s = purchaseRequestSheet(snap.PurchaseRequests, opts.Now)
	case KindPurchaseOrders:
		s = purchaseOrderSheet(snap.PurchaseOrders)
	case KindAssets:
		s = assetSheet(snap.Assets)
	case KindAuditTrail:
		s = auditSheet(snap.Activities(), opts.Since)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	return s.render()
}

// Filename returns the download name for a report generated at now.
func Filename(kind Kind, now time.Time) string {
	return fmt.Sprintf("%s-%s.xlsx", kind, now.Format(dateFormat))
}

func (s sheet) render() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", s.name); err != nil {
		f.Close()
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	if err := f.SetRowStyle(s.name, 1, 1, bold); err != nil {
		f.Close()
		return nil, fmt.Errorf("styling header: %w", err)
	}
	return f, nil
}

func inventorySheet(items []model.InventoryItem) sheet {
	rows := [][]any{{"Item Code", "Description", "Category", "Location", "Quantity", "Unit",
		"Min Stock", "Max Stock", "Unit Price", "Value", "Status", "Supplier"}}
	for i := range items {
		item := &items[i]
		rows = append(rows, []any{
			item.ItemCode, item.Description, item.Category, item.Location, item.Quantity, item.Unit,
			item.MinStockLevel, item.MaxStockLevel, item.UnitPrice.InexactFloat64(), item.Value().InexactFloat64(),
			item.Status, item.Supplier,
		})
	}
	return sheet{name: "Inventory", rows: rows}
}

func purchaseRequestSheet(prs []model.PurchaseRequest, now time.Time) sheet {
	rows := [][]any{{"PR Number", "Date", "Department", "Requested By", "Items", "Estimated Total", "Status", "Age (days)"}}
	for _, pr := range prs {
		total := 0.0
		for _, l := range pr.Items {
			total += l.Total.InexactFloat64()
		}
		rows = append(rows, []any{
			pr.PRNumber, pr.Date.Format(dateFormat), pr.Department, pr.RequestedBy, len(pr.Items),
			total, pr.Status, ageDays(pr.Date, now),
		})
	}
	return sheet{name: "Purchase Requests", rows: rows}
}

func purchaseOrderSheet(pos []model.PurchaseOrder) sheet {
	rows := [][]any{{"PO Number", "PR Reference", "Supplier", "Date", "Delivery Date", "Total Amount", "Payment Terms", "Status"}}
	for _, po := range pos {
		delivery := ""
		if po.DeliveryDate != nil {
			delivery = po.DeliveryDate.Format(dateFormat)
		}
		rows = append(rows, []any{
			po.PONumber, po.PRReference, po.Supplier, po.Date.Format(dateFormat), delivery,
			po.TotalAmount.InexactFloat64(), po.PaymentTerms, po.Status,
		})
	}
	return sheet{name: "Purchase Orders", rows: rows}
}

func assetSheet(assets []model.Asset) sheet {
	rows := [][]any{{"Asset ID", "Description", "Category", "Serial Number", "Location", "Assigned To", "Status", "QR Code", "Purchase Price"}}
	for i := range assets {
		a := &assets[i]
		rows = append(rows, []any{
			a.AssetID, a.Description, a.Category, a.SerialNumber, a.Location, a.Assignee(), a.Status,
			a.QRCode, a.PurchasePrice.InexactFloat64(),
		})
	}
	return sheet{name: "Assets", rows: rows}
}

func auditSheet(activity []model.Activity, since time.Time) sheet {
	rows := [][]any{{"Date", "Entity", "Record", "Action", "User", "Status", "Details"}}

	kept := activity[:0]
	for _, a := range activity {
		if since.IsZero() || !a.Entry.Date.Before(since) {
			kept = append(kept, a)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Entry.Date.After(kept[j].Entry.Date) })

	for _, a := range kept {
		rows = append(rows, []any{
			a.Entry.Date.Format(time.RFC3339), a.Entity, a.ID, string(a.Entry.Action), a.Entry.User,
			a.Entry.Status, details(a.Entry),
		})
	}
	return sheet{name: "Audit Trail", rows: rows}
}

// details summarises the action-specific fields of e.
func details(e model.HistoryEntry) string {
	switch {
	case e.NewQuantity != nil && e.PreviousQuantity != nil:
		return fmt.Sprintf("quantity %d -> %d", *e.PreviousQuantity, *e.NewQuantity)
	case e.PreviousAssignee != "":
		return "returned by " + e.PreviousAssignee
	case e.AssignedTo != "":
		return "assigned to " + e.AssignedTo
	case e.PhotoKey != "":
		return "photo " + e.PhotoKey
	case e.Quantity != nil:
		return fmt.Sprintf("quantity %d", *e.Quantity)
	}
	return e.Notes
}

func ageDays(from, now time.Time) int {
	if from.IsZero() || now.Before(from) {
		return 0
	}
	return int(math.Floor(now.Sub(from).Hours() / 24))
}
