// Package service implements the entity services for purchase requests,
// purchase orders, inventory items and assets. Every operation absorbs
// storage errors: failures come back as nil, false or an empty slice.
package service

import (
	"github.com/erazemk/wms/internal/store"
)

// Key prefixes, one namespace per entity kind.
const (
	PrefixPurchaseRequest = "pr:"
	PrefixPurchaseOrder   = "po:"
	PrefixInventory       = "inventory:"
	PrefixAsset           = "asset:"
)

// Deps are the collaborators shared by all services.
type Deps struct {
	Records *store.Records
	IDs     *IDGenerator // defaults to a generator on the wall clock
	Metrics *Metrics     // optional
}

func (d Deps) ids() *IDGenerator {
	if d.IDs == nil {
		return NewIDGenerator(nil)
	}
	return d.IDs
}

// Services bundles the four entity services.
type Services struct {
	PurchaseRequests *PurchaseRequests
	PurchaseOrders   *PurchaseOrders
	Inventory        *Inventory
	Assets           *Assets
}

// New creates all entity services over the same dependencies. All of them
// share one ID generator.
func New(d Deps, assetBaseURL string) *Services {
	d.IDs = d.ids()
	return &Services{
		PurchaseRequests: NewPurchaseRequests(d),
		PurchaseOrders:   NewPurchaseOrders(d),
		Inventory:        NewInventory(d),
		Assets:           NewAssets(d, assetBaseURL),
	}
}
