// Package provider holds the in-memory mirror of all entity collections that
// the panel reads from, and routes every mutation through the entity services
// so the mirror only changes after the store does.
package provider

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/erazemk/wms/internal/model"
	"github.com/erazemk/wms/internal/service"
)

// Provider is the application state container. It must be the only writer to
// the store for the mirror to stay consistent.
type Provider struct {
	svc  *service.Services
	user model.User

	// writeMu serializes Refresh against mutations so a load never
	// overwrites a record stored after its listing was taken.
	writeMu sync.Mutex

	mu      sync.RWMutex
	loading bool
	snap    model.Snapshot
}

// New creates a provider acting as user. The mirror starts empty; call Refresh to load it.
func New(svc *service.Services, user model.User) *Provider {
	if user.Name == "" {
		user.Name = model.SystemUser
	}
	return &Provider{
		svc:  svc,
		user: user,
		snap: model.Snapshot{
			PurchaseRequests: []model.PurchaseRequest{},
			PurchaseOrders:   []model.PurchaseOrder{},
			Inventory:        []model.InventoryItem{},
			Assets:           []model.Asset{},
		},
	}
}

// CurrentUser returns the operator the provider stamps on mutations.
func (p *Provider) CurrentUser() model.User {
	return p.user
}

// Loading reports whether a refresh is in progress.
func (p *Provider) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

// Refresh reloads all four collections concurrently. A collection whose load
// fails keeps its previous contents; the others are still replaced.
// Mutations issued during a refresh wait for it to finish.
func (p *Provider) Refresh(ctx context.Context) {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.loading = false
		p.mu.Unlock()
	}()

	// A plain group: one failed load must not cancel the rest.
	var g errgroup.Group
	g.Go(func() error {
		load(ctx, p, model.EntityPurchaseRequest, p.svc.PurchaseRequests.LoadAll,
			func(s *model.Snapshot, v []model.PurchaseRequest) { s.PurchaseRequests = v })
		return nil
	})
	g.Go(func() error {
		load(ctx, p, model.EntityPurchaseOrder, p.svc.PurchaseOrders.LoadAll,
			func(s *model.Snapshot, v []model.PurchaseOrder) { s.PurchaseOrders = v })
		return nil
	})
	g.Go(func() error {
		load(ctx, p, model.EntityInventory, p.svc.Inventory.LoadAll,
			func(s *model.Snapshot, v []model.InventoryItem) { s.Inventory = v })
		return nil
	})
	g.Go(func() error {
		load(ctx, p, model.EntityAsset, p.svc.Assets.LoadAll,
			func(s *model.Snapshot, v []model.Asset) { s.Assets = v })
		return nil
	})
	g.Wait()
}

func load[T any](ctx context.Context, p *Provider, entity string,
	fetch func(context.Context) ([]T, bool), assign func(*model.Snapshot, []T)) {
	items, ok := fetch(ctx)
	if !ok {
		slog.Error("failed to load collection, keeping previous contents", "entity", entity)
		return
	}
	p.mu.Lock()
	assign(&p.snap, items)
	p.mu.Unlock()
	slog.Info("loaded collection", "entity", entity, "count", len(items))
}

// Snapshot returns a deep copy of the mirror.
func (p *Provider) Snapshot() model.Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap.Clone()
}

// PurchaseRequests returns a deep copy of the mirrored purchase requests.
func (p *Provider) PurchaseRequests() []model.PurchaseRequest {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return model.CloneAll(p.snap.PurchaseRequests)
}

// PurchaseOrders returns a deep copy of the mirrored purchase orders.
func (p *Provider) PurchaseOrders() []model.PurchaseOrder {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return model.CloneAll(p.snap.PurchaseOrders)
}

// Inventory returns a deep copy of the mirrored inventory items.
func (p *Provider) Inventory() []model.InventoryItem {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return model.CloneAll(p.snap.Inventory)
}

// Assets returns a deep copy of the mirrored assets.
func (p *Provider) Assets() []model.Asset {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return model.CloneAll(p.snap.Assets)
}

// Stats computes the dashboard counters from the mirror.
func (p *Provider) Stats() model.Stats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return ComputeStats(&p.snap)
}

// RecentActivity returns the newest limit history entries in the mirror.
func (p *Provider) RecentActivity(limit int) []model.Activity {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return RecentActivity(&p.snap, limit)
}

// reconcile applies fn to the mirror under the write lock.
func (p *Provider) reconcile(fn func(*model.Snapshot)) {
	p.mu.Lock()
	fn(&p.snap)
	p.mu.Unlock()
}

// upsert replaces the element of list whose id matches, or appends rec.
func upsert[T any](list []T, rec T, id func(*T) string) []T {
	want := id(&rec)
	for i := range list {
		if id(&list[i]) == want {
			list[i] = rec
			return list
		}
	}
	return append(list, rec)
}

// remove drops the element of list whose id matches.
func remove[T any](list []T, want string, id func(*T) string) []T {
	return slices.DeleteFunc(list, func(v T) bool { return id(&v) == want })
}
