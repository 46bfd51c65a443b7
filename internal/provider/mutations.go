package provider

import (
	"context"

	"github.com/erazemk/wms/internal/model"
)

func prID(pr *model.PurchaseRequest) string   { return pr.ID }
func poID(po *model.PurchaseOrder) string     { return po.ID }
func itemID(item *model.InventoryItem) string { return item.ID }
func assetID(a *model.Asset) string           { return a.ID }

// CreatePR stores a new purchase request requested by the current user.
func (p *Provider) CreatePR(ctx context.Context, in model.NewPurchaseRequest) *model.PurchaseRequest {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	in.RequestedBy = p.user.Name
	pr := p.svc.PurchaseRequests.Create(ctx, in)
	if pr == nil {
		return nil
	}
	p.reconcile(func(s *model.Snapshot) { s.PurchaseRequests = append(s.PurchaseRequests, *pr) })
	return pr
}

// UpdatePR applies patch to the purchase request with id.
func (p *Provider) UpdatePR(ctx context.Context, id string, patch model.PurchaseRequestPatch) *model.PurchaseRequest {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	patch.UpdatedBy = p.user.Name
	return p.replacePR(p.svc.PurchaseRequests.Update(ctx, id, patch))
}

// UpdatePRStatus moves the purchase request with id to status.
func (p *Provider) UpdatePRStatus(ctx context.Context, id, status string) *model.PurchaseRequest {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.replacePR(p.svc.PurchaseRequests.UpdateStatus(ctx, id, status, p.user.Name))
}

func (p *Provider) replacePR(pr *model.PurchaseRequest) *model.PurchaseRequest {
	if pr == nil {
		return nil
	}
	p.reconcile(func(s *model.Snapshot) { s.PurchaseRequests = upsert(s.PurchaseRequests, *pr, prID) })
	return pr
}

// DeletePR removes the purchase request with id.
func (p *Provider) DeletePR(ctx context.Context, id string) bool {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	if !p.svc.PurchaseRequests.Delete(ctx, id) {
		return false
	}
	p.reconcile(func(s *model.Snapshot) { s.PurchaseRequests = remove(s.PurchaseRequests, id, prID) })
	return true
}

// CreatePO stores a new purchase order created by the current user.
func (p *Provider) CreatePO(ctx context.Context, in model.NewPurchaseOrder) *model.PurchaseOrder {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	in.CreatedBy = p.user.Name
	po := p.svc.PurchaseOrders.Create(ctx, in)
	if po == nil {
		return nil
	}
	p.reconcile(func(s *model.Snapshot) { s.PurchaseOrders = append(s.PurchaseOrders, *po) })
	return po
}

// UpdatePO applies patch to the purchase order with id.
func (p *Provider) UpdatePO(ctx context.Context, id string, patch model.PurchaseOrderPatch) *model.PurchaseOrder {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	patch.UpdatedBy = p.user.Name
	return p.replacePO(p.svc.PurchaseOrders.Update(ctx, id, patch))
}

// UpdatePOStatus moves the purchase order with id to status.
func (p *Provider) UpdatePOStatus(ctx context.Context, id, status string) *model.PurchaseOrder {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.replacePO(p.svc.PurchaseOrders.UpdateStatus(ctx, id, status, p.user.Name))
}

func (p *Provider) replacePO(po *model.PurchaseOrder) *model.PurchaseOrder {
	if po == nil {
		return nil
	}
	p.reconcile(func(s *model.Snapshot) { s.PurchaseOrders = upsert(s.PurchaseOrders, *po, poID) })
	return po
}

// DeletePO removes the purchase order with id.
func (p *Provider) DeletePO(ctx context.Context, id string) bool {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	if !p.svc.PurchaseOrders.Delete(ctx, id) {
		return false
	}
	p.reconcile(func(s *model.Snapshot) { s.PurchaseOrders = remove(s.PurchaseOrders, id, poID) })
	return true
}

// CreateInventoryItem stores a new inventory item created by the current user.
func (p *Provider) CreateInventoryItem(ctx context.Context, in model.NewInventoryItem) *model.InventoryItem {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	in.CreatedBy = p.user.Name
	item := p.svc.Inventory.Create(ctx, in)
	if item == nil {
		return nil
	}
	p.reconcile(func(s *model.Snapshot) { s.Inventory = append(s.Inventory, *item) })
	return item
}

// UpdateInventoryItem applies patch to the inventory item with id.
func (p *Provider) UpdateInventoryItem(ctx context.Context, id string, patch model.InventoryItemPatch) *model.InventoryItem {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	patch.UpdatedBy = p.user.Name
	return p.replaceItem(p.svc.Inventory.Update(ctx, id, patch))
}

// AdjustInventoryQuantity moves delta units in or out of the item with id.
func (p *Provider) AdjustInventoryQuantity(ctx context.Context, id string, delta int, action model.Action) *model.InventoryItem {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.replaceItem(p.svc.Inventory.AdjustQuantity(ctx, id, delta, action, p.user.Name))
}

func (p *Provider) replaceItem(item *model.InventoryItem) *model.InventoryItem {
	if item == nil {
		return nil
	}
	p.reconcile(func(s *model.Snapshot) { s.Inventory = upsert(s.Inventory, *item, itemID) })
	return item
}

// DeleteInventoryItem removes the inventory item with id.
func (p *Provider) DeleteInventoryItem(ctx context.Context, id string) bool {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	if !p.svc.Inventory.Delete(ctx, id) {
		return false
	}
	p.reconcile(func(s *model.Snapshot) { s.Inventory = remove(s.Inventory, id, itemID) })
	return true
}

// CreateAsset stores and tags a new asset created by the current user.
func (p *Provider) CreateAsset(ctx context.Context, in model.NewAsset) *model.Asset {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	in.CreatedBy = p.user.Name
	a := p.svc.Assets.Create(ctx, in)
	if a == nil {
		return nil
	}
	p.reconcile(func(s *model.Snapshot) { s.Assets = append(s.Assets, *a) })
	return a
}

// UpdateAsset applies patch to the asset with id.
func (p *Provider) UpdateAsset(ctx context.Context, id string, patch model.AssetPatch) *model.Asset {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	patch.UpdatedBy = p.user.Name
	return p.replaceAsset(p.svc.Assets.Update(ctx, id, patch))
}

// UpdateAssetStatus moves the asset with id to status.
func (p *Provider) UpdateAssetStatus(ctx context.Context, id, status string) *model.Asset {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.replaceAsset(p.svc.Assets.UpdateStatus(ctx, id, status, p.user.Name))
}

// AssignAsset hands the asset with id to assignee.
func (p *Provider) AssignAsset(ctx context.Context, id, assignee string) *model.Asset {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.replaceAsset(p.svc.Assets.Assign(ctx, id, assignee, p.user.Name))
}

// ReturnAsset takes the asset with id back from its assignee.
func (p *Provider) ReturnAsset(ctx context.Context, id string) *model.Asset {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.replaceAsset(p.svc.Assets.Return(ctx, id, p.user.Name))
}

// AttachAssetPhoto records photoKey as the photo of the asset with id.
func (p *Provider) AttachAssetPhoto(ctx context.Context, id, photoKey string) *model.Asset {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.replaceAsset(p.svc.Assets.AttachPhoto(ctx, id, photoKey, p.user.Name))
}

func (p *Provider) replaceAsset(a *model.Asset) *model.Asset {
	if a == nil {
		return nil
	}
	p.reconcile(func(s *model.Snapshot) { s.Assets = upsert(s.Assets, *a, assetID) })
	return a
}

// DeleteAsset removes the asset with id.
func (p *Provider) DeleteAsset(ctx context.Context, id string) bool {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	if !p.svc.Assets.Delete(ctx, id) {
		return false
	}
	p.reconcile(func(s *model.Snapshot) { s.Assets = remove(s.Assets, id, assetID) })
	return true
}
