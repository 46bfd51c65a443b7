package service

import (
	"context"
	"strings"
	"time"

	"github.com/erazemk/wms/internal/model"
)

// DefaultAssetBaseURL prefixes the URL encoded in asset QR codes.
const DefaultAssetBaseURL = "https://wms.goli.com"

// Assets manages individually tagged assets.
type Assets struct {
	c       *Collection[model.Asset]
	baseURL string
}

// NewAssets creates the asset service. QR URLs point below baseURL.
func NewAssets(d Deps, baseURL string) *Assets {
	if baseURL == "" {
		baseURL = DefaultAssetBaseURL
	}
	return &Assets{
		baseURL: strings.TrimRight(baseURL, "/"),
		c: NewCollection(d, Descriptor[model.Asset]{
			Entity:  model.EntityAsset,
			Prefix:  PrefixAsset,
			History: func(a *model.Asset) *[]model.HistoryEntry { return &a.History },
			Touch: func(a *model.Asset, now time.Time, user string) {
				a.UpdatedAt = now
				a.UpdatedBy = user
			},
		}),
	}
}

// Create stores a new asset and tags it with QR data. Status defaults to Available.
func (s *Assets) Create(ctx context.Context, in model.NewAsset) *model.Asset {
	return s.c.Insert(ctx, CategoryCode(in.Category), func(id string, now time.Time) *model.Asset {
		user := in.CreatedBy
		if user == "" {
			user = model.SystemUser
		}
		status := in.Status
		if status == "" {
			status = model.AssetAvailable
		}
		purchaseDate := now
		if in.PurchaseDate != nil {
			purchaseDate = *in.PurchaseDate
		}
		var assignee *string
		if in.AssignedTo != "" {
			v := in.AssignedTo
			assignee = &v
		}
		return &model.Asset{
			ID:            id,
			AssetID:       id,
			Description:   in.Description,
			Category:      in.Category,
			SerialNumber:  in.SerialNumber,
			Location:      in.Location,
			AssignedTo:    assignee,
			Status:        status,
			PurchaseDate:  purchaseDate,
			PurchasePrice: in.PurchasePrice,
			Warranty:      in.Warranty,
			QRCode:        "QR-" + id,
			QRURL:         s.URL(id),
			QRGeneratedAt: now,
			IsTagged:      true,
			CreatedBy:     in.CreatedBy,
			CreatedAt:     now,
			UpdatedAt:     now,
			History: []model.HistoryEntry{{
				Action:     model.ActionCreated,
				Date:       now,
				User:       user,
				Status:     status,
				AssignedTo: in.AssignedTo,
			}},
		}
	})
}

// URL returns the panel address encoded in an asset's QR code.
func (s *Assets) URL(id string) string {
	return s.baseURL + "/assets/" + id
}

// All returns every asset.
func (s *Assets) All(ctx context.Context) []model.Asset {
	return s.c.All(ctx)
}

// LoadAll is All that also reports whether the listing succeeded.
func (s *Assets) LoadAll(ctx context.Context) ([]model.Asset, bool) {
	return s.c.LoadAll(ctx)
}

// Get returns the asset with id, or nil.
func (s *Assets) Get(ctx context.Context, id string) *model.Asset {
	return s.c.Get(ctx, id)
}

// Update merges patch over the stored asset.
func (s *Assets) Update(ctx context.Context, id string, patch model.AssetPatch) *model.Asset {
	return s.c.Mutate(ctx, "update", id, func(a *model.Asset, _ time.Time) (model.HistoryEntry, bool) {
		patch.Apply(a)
		return model.HistoryEntry{
			Action:     model.ActionUpdated,
			User:       patch.UpdatedBy,
			Status:     a.Status,
			AssignedTo: a.Assignee(),
		}, true
	})
}

// UpdateStatus sets the asset's status.
func (s *Assets) UpdateStatus(ctx context.Context, id, status, user string) *model.Asset {
	return s.Update(ctx, id, model.AssetPatch{Status: &status, UpdatedBy: user})
}

// Assign hands the asset to assignee and marks it In Use.
func (s *Assets) Assign(ctx context.Context, id, assignee, user string) *model.Asset {
	return s.c.Mutate(ctx, "assign", id, func(a *model.Asset, _ time.Time) (model.HistoryEntry, bool) {
		v := assignee
		a.AssignedTo = &v
		a.Status = model.AssetInUse
		return model.HistoryEntry{
			Action:     model.ActionAssigned,
			User:       user,
			Status:     a.Status,
			AssignedTo: assignee,
		}, true
	})
}

// Return clears the asset's assignee and marks it Available again.
func (s *Assets) Return(ctx context.Context, id, user string) *model.Asset {
	return s.c.Mutate(ctx, "return", id, func(a *model.Asset, _ time.Time) (model.HistoryEntry, bool) {
		previous := a.Assignee()
		a.AssignedTo = nil
		a.Status = model.AssetAvailable
		return model.HistoryEntry{
			Action:           model.ActionReturned,
			User:             user,
			Status:           a.Status,
			PreviousAssignee: previous,
		}, true
	})
}

// AttachPhoto records the blob key of the asset's photo.
func (s *Assets) AttachPhoto(ctx context.Context, id, photoKey, user string) *model.Asset {
	return s.c.Mutate(ctx, "attach_photo", id, func(a *model.Asset, _ time.Time) (model.HistoryEntry, bool) {
		a.PhotoKey = photoKey
		return model.HistoryEntry{
			Action:   model.ActionPhotoAttached,
			User:     user,
			PhotoKey: photoKey,
		}, true
	})
}

// Delete removes the asset with id.
func (s *Assets) Delete(ctx context.Context, id string) bool {
	return s.c.Delete(ctx, id)
}

// ByStatus returns the assets in status.
func (s *Assets) ByStatus(ctx context.Context, status string) []model.Asset {
	return s.c.Filter(ctx, func(a *model.Asset) bool { return a.Status == status })
}

// ByCategory returns the assets in category.
func (s *Assets) ByCategory(ctx context.Context, category string) []model.Asset {
	return s.c.Filter(ctx, func(a *model.Asset) bool { return a.Category == category })
}

// ByAssignee returns the assets currently held by assignee.
func (s *Assets) ByAssignee(ctx context.Context, assignee string) []model.Asset {
	return s.c.Filter(ctx, func(a *model.Asset) bool { return a.AssignedTo != nil && *a.AssignedTo == assignee })
}
