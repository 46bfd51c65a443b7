package api

import (
	"net/http"

	"github.com/erazemk/wms/internal/model"
	"github.com/erazemk/wms/internal/provider"
	"github.com/erazemk/wms/internal/service"
)

// InventoryHandler handles inventory item endpoints.
type InventoryHandler struct {
	Provider *provider.Provider
	Service  *service.Inventory
}

type adjustRequest struct {
	Delta int          `json:"delta" validate:"ne=0"`
	Type  model.Action `json:"type" validate:"required,stock_movement"`
}

// List handles GET /api/inventory[?status=...&category=...&stock=low|out].
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var items []model.InventoryItem
	switch {
	case q.Get("stock") == "low":
		items = h.Service.LowStock(r.Context())
	case q.Get("stock") == "out":
		items = h.Service.OutOfStock(r.Context())
	case q.Get("status") != "":
		items = h.Service.ByStatus(r.Context(), q.Get("status"))
	case q.Get("category") != "":
		items = h.Service.ByCategory(r.Context(), q.Get("category"))
	default:
		items = h.Provider.Inventory()
	}
	jsonResponse(w, http.StatusOK, items)
}

func (h *InventoryHandler) find(id string) *model.InventoryItem {
	return findByID(h.Provider.Inventory(), id, func(i *model.InventoryItem) string { return i.ID })
}

// Create handles POST /api/inventory.
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.NewInventoryItem
	if !decodeValid(w, r, &req) {
		return
	}

	item := h.Provider.CreateInventoryItem(r.Context(), req)
	if item == nil {
		jsonError(w, http.StatusInternalServerError, "failed to create inventory item")
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/inventory/{id}.
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	item := h.find(r.PathValue("id"))
	if item == nil {
		jsonError(w, http.StatusNotFound, "inventory item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PATCH /api/inventory/{id}.
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.InventoryItemPatch
	if !decodeValid(w, r, &patch) {
		return
	}
	id := r.PathValue("id")
	existed := h.find(id) != nil
	respondMutation(w, h.Provider.UpdateInventoryItem(r.Context(), id, patch), existed, "inventory item")
}

// Adjust handles POST /api/inventory/{id}/adjust.
func (h *InventoryHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if !decodeValid(w, r, &req) {
		return
	}

	id := r.PathValue("id")
	if item := h.Provider.AdjustInventoryQuantity(r.Context(), id, req.Delta, req.Type); item != nil {
		jsonResponse(w, http.StatusOK, item)
		return
	}

	// The mirror can lag the store, so the reason for a refusal is read from the store.
	current := h.Service.Get(r.Context(), id)
	switch {
	case current != nil && current.Quantity+req.Delta < 0:
		jsonError(w, http.StatusConflict, "insufficient stock")
	case current == nil && h.find(id) == nil:
		jsonError(w, http.StatusNotFound, "inventory item not found")
	default:
		jsonError(w, http.StatusInternalServerError, "failed to update inventory item")
	}
}

// Delete handles DELETE /api/inventory/{id}.
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existed := h.find(id) != nil
	respondDelete(w, h.Provider.DeleteInventoryItem(r.Context(), id), existed, "inventory item")
}
