package api

import (
	"net/http"

	"github.com/erazemk/wms/internal/model"
	"github.com/erazemk/wms/internal/provider"
	"github.com/erazemk/wms/internal/service"
)

// PurchaseOrdersHandler handles purchase order endpoints.
type PurchaseOrdersHandler struct {
	Provider *provider.Provider
	Service  *service.PurchaseOrders
}

type poStatusRequest struct {
	Status string `json:"status" validate:"required,po_status"`
}

// List handles GET /api/purchase-orders[?status=...&supplier=...&prReference=...].
func (h *PurchaseOrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var pos []model.PurchaseOrder
	switch {
	case q.Get("status") != "":
		pos = h.Service.ByStatus(r.Context(), q.Get("status"))
	case q.Get("supplier") != "":
		pos = h.Service.BySupplier(r.Context(), q.Get("supplier"))
	case q.Get("prReference") != "":
		pos = h.Service.ByPRReference(r.Context(), q.Get("prReference"))
	default:
		pos = h.Provider.PurchaseOrders()
	}
	jsonResponse(w, http.StatusOK, pos)
}

func (h *PurchaseOrdersHandler) find(id string) *model.PurchaseOrder {
	return findByID(h.Provider.PurchaseOrders(), id, func(po *model.PurchaseOrder) string { return po.ID })
}

// Create handles POST /api/purchase-orders.
func (h *PurchaseOrdersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.NewPurchaseOrder
	if !decodeValid(w, r, &req) {
		return
	}

	po := h.Provider.CreatePO(r.Context(), req)
	if po == nil {
		jsonError(w, http.StatusInternalServerError, "failed to create purchase order")
		return
	}
	jsonResponse(w, http.StatusCreated, po)
}

// Get handles GET /api/purchase-orders/{id}.
func (h *PurchaseOrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	po := h.find(r.PathValue("id"))
	if po == nil {
		jsonError(w, http.StatusNotFound, "purchase order not found")
		return
	}
	jsonResponse(w, http.StatusOK, po)
}

// Update handles PATCH /api/purchase-orders/{id}.
func (h *PurchaseOrdersHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.PurchaseOrderPatch
	if !decodeValid(w, r, &patch) {
		return
	}
	id := r.PathValue("id")
	existed := h.find(id) != nil
	respondMutation(w, h.Provider.UpdatePO(r.Context(), id, patch), existed, "purchase order")
}

// UpdateStatus handles PUT /api/purchase-orders/{id}/status.
func (h *PurchaseOrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req poStatusRequest
	if !decodeValid(w, r, &req) {
		return
	}
	id := r.PathValue("id")
	existed := h.find(id) != nil
	respondMutation(w, h.Provider.UpdatePOStatus(r.Context(), id, req.Status), existed, "purchase order")
}

// Delete handles DELETE /api/purchase-orders/{id}.
func (h *PurchaseOrdersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existed := h.find(id) != nil
	respondDelete(w, h.Provider.DeletePO(r.Context(), id), existed, "purchase order")
}
