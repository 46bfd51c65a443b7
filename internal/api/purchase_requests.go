package api

import (
	"net/http"

	"github.com/erazemk/wms/internal/model"
	"github.com/erazemk/wms/internal/provider"
	"github.com/erazemk/wms/internal/service"
)

// PurchaseRequestsHandler handles purchase request endpoints.
type PurchaseRequestsHandler struct {
	Provider *provider.Provider
	Service  *service.PurchaseRequests
}

type prStatusRequest struct {
	Status string `json:"status" validate:"required,pr_status"`
}

// List handles GET /api/purchase-requests[?status=...&department=...].
func (h *PurchaseRequestsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var prs []model.PurchaseRequest
	switch {
	case q.Get("status") != "":
		prs = h.Service.ByStatus(r.Context(), q.Get("status"))
	case q.Get("department") != "":
		prs = h.Service.ByDepartment(r.Context(), q.Get("department"))
	default:
		prs = h.Provider.PurchaseRequests()
	}
	jsonResponse(w, http.StatusOK, prs)
}

// Create handles POST /api/purchase-requests.
func (h *PurchaseRequestsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.NewPurchaseRequest
	if !decodeValid(w, r, &req) {
		return
	}

	pr := h.Provider.CreatePR(r.Context(), req)
	if pr == nil {
		jsonError(w, http.StatusInternalServerError, "failed to create purchase request")
		return
	}
	jsonResponse(w, http.StatusCreated, pr)
}

func (h *PurchaseRequestsHandler) find(id string) *model.PurchaseRequest {
	return findByID(h.Provider.PurchaseRequests(), id, func(pr *model.PurchaseRequest) string { return pr.ID })
}

// Get handles GET /api/purchase-requests/{id}.
func (h *PurchaseRequestsHandler) Get(w http.ResponseWriter, r *http.Request) {
	pr := h.find(r.PathValue("id"))
	if pr == nil {
		jsonError(w, http.StatusNotFound, "purchase request not found")
		return
	}
	jsonResponse(w, http.StatusOK, pr)
}

// Update handles PATCH /api/purchase-requests/{id}.
func (h *PurchaseRequestsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.PurchaseRequestPatch
	if !decodeValid(w, r, &patch) {
		return
	}
	id := r.PathValue("id")
	existed := h.find(id) != nil
	respondMutation(w, h.Provider.UpdatePR(r.Context(), id, patch), existed, "purchase request")
}

// UpdateStatus handles PUT /api/purchase-requests/{id}/status.
func (h *PurchaseRequestsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req prStatusRequest
	if !decodeValid(w, r, &req) {
		return
	}
	id := r.PathValue("id")
	existed := h.find(id) != nil
	respondMutation(w, h.Provider.UpdatePRStatus(r.Context(), id, req.Status), existed, "purchase request")
}

// Delete handles DELETE /api/purchase-requests/{id}.
func (h *PurchaseRequestsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existed := h.find(id) != nil
	respondDelete(w, h.Provider.DeletePR(r.Context(), id), existed, "purchase request")
}
