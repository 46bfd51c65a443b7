package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/wms/internal/blob"
	"github.com/erazemk/wms/internal/imaging"
	"github.com/erazemk/wms/internal/model"
	"github.com/erazemk/wms/internal/provider"
	"github.com/erazemk/wms/internal/service"
)

// AssetsHandler handles tagged asset endpoints.
type AssetsHandler struct {
	Provider *provider.Provider
	Service  *service.Assets
	Blobs    blob.Store
}

type assetStatusRequest struct {
	Status string `json:"status" validate:"required,asset_status"`
}

type assignRequest struct {
	AssignedTo string `json:"assignedTo" validate:"required"`
}

// PhotoKey returns the blob key of an asset's photo.
func PhotoKey(assetID string) string {
	return "assets/" + assetID + "/photo.jpg"
}

// ThumbKey returns the blob key of an asset's photo thumbnail.
func ThumbKey(assetID string) string {
	return "assets/" + assetID + "/thumb.jpg"
}

// List handles GET /api/assets[?status=...&category=...&assignedTo=...].
func (h *AssetsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var assets []model.Asset
	switch {
	case q.Get("status") != "":
		assets = h.Service.ByStatus(r.Context(), q.Get("status"))
	case q.Get("category") != "":
		assets = h.Service.ByCategory(r.Context(), q.Get("category"))
	case q.Get("assignedTo") != "":
		assets = h.Service.ByAssignee(r.Context(), q.Get("assignedTo"))
	default:
		assets = h.Provider.Assets()
	}
	jsonResponse(w, http.StatusOK, assets)
}

func (h *AssetsHandler) find(id string) *model.Asset {
	return findByID(h.Provider.Assets(), id, func(a *model.Asset) string { return a.ID })
}

// Create handles POST /api/assets.
func (h *AssetsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.NewAsset
	if !decodeValid(w, r, &req) {
		return
	}

	a := h.Provider.CreateAsset(r.Context(), req)
	if a == nil {
		jsonError(w, http.StatusInternalServerError, "failed to create asset")
		return
	}
	jsonResponse(w, http.StatusCreated, a)
}

// Get handles GET /api/assets/{id}.
func (h *AssetsHandler) Get(w http.ResponseWriter, r *http.Request) {
	a := h.find(r.PathValue("id"))
	if a == nil {
		jsonError(w, http.StatusNotFound, "asset not found")
		return
	}
	jsonResponse(w, http.StatusOK, a)
}

// Update handles PATCH /api/assets/{id}.
func (h *AssetsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.AssetPatch
	if !decodeValid(w, r, &patch) {
		return
	}
	id := r.PathValue("id")
	existed := h.find(id) != nil
	respondMutation(w, h.Provider.UpdateAsset(r.Context(), id, patch), existed, "asset")
}

// UpdateStatus handles PUT /api/assets/{id}/status.
func (h *AssetsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req assetStatusRequest
	if !decodeValid(w, r, &req) {
		return
	}
	id := r.PathValue("id")
	existed := h.find(id) != nil
	respondMutation(w, h.Provider.UpdateAssetStatus(r.Context(), id, req.Status), existed, "asset")
}

// Assign handles POST /api/assets/{id}/assign.
func (h *AssetsHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if !decodeValid(w, r, &req) {
		return
	}
	id := r.PathValue("id")
	existed := h.find(id) != nil
	respondMutation(w, h.Provider.AssignAsset(r.Context(), id, req.AssignedTo), existed, "asset")
}

// Return handles POST /api/assets/{id}/return.
func (h *AssetsHandler) Return(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existed := h.find(id) != nil
	respondMutation(w, h.Provider.ReturnAsset(r.Context(), id), existed, "asset")
}

// Delete handles DELETE /api/assets/{id}. The asset's photos go with it.
func (h *AssetsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing := h.find(id)
	ok := h.Provider.DeleteAsset(r.Context(), id)
	if ok && existing != nil && existing.PhotoKey != "" {
		for _, key := range []string{PhotoKey(id), ThumbKey(id)} {
			if err := h.Blobs.Delete(r.Context(), key); err != nil && !errors.Is(err, blob.ErrNotFound) {
				slog.Error("failed to delete asset photo", "key", key, "error", err)
			}
		}
	}
	respondDelete(w, ok, existing != nil, "asset")
}

// UploadPhoto handles PUT /api/assets/{id}/photo.
func (h *AssetsHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if h.find(id) == nil {
		jsonError(w, http.StatusNotFound, "asset not found")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(imaging.MaxUploadSize); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo file required")
		return
	}
	defer file.Close()

	photo, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Blobs.Put(r.Context(), PhotoKey(id), photo.Full, imaging.MIME); err != nil {
		slog.Error("failed to store asset photo", "id", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to save photo")
		return
	}
	if err := h.Blobs.Put(r.Context(), ThumbKey(id), photo.Thumb, imaging.MIME); err != nil {
		slog.Error("failed to store asset thumbnail", "id", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to save photo")
		return
	}

	respondMutation(w, h.Provider.AttachAssetPhoto(r.Context(), id, PhotoKey(id)), true, "asset")
}

// GetPhoto handles GET /api/assets/{id}/photo[?thumb=1].
func (h *AssetsHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	key := PhotoKey(id)
	if r.URL.Query().Get("thumb") != "" {
		key = ThumbKey(id)
	}

	data, contentType, err := h.Blobs.Get(r.Context(), key)
	if errors.Is(err, blob.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "no photo")
		return
	}
	if err != nil {
		slog.Error("failed to read asset photo", "key", key, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get photo")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(data)
}
