package api

import (
	"net/http"
	"strconv"

	"github.com/erazemk/wms/internal/model"
	"github.com/erazemk/wms/internal/provider"
)

// DashboardHandler serves the derived views of the mirror.
type DashboardHandler struct {
	Provider *provider.Provider
}

type stateResponse struct {
	Loading     bool        `json:"loading"`
	CurrentUser model.User  `json:"currentUser"`
	Stats       model.Stats `json:"stats"`
}

// State handles GET /api/state.
func (h *DashboardHandler) State(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, stateResponse{
		Loading:     h.Provider.Loading(),
		CurrentUser: h.Provider.CurrentUser(),
		Stats:       h.Provider.Stats(),
	})
}

// Stats handles GET /api/dashboard/stats.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Provider.Stats())
}

// Activity handles GET /api/dashboard/activity[?limit=N].
func (h *DashboardHandler) Activity(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			jsonError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	jsonResponse(w, http.StatusOK, h.Provider.RecentActivity(limit))
}

// Refresh handles POST /api/refresh.
func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.Provider.Refresh(r.Context())
	jsonResponse(w, http.StatusOK, h.Provider.Stats())
}
