package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/erazemk/wms/internal/blob"
	"github.com/erazemk/wms/internal/model"
	"github.com/erazemk/wms/internal/provider"
	"github.com/erazemk/wms/internal/service"
	"github.com/erazemk/wms/internal/store"
)

// Deps are the collaborators the API is built from.
type Deps struct {
	Provider  *provider.Provider
	Services  *service.Services
	Records   *store.Records
	Blobs     blob.Store
	JWTSecret string
	Operator  model.User
	Metrics   prometheus.Gatherer // optional; /metrics is not served without it
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{Records: d.Records, JWTSecret: d.JWTSecret, Operator: d.Operator}
	prHandler := &PurchaseRequestsHandler{Provider: d.Provider, Service: d.Services.PurchaseRequests}
	poHandler := &PurchaseOrdersHandler{Provider: d.Provider, Service: d.Services.PurchaseOrders}
	inventoryHandler := &InventoryHandler{Provider: d.Provider, Service: d.Services.Inventory}
	assetsHandler := &AssetsHandler{Provider: d.Provider, Service: d.Services.Assets, Blobs: d.Blobs}
	dashboardHandler := &DashboardHandler{Provider: d.Provider}
	reportsHandler := &ReportsHandler{Provider: d.Provider}

	authMW := AuthMiddleware(d.JWTSecret)
	authed := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authMW(h))
	}

	// Public.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	if d.Metrics != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(d.Metrics, promhttp.HandlerOpts{}))
	}

	// Session.
	authed("GET /api/auth/me", authHandler.Me)
	authed("PUT /api/auth/password", authHandler.ChangePassword)

	// Application state.
	authed("GET /api/state", dashboardHandler.State)
	authed("POST /api/refresh", dashboardHandler.Refresh)
	authed("GET /api/dashboard/stats", dashboardHandler.Stats)
	authed("GET /api/dashboard/activity", dashboardHandler.Activity)

	// Purchase requests.
	authed("GET /api/purchase-requests", prHandler.List)
	authed("POST /api/purchase-requests", prHandler.Create)
	authed("GET /api/purchase-requests/{id}", prHandler.Get)
	authed("PATCH /api/purchase-requests/{id}", prHandler.Update)
	authed("PUT /api/purchase-requests/{id}/status", prHandler.UpdateStatus)
	authed("DELETE /api/purchase-requests/{id}", prHandler.Delete)

	// Purchase orders.
	authed("GET /api/purchase-orders", poHandler.List)
	authed("POST /api/purchase-orders", poHandler.Create)
	authed("GET /api/purchase-orders/{id}", poHandler.Get)
	authed("PATCH /api/purchase-orders/{id}", poHandler.Update)
	authed("PUT /api/purchase-orders/{id}/status", poHandler.UpdateStatus)
	authed("DELETE /api/purchase-orders/{id}", poHandler.Delete)

	// Inventory.
	authed("GET /api/inventory", inventoryHandler.List)
	authed("POST /api/inventory", inventoryHandler.Create)
	authed("GET /api/inventory/{id}", inventoryHandler.Get)
	authed("PATCH /api/inventory/{id}", inventoryHandler.Update)
	authed("POST /api/inventory/{id}/adjust", inventoryHandler.Adjust)
	authed("DELETE /api/inventory/{id}", inventoryHandler.Delete)

	// Assets.
	authed("GET /api/assets", assetsHandler.List)
	authed("POST /api/assets", assetsHandler.Create)
	authed("GET /api/assets/{id}", assetsHandler.Get)
	authed("PATCH /api/assets/{id}", assetsHandler.Update)
	authed("PUT /api/assets/{id}/status", assetsHandler.UpdateStatus)
	authed("POST /api/assets/{id}/assign", assetsHandler.Assign)
	authed("POST /api/assets/{id}/return", assetsHandler.Return)
	authed("DELETE /api/assets/{id}", assetsHandler.Delete)
	authed("PUT /api/assets/{id}/photo", assetsHandler.UploadPhoto)
	authed("GET /api/assets/{id}/photo", assetsHandler.GetPhoto)

	// Reports.
	authed("GET /api/reports/{kind}", reportsHandler.Download)

	return mux
}
