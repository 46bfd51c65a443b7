package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/erazemk/wms/internal/provider"
	"github.com/erazemk/wms/internal/report"
)

// DefaultReportDays is the audit window used when no days parameter is given.
const DefaultReportDays = 30

// ReportsHandler serves Excel exports of the mirror.
type ReportsHandler struct {
	Provider *provider.Provider
}

// Download handles GET /api/reports/{kind}[?days=N]. days=0 covers all time.
func (h *ReportsHandler) Download(w http.ResponseWriter, r *http.Request) {
	days := DefaultReportDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			jsonError(w, http.StatusBadRequest, "invalid days")
			return
		}
		days = n
	}

	now := time.Now()
	opts := report.Options{Now: now}
	if days > 0 {
		opts.Since = now.AddDate(0, 0, -days)
	}

	kind := report.Kind(r.PathValue("kind"))
	snap := h.Provider.Snapshot()
	f, err := report.Build(kind, &snap, opts)
	if errors.Is(err, report.ErrUnknownKind) {
		jsonError(w, http.StatusNotFound, "unknown report")
		return
	}
	if err != nil {
		slog.Error("failed to build report", "kind", kind, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to build report")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename(kind, now)+`"`)
	if err := f.Write(w); err != nil {
		slog.Error("failed to write report", "kind", kind, "error", err)
	}
}
