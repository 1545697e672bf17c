package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"devchatClient/internal/logger"
)

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	report, err := h.HealthService.Check(r.Context())
	if err != nil {
		logger.Log.Warn("health check failed", zap.Error(err))
		writeSuccess(w, report, http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, report, http.StatusOK)
}

// Loading answers guarded views while the session cannot be read yet. The
// page reloads itself until storage is back.
func (h *Handlers) Loading(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Refresh", "2")
	w.Header().Set("Retry-After", "2")
	h.render(w, r, http.StatusServiceUnavailable, "loading", "Loading", nil)
}

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "not_found", "Not found", nil)
}
