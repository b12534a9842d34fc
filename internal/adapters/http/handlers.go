package http

import "net/http"

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ok")
}

func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	report := h.service.Health(r.Context())
	if report.Storage != "connected" {
		writeError(w, http.StatusServiceUnavailable, "NOT_READY", "storage unavailable")
		return
	}
	writeMessage(w, http.StatusOK, "ready")
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, h.service.Health(r.Context()))
}
