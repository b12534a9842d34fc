package http

import (
	"net/http"

	"github.com/viralforge/sigpac-weather/internal/domain"
)

func (h *Handler) searchMunicipalities(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.SearchMunicipalities(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeMappedError(w, r, "search_municipalities", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) reverseGeocode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, err := parseFloatParam(q.Get("lat"), "lat")
	if err != nil {
		writeValidationError(w, r, "reverse_geocode", err)
		return
	}
	lng, err := parseFloatParam(q.Get("lng"), "lng")
	if err != nil {
		writeValidationError(w, r, "reverse_geocode", err)
		return
	}

	res, err := h.service.ReverseGeocode(r.Context(), domain.Point{Lat: lat, Lng: lng})
	if err != nil {
		writeMappedError(w, r, "reverse_geocode", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}
