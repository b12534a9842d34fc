package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/viralforge/sigpac-weather/internal/application"
)

func (h *Handler) listParcels(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, r, "list_parcels")
		return
	}

	res, err := h.service.ListParcels(r.Context(), claims.AccountID)
	if err != nil {
		writeMappedError(w, r, "list_parcels", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) createParcel(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, r, "create_parcel")
		return
	}
	var req application.CreateParcelRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, r, "create_parcel", err)
		return
	}

	res, err := h.service.CreateParcel(r.Context(), claims.AccountID, req)
	if err != nil {
		writeMappedError(w, r, "create_parcel", err)
		return
	}
	writeSuccess(w, http.StatusCreated, res)
}

func (h *Handler) getParcel(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, r, "get_parcel")
		return
	}

	res, err := h.service.GetParcel(r.Context(), claims.AccountID, chi.URLParam(r, "parcel_id"))
	if err != nil {
		writeMappedError(w, r, "get_parcel", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) updateParcel(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, r, "update_parcel")
		return
	}
	var req application.UpdateParcelRequest
	if err := decodeBodyLenient(r, &req); err != nil {
		writeValidationError(w, r, "update_parcel", err)
		return
	}

	res, err := h.service.UpdateParcel(r.Context(), claims.AccountID, chi.URLParam(r, "parcel_id"), req)
	if err != nil {
		writeMappedError(w, r, "update_parcel", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) deleteParcel(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, r, "delete_parcel")
		return
	}

	if err := h.service.DeleteParcel(r.Context(), claims.AccountID, chi.URLParam(r, "parcel_id")); err != nil {
		writeMappedError(w, r, "delete_parcel", err)
		return
	}
	writeMessage(w, http.StatusOK, "parcel deleted")
}

func (h *Handler) parcelWeather(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, r, "parcel_weather")
		return
	}

	res, err := h.service.ParcelWeather(r.Context(), claims.AccountID, chi.URLParam(r, "parcel_id"))
	if err != nil {
		writeMappedError(w, r, "parcel_weather", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}
