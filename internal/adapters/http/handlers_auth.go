package http

import (
	"net/http"

	"github.com/viralforge/sigpac-weather/internal/application"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req application.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, r, "register", err)
		return
	}

	res, err := h.service.Register(r.Context(), req)
	if err != nil {
		writeMappedError(w, r, "register", err)
		return
	}
	writeSuccess(w, http.StatusCreated, res)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req application.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, r, "login", err)
		return
	}

	res, err := h.service.Login(r.Context(), req)
	if err != nil {
		writeMappedError(w, r, "login", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, r, "profile")
		return
	}

	res, err := h.service.Profile(r.Context(), claims.AccountID)
	if err != nil {
		writeMappedError(w, r, "profile", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, r, "logout")
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		writeMappedError(w, r, "logout", err)
		return
	}
	writeMessage(w, http.StatusOK, "logged out")
}
