package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/viralforge/sigpac-weather/internal/application"
)

// Handler is the HTTP adapter entrypoint for account, parcel and catalog use-cases.
type Handler struct {
	service *application.Service
}

func NewHandler(service *application.Service) *Handler {
	return &Handler{service: service}
}

// NewRouter registers the public API and wraps it with CORS for the given origins.
// An empty origin list allows any origin.
func NewRouter(handler *Handler, corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.healthz)
	r.Get("/readyz", handler.readyz)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handler.health)
		r.Get("/municipalities", handler.searchMunicipalities)
		r.Get("/geocode/reverse", handler.reverseGeocode)

		r.Post("/auth/register", handler.register)
		r.Post("/auth/login", handler.login)

		r.Group(func(r chi.Router) {
			r.Use(handler.authMiddleware)
			r.Get("/auth/profile", handler.profile)
			r.Post("/auth/logout", handler.logout)

			r.Get("/parcels", handler.listParcels)
			r.Post("/parcels", handler.createParcel)
			r.Get("/parcels/{parcel_id}", handler.getParcel)
			r.Put("/parcels/{parcel_id}", handler.updateParcel)
			r.Delete("/parcels/{parcel_id}", handler.deleteParcel)
			r.Get("/parcels/{parcel_id}/weather", handler.parcelWeather)
		})
	})

	return cors.New(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
	}).Handler(r)
}
