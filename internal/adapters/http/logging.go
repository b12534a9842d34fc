package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const serviceName = "sigpac-weather"

func httpLogger() *slog.Logger {
	return slog.Default().With(
		"service", serviceName,
		"module", "http",
		"layer", "adapter",
	)
}

// routePattern returns the matched chi pattern so parcel ids stay out of log keys.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

func levelForStatus(statusCode int) slog.Level {
	switch {
	case statusCode >= 500:
		return slog.LevelError
	case statusCode >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// logOperationFailure records a handled failure. Credentials and tokens never reach it:
// callers pass the domain error, whose messages name fields, not values.
func logOperationFailure(r *http.Request, operation string, statusCode int, code string, err error) {
	fields := []any{
		"operation", operation,
		"outcome", "failure",
		"method", r.Method,
		"route", routePattern(r),
		"status_code", statusCode,
		"error_code", code,
		"request_id", requestIDFromContext(r.Context()),
	}
	if err != nil {
		fields = append(fields, "error", err.Error())
	}
	httpLogger().Log(r.Context(), levelForStatus(statusCode), "http operation failed", fields...)
}
