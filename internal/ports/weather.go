package ports

import (
	"context"
	"time"

	"github.com/viralforge/sigpac-weather/internal/domain"
)

// RainfallProvider produces the rainfall report for a parcel centroid.
type RainfallProvider interface {
	RainfallReport(ctx context.Context, parcel domain.Parcel, now time.Time) (domain.RainfallReport, error)
}

// MunicipalityCatalog searches municipalities by name.
type MunicipalityCatalog interface {
	Search(ctx context.Context, query string, limit int) ([]domain.Municipality, error)
}

// ReverseGeocoder resolves coordinates to an administrative location.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, point domain.Point) (domain.Location, error)
}
