package weather

import (
	"context"
	"strings"

	"github.com/viralforge/sigpac-weather/internal/domain"
)

var municipalities = []domain.Municipality{
	{Code: "28079", Name: "Madrid", Province: "Madrid"},
	{Code: "41091", Name: "Sevilla", Province: "Sevilla"},
	{Code: "08019", Name: "Barcelona", Province: "Barcelona"},
	{Code: "46250", Name: "Valencia", Province: "Valencia"},
	{Code: "11012", Name: "Cádiz", Province: "Cádiz"},
	{Code: "14021", Name: "Córdoba", Province: "Córdoba"},
	{Code: "18087", Name: "Granada", Province: "Granada"},
	{Code: "21041", Name: "Huelva", Province: "Huelva"},
	{Code: "23050", Name: "Jaén", Province: "Jaén"},
	{Code: "29067", Name: "Málaga", Province: "Málaga"},
}

// StaticCatalog searches the built-in municipality list.
type StaticCatalog struct {
	items []domain.Municipality
}

func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{items: municipalities}
}

// Search matches query as a case-insensitive substring of the name. An empty query
// matches everything.
func (c *StaticCatalog) Search(_ context.Context, query string, limit int) ([]domain.Municipality, error) {
	q := strings.ToLower(query)
	out := make([]domain.Municipality, 0)
	for _, m := range c.items {
		if limit > 0 && len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(m.Name), q) {
			out = append(out, m)
		}
	}
	return out, nil
}

// PlaceholderGeocoder answers every lookup with the same agricultural zone until a real
// geocoding backend is wired in.
type PlaceholderGeocoder struct{}

func NewPlaceholderGeocoder() *PlaceholderGeocoder {
	return &PlaceholderGeocoder{}
}

func (PlaceholderGeocoder) Reverse(context.Context, domain.Point) (domain.Location, error) {
	return domain.Location{
		Province:     "Sevilla",
		Municipality: "Jerez de la Frontera",
		Place:        "Zona Agrícola Norte",
	}, nil
}
