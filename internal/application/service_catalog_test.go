package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/viralforge/sigpac-weather/internal/application"
	"github.com/viralforge/sigpac-weather/internal/domain"
)

func TestSearchMunicipalities(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	all, err := f.service.SearchMunicipalities(ctx, "")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(all) != 10 {
		t.Fatalf("expected the whole catalog, got %d", len(all))
	}

	none, err := f.service.SearchMunicipalities(ctx, "atlantis")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", none)
	}
}

func TestReverseGeocodeValidatesPoint(t *testing.T) {
	t.Parallel()

	f := newFixture()
	loc, err := f.service.ReverseGeocode(context.Background(), domain.Point{Lat: 36.68, Lng: -6.13})
	if err != nil {
		t.Fatalf("reverse geocode failed: %v", err)
	}
	if loc.Province == "" || loc.Municipality == "" {
		t.Fatalf("unexpected location %+v", loc)
	}
	if _, err := f.service.ReverseGeocode(context.Background(), domain.Point{Lat: 0, Lng: 200}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestHealthReportsStorageState(t *testing.T) {
	t.Parallel()

	up := newFixture().service.Health(context.Background())
	if up.Status != "ok" || up.Storage != "connected" {
		t.Fatalf("unexpected health %+v", up)
	}

	down := newFixtureWith(func(d *application.Dependencies) {
		d.StorageCheck = failingHealth{}
	}).service.Health(context.Background())
	if down.Status != "ok" || down.Storage != "disconnected" {
		t.Fatalf("unexpected health %+v", down)
	}
}
