package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/viralforge/sigpac-weather/internal/domain"
)

func (s *Service) SearchMunicipalities(ctx context.Context, query string) ([]domain.Municipality, error) {
	items, err := s.catalog.Search(ctx, strings.TrimSpace(query), s.cfg.MunicipalityLimit)
	if err != nil {
		return nil, fmt.Errorf("search municipalities: %w", err)
	}
	if items == nil {
		items = []domain.Municipality{}
	}
	return items, nil
}

func (s *Service) ReverseGeocode(ctx context.Context, point domain.Point) (domain.Location, error) {
	if err := validatePoint(point); err != nil {
		return domain.Location{}, err
	}
	return s.geocoder.Reverse(ctx, point)
}

// Health reports process liveness plus whether the storage backend answers.
func (s *Service) Health(ctx context.Context) HealthReport {
	report := HealthReport{Status: "ok", Timestamp: s.nowFn(), Storage: "connected"}
	if s.storageCheck == nil {
		return report
	}
	if err := s.storageCheck.Ping(ctx); err != nil {
		report.Storage = "disconnected"
	}
	return report
}

func validatePoint(p domain.Point) error {
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: lat must be within [-90, 90]", domain.ErrValidation)
	}
	if p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("%w: lng must be within [-180, 180]", domain.ErrValidation)
	}
	return nil
}
