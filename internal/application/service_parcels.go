package application

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/viralforge/sigpac-weather/internal/domain"
)

func (s *Service) ListParcels(ctx context.Context, ownerID uuid.UUID) ([]ParcelView, error) {
	parcels, err := s.parcels.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]ParcelView, 0, len(parcels))
	for _, p := range parcels {
		out = append(out, toParcelView(p))
	}
	return out, nil
}

func (s *Service) CreateParcel(ctx context.Context, ownerID uuid.UUID, req CreateParcelRequest) (ParcelView, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return ParcelView{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if isEmptyJSON(req.Geometry) {
		return ParcelView{}, fmt.Errorf("%w: geometry is required", domain.ErrValidation)
	}
	var area float64
	if req.Area != nil {
		area = *req.Area
	}
	if err := validateArea(area); err != nil {
		return ParcelView{}, err
	}
	if req.Centroid != nil {
		if err := validatePoint(*req.Centroid); err != nil {
			return ParcelView{}, err
		}
	}

	now := s.nowFn()
	parcel := domain.Parcel{
		ParcelID:     uuid.New(),
		OwnerID:      ownerID,
		Name:         name,
		Province:     strings.TrimSpace(req.Province),
		Municipality: strings.TrimSpace(req.Municipality),
		Polygon:      strings.TrimSpace(req.Polygon),
		ParcelNumber: strings.TrimSpace(req.ParcelNumber),
		Crop:         strings.TrimSpace(req.Crop),
		Area:         area,
		Geometry:     append([]byte(nil), req.Geometry...),
		Centroid:     req.Centroid,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.parcels.Insert(ctx, parcel); err != nil {
		return ParcelView{}, err
	}

	s.publishEvent(ctx, "parcel.created", ownerID.String(), map[string]any{
		"parcel_id":  parcel.ParcelID,
		"owner_id":   ownerID,
		"created_at": now,
	})
	return toParcelView(parcel), nil
}

func (s *Service) GetParcel(ctx context.Context, ownerID uuid.UUID, rawID string) (ParcelView, error) {
	parcel, err := s.ownedParcel(ctx, ownerID, rawID)
	if err != nil {
		return ParcelView{}, err
	}
	return toParcelView(parcel), nil
}

func (s *Service) UpdateParcel(ctx context.Context, ownerID uuid.UUID, rawID string, req UpdateParcelRequest) (ParcelView, error) {
	parcelID, err := parseParcelID(rawID)
	if err != nil {
		return ParcelView{}, err
	}

	patch := domain.ParcelPatch{
		Province:     trimmedPtr(req.Province),
		Municipality: trimmedPtr(req.Municipality),
		Crop:         trimmedPtr(req.Crop),
		Area:         req.Area,
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return ParcelView{}, fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
		}
		patch.Name = &name
	}
	if req.Area != nil {
		if err := validateArea(*req.Area); err != nil {
			return ParcelView{}, err
		}
	}

	now := s.nowFn()
	updated, err := s.parcels.UpdateForOwner(ctx, ownerID, parcelID, patch, now)
	if err != nil {
		return ParcelView{}, err
	}

	s.publishEvent(ctx, "parcel.updated", ownerID.String(), map[string]any{
		"parcel_id":  parcelID,
		"owner_id":   ownerID,
		"updated_at": now,
	})
	return toParcelView(updated), nil
}

func (s *Service) DeleteParcel(ctx context.Context, ownerID uuid.UUID, rawID string) error {
	parcelID, err := parseParcelID(rawID)
	if err != nil {
		return err
	}
	if err := s.parcels.DeleteForOwner(ctx, ownerID, parcelID); err != nil {
		return err
	}
	s.publishEvent(ctx, "parcel.deleted", ownerID.String(), map[string]any{
		"parcel_id":  parcelID,
		"owner_id":   ownerID,
		"deleted_at": s.nowFn(),
	})
	return nil
}

// ParcelWeather returns the parcel with its rainfall report. Parcels without a centroid
// have nothing to locate a report on, so the report is omitted.
func (s *Service) ParcelWeather(ctx context.Context, ownerID uuid.UUID, rawID string) (ParcelWeatherResponse, error) {
	parcel, err := s.ownedParcel(ctx, ownerID, rawID)
	if err != nil {
		return ParcelWeatherResponse{}, err
	}
	res := ParcelWeatherResponse{Parcel: toParcelView(parcel)}
	if parcel.Centroid == nil || s.rainfall == nil {
		return res, nil
	}
	report, err := s.rainfall.RainfallReport(ctx, parcel, s.nowFn())
	if err != nil {
		return ParcelWeatherResponse{}, fmt.Errorf("rainfall report: %w", err)
	}
	res.Weather = &report
	return res, nil
}

func (s *Service) ownedParcel(ctx context.Context, ownerID uuid.UUID, rawID string) (domain.Parcel, error) {
	parcelID, err := parseParcelID(rawID)
	if err != nil {
		return domain.Parcel{}, err
	}
	return s.parcels.GetForOwner(ctx, ownerID, parcelID)
}

// parseParcelID reports a malformed id as not found, the same answer as for an id
// that belongs to another account.
func parseParcelID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, domain.ErrNotFound
	}
	return id, nil
}

func isEmptyJSON(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func validateArea(area float64) error {
	if area < 0 {
		return fmt.Errorf("%w: area must be non-negative", domain.ErrValidation)
	}
	return nil
}

func trimmedPtr(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}
