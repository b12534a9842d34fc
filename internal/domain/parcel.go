package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Parcel is a tract of agricultural land owned by exactly one account.
// Geometry is stored as received.
type Parcel struct {
	ParcelID     uuid.UUID
	OwnerID      uuid.UUID
	Name         string
	Province     string
	Municipality string
	Polygon      string
	ParcelNumber string
	Crop         string
	Area         float64
	Geometry     json.RawMessage
	Centroid     *Point
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ParcelPatch lists the fields an owner may change after creation.
// Nil fields are left untouched.
type ParcelPatch struct {
	Name         *string
	Province     *string
	Municipality *string
	Crop         *string
	Area         *float64
}

// Apply copies the non-nil patch fields onto p.
func (patch ParcelPatch) Apply(p *Parcel) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Province != nil {
		p.Province = *patch.Province
	}
	if patch.Municipality != nil {
		p.Municipality = *patch.Municipality
	}
	if patch.Crop != nil {
		p.Crop = *patch.Crop
	}
	if patch.Area != nil {
		p.Area = *patch.Area
	}
}
