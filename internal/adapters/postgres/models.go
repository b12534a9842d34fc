package postgres

import (
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/sigpac-weather/internal/domain"
)

type accountModel struct {
	AccountID    string    `gorm:"column:account_id;primaryKey"`
	Username     string    `gorm:"column:username"`
	DisplayName  string    `gorm:"column:display_name"`
	Email        string    `gorm:"column:email"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime:false"`
}

func (accountModel) TableName() string { return "accounts" }

// parcelModel leaves out the seq column; it only drives insertion ordering in queries.
type parcelModel struct {
	ParcelID     string    `gorm:"column:parcel_id;primaryKey"`
	OwnerID      string    `gorm:"column:owner_id"`
	Name         string    `gorm:"column:name"`
	Province     string    `gorm:"column:province"`
	Municipality string    `gorm:"column:municipality"`
	Polygon      string    `gorm:"column:polygon"`
	ParcelNumber string    `gorm:"column:parcel_number"`
	Crop         string    `gorm:"column:crop"`
	Area         float64   `gorm:"column:area"`
	Geometry     []byte    `gorm:"column:geometry"`
	CentroidLat  *float64  `gorm:"column:centroid_lat"`
	CentroidLng  *float64  `gorm:"column:centroid_lng"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (parcelModel) TableName() string { return "parcels" }

func accountToModel(a domain.Account) accountModel {
	return accountModel{
		AccountID:    a.AccountID.String(),
		Username:     a.Username,
		DisplayName:  a.DisplayName,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt,
	}
}

func (m accountModel) toDomain() (domain.Account, error) {
	id, err := uuid.Parse(m.AccountID)
	if err != nil {
		return domain.Account{}, err
	}
	return domain.Account{
		AccountID:    id,
		Username:     m.Username,
		DisplayName:  m.DisplayName,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt.UTC(),
	}, nil
}

func parcelToModel(p domain.Parcel) parcelModel {
	m := parcelModel{
		ParcelID:     p.ParcelID.String(),
		OwnerID:      p.OwnerID.String(),
		Name:         p.Name,
		Province:     p.Province,
		Municipality: p.Municipality,
		Polygon:      p.Polygon,
		ParcelNumber: p.ParcelNumber,
		Crop:         p.Crop,
		Area:         p.Area,
		Geometry:     []byte(p.Geometry),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.Centroid != nil {
		lat, lng := p.Centroid.Lat, p.Centroid.Lng
		m.CentroidLat, m.CentroidLng = &lat, &lng
	}
	return m
}

func (m parcelModel) toDomain() (domain.Parcel, error) {
	id, err := uuid.Parse(m.ParcelID)
	if err != nil {
		return domain.Parcel{}, err
	}
	owner, err := uuid.Parse(m.OwnerID)
	if err != nil {
		return domain.Parcel{}, err
	}
	p := domain.Parcel{
		ParcelID:     id,
		OwnerID:      owner,
		Name:         m.Name,
		Province:     m.Province,
		Municipality: m.Municipality,
		Polygon:      m.Polygon,
		ParcelNumber: m.ParcelNumber,
		Crop:         m.Crop,
		Area:         m.Area,
		Geometry:     append([]byte(nil), m.Geometry...),
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
	if m.CentroidLat != nil && m.CentroidLng != nil {
		p.Centroid = &domain.Point{Lat: *m.CentroidLat, Lng: *m.CentroidLng}
	}
	return p, nil
}
