package mongo

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/viralforge/sigpac-weather/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type accountDocument struct {
	ID           string             `bson:"_id"`
	Username     string             `bson:"username"`
	DisplayName  string             `bson:"display_name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    primitive.DateTime `bson:"created_at"`
}

type pointDocument struct {
	Lat float64 `bson:"lat"`
	Lng float64 `bson:"lng"`
}

// parcelDocument keeps the geometry as the raw JSON text it was submitted with.
// Seq is assigned at insert and breaks created_at ties, which only hold milliseconds.
type parcelDocument struct {
	ID           string             `bson:"_id"`
	OwnerID      string             `bson:"owner_id"`
	Name         string             `bson:"name"`
	Province     string             `bson:"province"`
	Municipality string             `bson:"municipality"`
	Polygon      string             `bson:"polygon"`
	ParcelNumber string             `bson:"parcel_number"`
	Crop         string             `bson:"crop"`
	Area         float64            `bson:"area"`
	Geometry     string             `bson:"geometry"`
	Centroid     *pointDocument     `bson:"centroid,omitempty"`
	CreatedAt    primitive.DateTime `bson:"created_at"`
	UpdatedAt    primitive.DateTime `bson:"updated_at"`
	Seq          primitive.ObjectID `bson:"seq"`
}

func accountToDocument(a domain.Account) accountDocument {
	return accountDocument{
		ID:           a.AccountID.String(),
		Username:     a.Username,
		DisplayName:  a.DisplayName,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		CreatedAt:    primitive.NewDateTimeFromTime(a.CreatedAt),
	}
}

func (d accountDocument) toDomain() (domain.Account, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.Account{}, err
	}
	return domain.Account{
		AccountID:    id,
		Username:     d.Username,
		DisplayName:  d.DisplayName,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt.Time().UTC(),
	}, nil
}

func parcelToDocument(p domain.Parcel) parcelDocument {
	d := parcelDocument{
		ID:           p.ParcelID.String(),
		OwnerID:      p.OwnerID.String(),
		Name:         p.Name,
		Province:     p.Province,
		Municipality: p.Municipality,
		Polygon:      p.Polygon,
		ParcelNumber: p.ParcelNumber,
		Crop:         p.Crop,
		Area:         p.Area,
		Geometry:     string(p.Geometry),
		CreatedAt:    primitive.NewDateTimeFromTime(p.CreatedAt),
		UpdatedAt:    primitive.NewDateTimeFromTime(p.UpdatedAt),
		Seq:          primitive.NewObjectID(),
	}
	if p.Centroid != nil {
		d.Centroid = &pointDocument{Lat: p.Centroid.Lat, Lng: p.Centroid.Lng}
	}
	return d
}

func (d parcelDocument) toDomain() (domain.Parcel, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.Parcel{}, err
	}
	owner, err := uuid.Parse(d.OwnerID)
	if err != nil {
		return domain.Parcel{}, err
	}
	p := domain.Parcel{
		ParcelID:     id,
		OwnerID:      owner,
		Name:         d.Name,
		Province:     d.Province,
		Municipality: d.Municipality,
		Polygon:      d.Polygon,
		ParcelNumber: d.ParcelNumber,
		Crop:         d.Crop,
		Area:         d.Area,
		Geometry:     json.RawMessage(d.Geometry),
		CreatedAt:    d.CreatedAt.Time().UTC(),
		UpdatedAt:    d.UpdatedAt.Time().UTC(),
	}
	if d.Centroid != nil {
		p.Centroid = &domain.Point{Lat: d.Centroid.Lat, Lng: d.Centroid.Lng}
	}
	return p, nil
}
