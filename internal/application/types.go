package application

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/sigpac-weather/internal/domain"
)

type RegisterRequest struct {
	Username        string `json:"username"`
	DisplayName     string `json:"display_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type LoginRequest struct {
	// Identifier is either the username or the email of the account.
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type AccountView struct {
	AccountID   uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
}

type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	Account   AccountView `json:"account"`
}

type CreateParcelRequest struct {
	Name         string          `json:"name"`
	Province     string          `json:"province"`
	Municipality string          `json:"municipality"`
	Polygon      string          `json:"polygon"`
	ParcelNumber string          `json:"parcel_number"`
	Crop         string          `json:"crop"`
	Area         *float64        `json:"area"`
	Geometry     json.RawMessage `json:"geometry"`
	Centroid     *domain.Point   `json:"centroid"`
}

// UpdateParcelRequest carries only the fields an owner may change. Anything else in the
// request body is dropped during decoding.
type UpdateParcelRequest struct {
	Name         *string  `json:"name"`
	Province     *string  `json:"province"`
	Municipality *string  `json:"municipality"`
	Crop         *string  `json:"crop"`
	Area         *float64 `json:"area"`
}

type ParcelView struct {
	ParcelID     uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Province     string          `json:"province"`
	Municipality string          `json:"municipality"`
	Polygon      string          `json:"polygon"`
	ParcelNumber string          `json:"parcel_number"`
	Crop         string          `json:"crop"`
	Area         float64         `json:"area"`
	Geometry     json.RawMessage `json:"geometry"`
	Centroid     *domain.Point   `json:"centroid,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type ParcelWeatherResponse struct {
	Parcel  ParcelView             `json:"parcel"`
	Weather *domain.RainfallReport `json:"weather,omitempty"`
}

type HealthReport struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Storage   string    `json:"storage"`
}

func toAccountView(a domain.Account) AccountView {
	return AccountView{
		AccountID:   a.AccountID,
		Username:    a.Username,
		DisplayName: a.DisplayName,
		Email:       a.Email,
		CreatedAt:   a.CreatedAt,
	}
}

func toParcelView(p domain.Parcel) ParcelView {
	return ParcelView{
		ParcelID:     p.ParcelID,
		Name:         p.Name,
		Province:     p.Province,
		Municipality: p.Municipality,
		Polygon:      p.Polygon,
		ParcelNumber: p.ParcelNumber,
		Crop:         p.Crop,
		Area:         p.Area,
		Geometry:     p.Geometry,
		Centroid:     p.Centroid,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
