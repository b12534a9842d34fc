package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/viralforge/sigpac-weather/internal/domain"
	"github.com/viralforge/sigpac-weather/internal/ports"
)

const minSecretLength = 32

// HMACSigner signs session tokens with HS256 under a single process-wide secret.
type HMACSigner struct {
	secret []byte
	issuer string
}

// NewHMACSigner builds a signer. Short secrets are refused.
func NewHMACSigner(secret, issuer string) (*HMACSigner, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", minSecretLength)
	}
	return &HMACSigner{secret: []byte(secret), issuer: issuer}, nil
}

func (s *HMACSigner) Sign(claims ports.TokenClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   claims.AccountID.String(),
		ID:        claims.TokenID.String(),
		IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
		ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
	})
	return token.SignedString(s.secret)
}

// Parse verifies the signature and that now is before the expiry. No leeway is applied.
func (s *HMACSigner) Parse(raw string, now time.Time) (ports.TokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return ports.TokenClaims{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return ports.TokenClaims{}, domain.ErrInvalidToken
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ports.TokenClaims{}, fmt.Errorf("%w: parse subject: %v", domain.ErrInvalidToken, err)
	}
	tokenID, err := uuid.Parse(claims.ID)
	if err != nil {
		return ports.TokenClaims{}, fmt.Errorf("%w: parse jti: %v", domain.ErrInvalidToken, err)
	}
	if claims.IssuedAt == nil {
		return ports.TokenClaims{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, errors.New("missing iat"))
	}

	return ports.TokenClaims{
		AccountID: accountID,
		TokenID:   tokenID,
		IssuedAt:  claims.IssuedAt.Time.UTC(),
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}
