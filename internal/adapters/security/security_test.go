package security

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/viralforge/sigpac-weather/internal/domain"
	"github.com/viralforge/sigpac-weather/internal/ports"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newSigner(t *testing.T) *HMACSigner {
	t.Helper()
	signer, err := NewHMACSigner(testSecret, "sigpac-weather")
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	return signer
}

func TestHMACSignerRoundTrip(t *testing.T) {
	t.Parallel()

	signer := newSigner(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	in := ports.TokenClaims{
		AccountID: uuid.New(),
		TokenID:   uuid.New(),
		IssuedAt:  now,
		ExpiresAt: now.Add(30 * 24 * time.Hour),
	}
	token, err := signer.Sign(in)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	out, err := signer.Parse(token, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out.AccountID != in.AccountID || out.TokenID != in.TokenID {
		t.Fatalf("claims mismatch: %+v vs %+v", out, in)
	}
	if !out.ExpiresAt.Equal(in.ExpiresAt) {
		t.Fatalf("expiry mismatch: %s vs %s", out.ExpiresAt, in.ExpiresAt)
	}
}

func TestHMACSignerRejectsExpired(t *testing.T) {
	t.Parallel()

	signer := newSigner(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	token, err := signer.Sign(ports.TokenClaims{
		AccountID: uuid.New(),
		TokenID:   uuid.New(),
		IssuedAt:  now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := signer.Parse(token, now); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected invalid token for expired token, got %v", err)
	}
}

func TestHMACSignerRejectsForeignSecretAndGarbage(t *testing.T) {
	t.Parallel()

	signer := newSigner(t)
	other, err := NewHMACSigner(strings.Repeat("z", 32), "sigpac-weather")
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	now := time.Now().UTC()
	token, err := other.Sign(ports.TokenClaims{AccountID: uuid.New(), TokenID: uuid.New(), IssuedAt: now, ExpiresAt: now.Add(time.Hour)})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tampered := []byte(token)
	pos := len(tampered) - 10
	if tampered[pos] == 'A' {
		tampered[pos] = 'B'
	} else {
		tampered[pos] = 'A'
	}

	for name, raw := range map[string]string{
		"foreign secret": token,
		"garbage":        "not-a-jwt",
		"empty":          "",
		"tampered":       string(tampered),
	} {
		if _, err := signer.Parse(raw, now); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("%s: expected invalid token, got %v", name, err)
		}
	}
}

func TestHMACSignerRejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	signer := newSigner(t)
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Issuer:    "sigpac-weather",
		Subject:   uuid.NewString(),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	raw, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := signer.Parse(raw, now); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected HS512 token to be rejected, got %v", err)
	}
}

func TestNewHMACSignerRejectsShortSecret(t *testing.T) {
	t.Parallel()

	if _, err := NewHMACSigner("short", ""); err == nil {
		t.Fatalf("expected short secret to be rejected")
	}
}

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	hash, err := h.Hash("pw123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "pw123" {
		t.Fatalf("hash must not equal plaintext")
	}
	other, err := h.Hash("pw123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == other {
		t.Fatalf("expected salted hashes to differ")
	}
	if err := h.Compare(hash, "pw123"); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if err := h.Compare(hash, "wrong"); err == nil {
		t.Fatalf("expected mismatch")
	}
}
