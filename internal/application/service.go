package application

import (
	"time"

	"github.com/viralforge/sigpac-weather/internal/ports"
)

const defaultTokenTTL = 30 * 24 * time.Hour

type Config struct {
	TokenTTL          time.Duration
	MunicipalityLimit int
}

// Service implements account, token and parcel use-cases on top of injected ports.
type Service struct {
	cfg          Config
	accounts     ports.AccountRepository
	parcels      ports.ParcelRepository
	revocations  ports.TokenRevocationStore
	hasher       ports.PasswordHasher
	tokenSigner  ports.TokenSigner
	publisher    ports.EventPublisher
	rainfall     ports.RainfallProvider
	catalog      ports.MunicipalityCatalog
	geocoder     ports.ReverseGeocoder
	storageCheck ports.HealthChecker
	nowFn        func() time.Time
}

type Dependencies struct {
	Config       Config
	Accounts     ports.AccountRepository
	Parcels      ports.ParcelRepository
	Revocations  ports.TokenRevocationStore
	Hasher       ports.PasswordHasher
	TokenSigner  ports.TokenSigner
	Publisher    ports.EventPublisher
	Rainfall     ports.RainfallProvider
	Catalog      ports.MunicipalityCatalog
	Geocoder     ports.ReverseGeocoder
	StorageCheck ports.HealthChecker
	// Clock overrides the wall clock, mainly for tests.
	Clock func() time.Time
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.MunicipalityLimit <= 0 {
		cfg.MunicipalityLimit = 10
	}
	nowFn := deps.Clock
	if nowFn == nil {
		nowFn = func() time.Time { return time.Now().UTC() }
	}
	return &Service{
		cfg:          cfg,
		accounts:     deps.Accounts,
		parcels:      deps.Parcels,
		revocations:  deps.Revocations,
		hasher:       deps.Hasher,
		tokenSigner:  deps.TokenSigner,
		publisher:    deps.Publisher,
		rainfall:     deps.Rainfall,
		catalog:      deps.Catalog,
		geocoder:     deps.Geocoder,
		storageCheck: deps.StorageCheck,
		nowFn:        nowFn,
	}
}
