package application_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/viralforge/sigpac-weather/internal/adapters/memory"
	"github.com/viralforge/sigpac-weather/internal/adapters/security"
	"github.com/viralforge/sigpac-weather/internal/adapters/weather"
	"github.com/viralforge/sigpac-weather/internal/application"
)

const fixtureSecret = "application-test-secret-0123456789"

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type publishedEvent struct {
	eventType    string
	payload      string
	partitionKey string
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	fail   bool
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, payload []byte, partitionKey string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.events = append(p.events, publishedEvent{eventType: eventType, payload: string(payload), partitionKey: partitionKey})
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.eventType)
	}
	return out
}

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type failingHealth struct{}

func (failingHealth) Ping(context.Context) error { return errors.New("connection refused") }

type fixture struct {
	service   *application.Service
	clock     *manualClock
	publisher *recordingPublisher
}

func newFixture() fixture {
	return newFixtureWith(func(*application.Dependencies) {})
}

func newFixtureWith(mutate func(*application.Dependencies)) fixture {
	signer, err := security.NewHMACSigner(fixtureSecret, "sigpac-test")
	if err != nil {
		panic(err)
	}
	// Revocation entries expire against the wall clock, so the fixture clock starts there.
	clock := &manualClock{now: time.Now().UTC().Truncate(time.Second)}
	publisher := &recordingPublisher{}
	parcels := memory.NewParcelRepository()
	deps := application.Dependencies{
		Accounts:     memory.NewAccountRepository(),
		Parcels:      parcels,
		Revocations:  memory.NewRevocationStore(),
		Hasher:       plainHasher{},
		TokenSigner:  signer,
		Publisher:    publisher,
		Rainfall:     weather.NewSimulatedProvider(),
		Catalog:      weather.NewStaticCatalog(),
		Geocoder:     weather.NewPlaceholderGeocoder(),
		StorageCheck: parcels,
		Clock:        clock.Now,
	}
	mutate(&deps)
	return fixture{
		service:   application.NewService(deps),
		clock:     clock,
		publisher: publisher,
	}
}

func (f fixture) register(username, email string) (application.AuthResponse, error) {
	return f.service.Register(context.Background(), application.RegisterRequest{
		Username:        username,
		DisplayName:     strings.ToUpper(username),
		Email:           email,
		Password:        "correct horse",
		ConfirmPassword: "correct horse",
	})
}
