package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/sigpac-weather/internal/domain"
)

func sampleReport(alert string) domain.RainfallReport {
	return domain.RainfallReport{
		Daily:       []domain.RainSample{{Label: "01/06", Rainfall: 12.5}},
		Alert:       alert,
		GeneratedAt: time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestCachedRainfallMissFillsThenHits(t *testing.T) {
	t.Parallel()

	client := newFakeRedis()
	next := &countingProvider{report: sampleReport("fresh")}
	provider := NewCachedRainfallProvider(client, next)
	parcel := domain.Parcel{ParcelID: uuid.New()}
	now := time.Date(2026, 6, 1, 22, 0, 0, 0, time.UTC)

	first, err := provider.RainfallReport(context.Background(), parcel, now)
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if first.Alert != "fresh" || next.calls != 1 {
		t.Fatalf("expected a miss served by the wrapped provider, got alert=%q calls=%d", first.Alert, next.calls)
	}
	key := rainfallKey(parcel, now)
	if _, ok := client.values[key]; !ok {
		t.Fatalf("expected report stored under %s", key)
	}
	if client.ttls[key] != 2*time.Hour {
		t.Fatalf("expected ttl until end of day, got %s", client.ttls[key])
	}

	second, err := provider.RainfallReport(context.Background(), parcel, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if next.calls != 1 {
		t.Fatalf("expected cache hit, wrapped provider called %d times", next.calls)
	}
	if second.Alert != "fresh" || len(second.Daily) != 1 || second.Daily[0].Rainfall != 12.5 {
		t.Fatalf("unexpected cached report %+v", second)
	}
}

func TestCachedRainfallServesExistingEntry(t *testing.T) {
	t.Parallel()

	client := newFakeRedis()
	next := &countingProvider{report: sampleReport("from provider")}
	provider := NewCachedRainfallProvider(client, next)
	parcel := domain.Parcel{ParcelID: uuid.New()}
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	raw, err := json.Marshal(sampleReport("from cache"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	client.values[rainfallKey(parcel, now)] = string(raw)

	got, err := provider.RainfallReport(context.Background(), parcel, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Alert != "from cache" || next.calls != 0 {
		t.Fatalf("expected cached entry, got alert=%q calls=%d", got.Alert, next.calls)
	}
}

func TestCachedRainfallReplacesUndecodableEntry(t *testing.T) {
	t.Parallel()

	client := newFakeRedis()
	next := &countingProvider{report: sampleReport("rebuilt")}
	provider := NewCachedRainfallProvider(client, next)
	parcel := domain.Parcel{ParcelID: uuid.New()}
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	key := rainfallKey(parcel, now)
	client.values[key] = "{not json"

	got, err := provider.RainfallReport(context.Background(), parcel, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Alert != "rebuilt" || next.calls != 1 {
		t.Fatalf("expected fallback to wrapped provider, got alert=%q calls=%d", got.Alert, next.calls)
	}
	var stored domain.RainfallReport
	if err := json.Unmarshal([]byte(client.values[key]), &stored); err != nil {
		t.Fatalf("entry was not overwritten with a valid report: %v", err)
	}
}

func TestCachedRainfallFallsBackWhenRedisFails(t *testing.T) {
	t.Parallel()

	client := newFakeRedis()
	client.failErr = errors.New("connection refused")
	next := &countingProvider{report: sampleReport("direct")}
	provider := NewCachedRainfallProvider(client, next)

	got, err := provider.RainfallReport(context.Background(), domain.Parcel{ParcelID: uuid.New()}, time.Now())
	if err != nil {
		t.Fatalf("redis failure must not surface, got %v", err)
	}
	if got.Alert != "direct" || next.calls != 1 {
		t.Fatalf("expected wrapped provider result, got alert=%q calls=%d", got.Alert, next.calls)
	}
	if client.sets != 1 {
		t.Fatalf("expected one best-effort write attempt, got %d", client.sets)
	}
}

func TestCachedRainfallPropagatesProviderError(t *testing.T) {
	t.Parallel()

	client := newFakeRedis()
	boom := errors.New("upstream down")
	provider := NewCachedRainfallProvider(client, &countingProvider{err: boom})

	if _, err := provider.RainfallReport(context.Background(), domain.Parcel{ParcelID: uuid.New()}, time.Now()); !errors.Is(err, boom) {
		t.Fatalf("expected provider error, got %v", err)
	}
	if client.sets != 0 {
		t.Fatalf("failed reports must not be cached, got %d writes", client.sets)
	}
}

func TestRedisRevocationStore(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	client := newFakeRedis()
	store := NewRedisRevocationStore(client)
	store.nowFn = func() time.Time { return now }
	ctx := context.Background()

	live := uuid.New()
	if err := store.Revoke(ctx, live, now.Add(30*time.Minute)); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if got := client.ttls[revokedKey(live)]; got != 30*time.Minute {
		t.Fatalf("expected ttl matching token expiry, got %s", got)
	}
	revoked, err := store.IsRevoked(ctx, live)
	if err != nil || !revoked {
		t.Fatalf("expected revoked token, got revoked=%v err=%v", revoked, err)
	}

	expired := uuid.New()
	if err := store.Revoke(ctx, expired, now); err != nil {
		t.Fatalf("revoke of expired token failed: %v", err)
	}
	if client.sets != 1 {
		t.Fatalf("expired tokens must not be written, got %d writes", client.sets)
	}
	if revoked, err := store.IsRevoked(ctx, expired); err != nil || revoked {
		t.Fatalf("expected unrevoked, got revoked=%v err=%v", revoked, err)
	}

	client.failErr = errors.New("connection refused")
	if _, err := store.IsRevoked(ctx, live); err == nil {
		t.Fatalf("expected redis error to surface")
	}
}
