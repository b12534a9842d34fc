package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/viralforge/sigpac-weather/internal/domain"
)

// fakeRedis implements the slice of redis.Cmdable the cache adapters call.
// Any other method panics through the nil embedded interface.
type fakeRedis struct {
	redis.Cmdable

	mu      sync.Mutex
	values  map[string]string
	ttls    map[string]time.Duration
	failErr error
	sets    int
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return redis.NewStringResult("", f.failErr)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	if f.failErr != nil {
		return redis.NewStatusResult("", f.failErr)
	}
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	default:
		return redis.NewStatusResult("", errors.New("unsupported value type"))
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Exists(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return redis.NewIntResult(0, f.failErr)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

type countingProvider struct {
	calls  int
	report domain.RainfallReport
	err    error
}

func (p *countingProvider) RainfallReport(context.Context, domain.Parcel, time.Time) (domain.RainfallReport, error) {
	p.calls++
	return p.report, p.err
}
