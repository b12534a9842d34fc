package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/viralforge/sigpac-weather/internal/domain"
	"github.com/viralforge/sigpac-weather/internal/ports"
)

const rainfallKeyPrefix = "weather:rainfall:"

// CachedRainfallProvider serves rainfall reports from Redis and fills misses from the
// wrapped provider. Entries live until the end of the UTC day they were built for.
// Redis failures fall back to the wrapped provider.
type CachedRainfallProvider struct {
	client redis.Cmdable
	next   ports.RainfallProvider
	logger *slog.Logger
}

func NewCachedRainfallProvider(client redis.Cmdable, next ports.RainfallProvider) *CachedRainfallProvider {
	return &CachedRainfallProvider{
		client: client,
		next:   next,
		logger: slog.Default().With("module", "cache", "layer", "adapter"),
	}
}

func (p *CachedRainfallProvider) RainfallReport(ctx context.Context, parcel domain.Parcel, now time.Time) (domain.RainfallReport, error) {
	key := rainfallKey(parcel, now)

	raw, err := p.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var report domain.RainfallReport
		if jsonErr := json.Unmarshal(raw, &report); jsonErr == nil {
			return report, nil
		}
	case !errors.Is(err, redis.Nil):
		p.logger.WarnContext(ctx, "rainfall cache read failed",
			"operation", "rainfall_cache_get",
			"outcome", "failure",
			"error", err,
		)
	}

	report, err := p.next.RainfallReport(ctx, parcel, now)
	if err != nil {
		return domain.RainfallReport{}, err
	}
	if encoded, jsonErr := json.Marshal(report); jsonErr == nil {
		if setErr := p.client.Set(ctx, key, encoded, untilEndOfDay(now)).Err(); setErr != nil {
			p.logger.WarnContext(ctx, "rainfall cache write failed",
				"operation", "rainfall_cache_set",
				"outcome", "failure",
				"error", setErr,
			)
		}
	}
	return report, nil
}

func rainfallKey(parcel domain.Parcel, now time.Time) string {
	return rainfallKeyPrefix + parcel.ParcelID.String() + ":" + now.UTC().Format(time.DateOnly)
}

func untilEndOfDay(now time.Time) time.Duration {
	now = now.UTC()
	end := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	return end.Sub(now)
}
