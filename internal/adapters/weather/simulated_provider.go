package weather

import (
	"context"
	"encoding/binary"
	"math"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/viralforge/sigpac-weather/internal/domain"
)

const (
	AlertNormal     = "normal"
	AlertRunoffRisk = "runoff risk"

	dailyDays      = 30
	annualYears    = 5
	historicYears  = 10
	alertWindow    = 7
	alertThreshold = 12.0
)

type rainRange struct{ min, max float64 }

var (
	dailyRange    = rainRange{0, 15}
	monthlyRange  = rainRange{20, 80}
	annualRange   = rainRange{400, 800}
	historicRange = rainRange{350, 850}
)

// SimulatedProvider generates placeholder rainfall series. The generator is seeded from
// the parcel id and the UTC day, so one parcel gets the same series all day long.
type SimulatedProvider struct{}

func NewSimulatedProvider() *SimulatedProvider {
	return &SimulatedProvider{}
}

var monthLabels = [12]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

func (p *SimulatedProvider) RainfallReport(_ context.Context, parcel domain.Parcel, now time.Time) (domain.RainfallReport, error) {
	now = now.UTC()
	rng := rand.New(rand.NewPCG(seedFor(parcel, now)))

	report := domain.RainfallReport{
		Daily:       make([]domain.RainSample, 0, dailyDays),
		Monthly:     make([]domain.RainSample, 0, int(now.Month())),
		Annual:      make([]domain.RainSample, 0, annualYears),
		Historic:    make([]domain.RainSample, 0, historicYears),
		GeneratedAt: now,
	}
	for i := dailyDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		report.Daily = append(report.Daily, domain.RainSample{Label: day.Format("02/01"), Rainfall: dailyRange.sample(rng)})
	}
	for m := time.January; m <= now.Month(); m++ {
		report.Monthly = append(report.Monthly, domain.RainSample{Label: monthLabels[m-1], Rainfall: monthlyRange.sample(rng)})
	}
	for i := annualYears - 1; i >= 0; i-- {
		report.Annual = append(report.Annual, domain.RainSample{Label: strconv.Itoa(now.Year() - i), Rainfall: annualRange.sample(rng)})
	}
	for i := historicYears - 1; i >= 0; i-- {
		report.Historic = append(report.Historic, domain.RainSample{Label: strconv.Itoa(now.Year() - i), Rainfall: historicRange.sample(rng)})
	}
	report.Alert = runoffAlert(report.Daily)
	return report, nil
}

// runoffAlert flags heavy rain in the most recent days of the daily series.
func runoffAlert(daily []domain.RainSample) string {
	start := len(daily) - alertWindow
	if start < 0 {
		start = 0
	}
	for _, s := range daily[start:] {
		if s.Rainfall > alertThreshold {
			return AlertRunoffRisk
		}
	}
	return AlertNormal
}

func (r rainRange) sample(rng *rand.Rand) float64 {
	v := r.min + rng.Float64()*(r.max-r.min)
	return math.Round(v*10) / 10
}

func seedFor(parcel domain.Parcel, now time.Time) (uint64, uint64) {
	id := parcel.ParcelID
	hi := binary.BigEndian.Uint64(id[:8])
	lo := binary.BigEndian.Uint64(id[8:])
	day := uint64(now.Year())*1000 + uint64(now.YearDay())
	return hi ^ day, lo
}
