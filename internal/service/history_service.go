package service

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/vishal-chaure/RapidPSv/internal/domain"
	"github.com/vishal-chaure/RapidPSv/pkg/utils"
)

// historyDays is the length of the synthetic series kept per ward.
const historyDays = 30

// historyPeriods are the aggregation buckets for period stats, in response
// order. Every hour of the day belongs to exactly one period.
var historyPeriods = []struct {
	name  string
	hours []int
}{
	{"morning", []int{6, 7, 8, 9, 10, 11}},
	{"afternoon", []int{12, 13, 14, 15, 16, 17}},
	{"evening", []int{18, 19, 20, 21}},
	{"night", []int{22, 23, 0, 1, 2, 3, 4, 5}},
}

// HistoryService serves the 30-day synthetic safety series. The series is
// generated once at construction from the injected clock and read-only for
// the process lifetime.
type HistoryService struct {
	series map[string][]domain.DailyRecord
}

// NewHistoryService generates the per-ward series for the store's wards.
func NewHistoryService(wardSvc *WardService, clock clockwork.Clock) *HistoryService {
	s := &HistoryService{series: make(map[string][]domain.DailyRecord)}

	now := clock.Now()
	for _, w := range wardSvc.Wards() {
		daily := make([]domain.DailyRecord, 0, historyDays)
		for dayOffset := historyDays; dayOffset > 0; dayOffset-- {
			date := now.AddDate(0, 0, -dayOffset)
			daily = append(daily, generateDay(date, w.ID))
		}
		s.series[w.ID] = daily
	}
	return s
}

// generateDay builds 24 hourly records for one ward and date. The day factor
// is a stable hash of (weekday, ward) so a ward's Mondays always look alike.
func generateDay(date time.Time, wardID string) domain.DailyRecord {
	dayFactor := float64(utils.StableHash(fmt.Sprintf("%d_%s", int(date.Weekday()), wardID))%20) / 100

	hourly := make([]domain.HourlyRecord, 0, 24)
	for hour := 0; hour < 24; hour++ {
		score := utils.Clamp(bucketOffset(hour)+dayFactor, 0, 1)
		hourly = append(hourly, domain.HourlyRecord{
			Hour:             hour,
			SafetyLevel:      classify(score),
			CrimeProbability: utils.RoundTo(1-score, 3),
		})
	}

	return domain.DailyRecord{
		Date:       date.Format("2006-01-02"),
		Weekday:    date.Weekday().String(),
		HourlyData: hourly,
	}
}

// HistoricalData returns the last days entries of a ward's series plus
// aggregated period stats. days above 30 clamps to 30; days of zero yields an
// empty series with zero-count stats.
func (s *HistoryService) HistoricalData(wardID string, days int) (domain.HistoricalData, error) {
	if days < 0 {
		return domain.HistoricalData{}, fmt.Errorf("%w: days must not be negative", domain.ErrInvalidInput)
	}
	if days > historyDays {
		days = historyDays
	}

	series, ok := s.series[wardID]
	if !ok {
		return domain.HistoricalData{}, fmt.Errorf("%w: no historical data for ward %s", domain.ErrNotFound, wardID)
	}

	selected := series[len(series)-days:]

	stats := make(map[string]domain.PeriodStats, len(historyPeriods))
	for _, period := range historyPeriods {
		stats[period.name] = aggregatePeriod(selected, period.hours, days)
	}

	return domain.HistoricalData{
		WardID:       wardID,
		DaysAnalyzed: days,
		DailyData:    selected,
		PeriodStats:  stats,
	}, nil
}

// aggregatePeriod counts levels across the period's hours over all selected
// days. The dominant level prefers green over yellow over red on ties.
func aggregatePeriod(days []domain.DailyRecord, hours []int, dayCount int) domain.PeriodStats {
	inPeriod := make(map[int]bool, len(hours))
	for _, h := range hours {
		inPeriod[h] = true
	}

	var green, yellow, red int
	for _, day := range days {
		for _, rec := range day.HourlyData {
			if !inPeriod[rec.Hour] {
				continue
			}
			switch rec.SafetyLevel {
			case domain.LevelGreen:
				green++
			case domain.LevelYellow:
				yellow++
			default:
				red++
			}
		}
	}

	total := len(hours) * dayCount
	pct := func(count int) float64 {
		if total == 0 {
			return 0
		}
		return utils.RoundTo(float64(count)/float64(total)*100, 1)
	}

	stats := domain.PeriodStats{
		GreenCount:  green,
		YellowCount: yellow,
		RedCount:    red,
		GreenPct:    pct(green),
		YellowPct:   pct(yellow),
		RedPct:      pct(red),
	}

	switch {
	case green >= yellow && green >= red:
		stats.DominantSafety = domain.LevelGreen
		stats.DominantPercentage = pct(green)
	case yellow >= red:
		stats.DominantSafety = domain.LevelYellow
		stats.DominantPercentage = pct(yellow)
	default:
		stats.DominantSafety = domain.LevelRed
		stats.DominantPercentage = pct(red)
	}
	return stats
}
