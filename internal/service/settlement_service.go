package service

import (
	"fmt"
	"time"

	"golang-opsell/internal/dto"
	"golang-opsell/internal/model"
	"golang-opsell/pkg/cache"
	"golang-opsell/pkg/common"
	"golang-opsell/pkg/logger"
	"golang-opsell/pkg/utils"
)

// SettlementService maps the trading calendar implied by a price series to
// per-month settlement windows.
type SettlementService interface {
	Resolve(series model.PriceSeries, year int) map[time.Month]*dto.SettlementWindow
}

type settlementService struct {
	log   *logger.Logger
	cache cache.Cache
}

func NewSettlementService(log *logger.Logger, inmemoryCache cache.Cache) SettlementService {
	return &settlementService{
		log:   log,
		cache: inmemoryCache,
	}
}

// Resolve computes a window for every month 1..12 of the year whose anchors
// both fall inside the loaded series. Months that cannot be resolved are
// simply absent from the returned map.
func (s *settlementService) Resolve(series model.PriceSeries, year int) map[time.Month]*dto.SettlementWindow {
	cacheKey := fmt.Sprintf(common.KEY_SETTLEMENT_CALENDAR, seriesFingerprint(series), year)
	if s.cache != nil {
		if cached, ok := s.cache.Get(cacheKey); ok {
			if windows, ok := cached.(map[time.Month]*dto.SettlementWindow); ok {
				return windows
			}
		}
	}

	windows := make(map[time.Month]*dto.SettlementWindow)
	for month := time.January; month <= time.December; month++ {
		window, ok := s.resolveMonth(series, year, month)
		if !ok {
			continue
		}
		windows[month] = window
	}

	if s.cache != nil {
		s.cache.Set(cacheKey, windows, 0)
	}
	return windows
}

// resolveMonth anchors the settlement on the third Wednesday of the month and
// the window start on the third Thursday of the previous month. January's
// start anchor therefore lives in December of the prior year.
func (s *settlementService) resolveMonth(series model.PriceSeries, year int, month time.Month) (*dto.SettlementWindow, bool) {
	settlementAnchor := utils.ThirdWednesday(year, month)
	startYear, startMonth := utils.PrevMonth(year, month)
	startAnchor := utils.ThirdThursday(startYear, startMonth)

	settlementDate, ok := snapToTradingDay(series, settlementAnchor)
	if !ok {
		return nil, false
	}
	startDate, ok := snapToTradingDay(series, startAnchor)
	if !ok {
		return nil, false
	}
	if !startDate.Before(settlementDate) {
		return nil, false
	}

	return &dto.SettlementWindow{
		Period:         dto.Period{Year: year, Month: month},
		StartDate:      startDate,
		SettlementDate: settlementDate,
	}, true
}

// snapToTradingDay uses the anchor itself when the market traded that day,
// otherwise the next trading day in the series. Fails when the series ends
// before the anchor.
func snapToTradingDay(series model.PriceSeries, anchor time.Time) (time.Time, bool) {
	if bar, ok := series.FindExact(anchor); ok {
		return bar.Date, true
	}
	if bar, ok := series.FirstAfter(anchor); ok {
		return bar.Date, true
	}
	return time.Time{}, false
}

func seriesFingerprint(series model.PriceSeries) string {
	if len(series) == 0 {
		return "empty"
	}
	return fmt.Sprintf("%s:%s:%d",
		series[0].Date.Format(common.DateFormat),
		series[len(series)-1].Date.Format(common.DateFormat),
		len(series),
	)
}
