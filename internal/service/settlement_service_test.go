package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-opsell/internal/model"
	"golang-opsell/pkg/logger"
	"golang-opsell/pkg/utils"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

// weekdaySeries builds a flat series covering every Monday-Friday in the
// inclusive range, optionally skipping given dates (holidays).
func weekdaySeries(from, to time.Time, price float64, skip ...time.Time) model.PriceSeries {
	skipped := make(map[time.Time]bool, len(skip))
	for _, d := range skip {
		skipped[d] = true
	}

	var series model.PriceSeries
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday || skipped[d] {
			continue
		}
		series = append(series, model.PriceBar{Date: d, Open: price, High: price, Low: price, Close: price})
	}
	return series.Normalize()
}

func TestResolveRegularMonth(t *testing.T) {
	svc := NewSettlementService(newTestLogger(t), nil)
	series := weekdaySeries(utils.Date(2025, time.January, 1), utils.Date(2025, time.June, 30), 30000)

	windows := svc.Resolve(series, 2025)

	window := windows[time.March]
	require.NotNil(t, window)
	assert.Equal(t, utils.Date(2025, time.February, 20), window.StartDate)
	assert.Equal(t, utils.Date(2025, time.March, 19), window.SettlementDate)
	assert.Equal(t, 2025, window.Period.Year)
	assert.Equal(t, time.March, window.Period.Month)
}

func TestResolveJanuaryStartsInPriorDecember(t *testing.T) {
	svc := NewSettlementService(newTestLogger(t), nil)
	series := weekdaySeries(utils.Date(2024, time.December, 1), utils.Date(2025, time.February, 28), 30000)

	windows := svc.Resolve(series, 2025)

	window := windows[time.January]
	require.NotNil(t, window)
	assert.Equal(t, utils.Date(2024, time.December, 19), window.StartDate)
	assert.Equal(t, utils.Date(2025, time.January, 15), window.SettlementDate)
}

func TestResolveSnapsHolidayForward(t *testing.T) {
	svc := NewSettlementService(newTestLogger(t), nil)
	// The third Wednesday of March 2025 is a holiday; settlement moves to
	// the next trading day.
	series := weekdaySeries(
		utils.Date(2025, time.January, 1), utils.Date(2025, time.June, 30), 30000,
		utils.Date(2025, time.March, 19),
	)

	windows := svc.Resolve(series, 2025)

	window := windows[time.March]
	require.NotNil(t, window)
	assert.Equal(t, utils.Date(2025, time.March, 20), window.SettlementDate)
}

func TestResolveOmitsMonthsBeyondSeries(t *testing.T) {
	svc := NewSettlementService(newTestLogger(t), nil)
	series := weekdaySeries(utils.Date(2025, time.January, 1), utils.Date(2025, time.June, 30), 30000)

	windows := svc.Resolve(series, 2025)

	assert.NotNil(t, windows[time.June])
	assert.Nil(t, windows[time.July])
	assert.Nil(t, windows[time.December])
}

func TestResolveEmptySeries(t *testing.T) {
	svc := NewSettlementService(newTestLogger(t), nil)
	windows := svc.Resolve(nil, 2025)
	assert.Empty(t, windows)
}
