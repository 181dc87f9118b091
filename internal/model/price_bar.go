package model

import (
	"sort"
	"time"
)

// PriceBar is a single daily quote of the underlying index. Bars are value
// objects; once a series is loaded they are never mutated.
type PriceBar struct {
	Date  time.Time `json:"date"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`
}

// PriceSeries is an ascending, date-deduplicated sequence of daily bars. The
// trading calendar is whatever dates are present in the series.
type PriceSeries []PriceBar

// Normalize sorts the series ascending by date and drops duplicate dates,
// keeping the first occurrence.
func (s PriceSeries) Normalize() PriceSeries {
	out := make(PriceSeries, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	dedup := out[:0]
	for _, bar := range out {
		if len(dedup) > 0 && !dedup[len(dedup)-1].Date.Before(bar.Date) {
			continue
		}
		dedup = append(dedup, bar)
	}
	return dedup
}

// Between returns the sub-series with dates in [start, end] inclusive.
func (s PriceSeries) Between(start, end time.Time) PriceSeries {
	lo := sort.Search(len(s), func(i int) bool {
		return !s[i].Date.Before(start)
	})
	hi := sort.Search(len(s), func(i int) bool {
		return s[i].Date.After(end)
	})
	if lo >= hi {
		return nil
	}
	return s[lo:hi]
}

// FindExact returns the bar on the given date if it is a trading day.
func (s PriceSeries) FindExact(date time.Time) (PriceBar, bool) {
	i := sort.Search(len(s), func(i int) bool {
		return !s[i].Date.Before(date)
	})
	if i < len(s) && s[i].Date.Equal(date) {
		return s[i], true
	}
	return PriceBar{}, false
}

// FirstAfter returns the first bar strictly after the given date.
func (s PriceSeries) FirstAfter(date time.Time) (PriceBar, bool) {
	i := sort.Search(len(s), func(i int) bool {
		return s[i].Date.After(date)
	})
	if i < len(s) {
		return s[i], true
	}
	return PriceBar{}, false
}

// LastAtOrBefore returns the latest bar whose date is not after the given
// date. Used to observe the settlement close when the settlement date itself
// is not in the series.
func (s PriceSeries) LastAtOrBefore(date time.Time) (PriceBar, bool) {
	i := sort.Search(len(s), func(i int) bool {
		return s[i].Date.After(date)
	})
	if i == 0 {
		return PriceBar{}, false
	}
	return s[i-1], true
}
