package dto

import (
	"fmt"
	"time"
)

// Period identifies a contract month. Year is always populated; there is no
// bare-month key anywhere in the system.
type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Next returns the following contract month, rolling over December.
func (p Period) Next() Period {
	if p.Month == time.December {
		return Period{Year: p.Year + 1, Month: time.January}
	}
	return Period{Year: p.Year, Month: p.Month + 1}
}

// After reports whether p is chronologically after other.
func (p Period) After(other Period) bool {
	if p.Year != other.Year {
		return p.Year > other.Year
	}
	return p.Month > other.Month
}

// PeriodsBetween expands an inclusive range into the ordered list of contract
// months it covers.
func PeriodsBetween(start, end Period) []Period {
	if start.After(end) {
		return nil
	}
	var periods []Period
	for p := start; ; p = p.Next() {
		periods = append(periods, p)
		if p == end {
			break
		}
	}
	return periods
}

// SettlementWindow bounds one contract month: from the prior month's start
// anchor to this month's settlement anchor, both snapped to trading days.
type SettlementWindow struct {
	Period         Period    `json:"period"`
	StartDate      time.Time `json:"start_date"`
	SettlementDate time.Time `json:"settlement_date"`
}

// Position is one short strangle plus its two hedge spreads, anchored at a
// reference index level. Strikes are fixed at creation and never mutated.
type Position struct {
	OpenDate       time.Time `json:"open_date"`
	ReferenceIndex float64   `json:"reference_index"`
	SellCallStrike float64   `json:"sell_call_strike"`
	SellPutStrike  float64   `json:"sell_put_strike"`
	CallBuyStrike  float64   `json:"call_buy_strike"`
	CallSellStrike float64   `json:"call_sell_strike"`
	PutBuyStrike   float64   `json:"put_buy_strike"`
	PutSellStrike  float64   `json:"put_sell_strike"`
}

// PricedPosition is a Position settled against the month's closing price,
// with every leg's payoff broken out so reporting never recomputes anything.
type PricedPosition struct {
	Position
	SettlementClose float64 `json:"settlement_close"`
	CallPnL         float64 `json:"call_pnl"`
	PutPnL          float64 `json:"put_pnl"`
	CallSpreadPnL   float64 `json:"call_spread_pnl"`
	PutSpreadPnL    float64 `json:"put_spread_pnl"`
	PositionPnL     float64 `json:"position_pnl"`
}

// MonthResult is the outcome of one contract month. A month with no
// settlement or no data still yields a well-formed zero result.
type MonthResult struct {
	Period          Period            `json:"period"`
	Window          *SettlementWindow `json:"window,omitempty"`
	SettlementClose float64           `json:"settlement_close"`
	Positions       []PricedPosition  `json:"positions"`
	TotalPnL        float64           `json:"total_pnl"`
}

// BacktestResult is the ordered collection of month results for a requested
// range. Every requested period is present exactly once, chronologically.
type BacktestResult struct {
	Months   []MonthResult `json:"months"`
	TotalPnL float64       `json:"total_pnl"`
}

// Month looks up a single period's result.
func (r *BacktestResult) Month(p Period) (MonthResult, bool) {
	for _, m := range r.Months {
		if m.Period == p {
			return m, true
		}
	}
	return MonthResult{}, false
}

// BacktestRequest is the API/CLI payload for a range backtest. Strategy
// fields, when zero, are filled from the configured defaults.
type BacktestRequest struct {
	StartYear  int             `json:"start_year" validate:"required,gte=1990"`
	StartMonth int             `json:"start_month" validate:"required,gte=1,lte=12"`
	EndYear    int             `json:"end_year" validate:"required,gte=1990"`
	EndMonth   int             `json:"end_month" validate:"required,gte=1,lte=12"`
	Strategy   *StrategyConfig `json:"strategy,omitempty"`
}

func (r BacktestRequest) StartPeriod() Period {
	return Period{Year: r.StartYear, Month: time.Month(r.StartMonth)}
}

func (r BacktestRequest) EndPeriod() Period {
	return Period{Year: r.EndYear, Month: time.Month(r.EndMonth)}
}
