package strategy

import (
	"math"
	"time"

	"golang-opsell/internal/dto"
	"golang-opsell/internal/model"
	"golang-opsell/pkg/logger"
)

// generatorState models the chain walk explicitly: the first in-window bar
// always opens, afterwards the generator monitors for trigger breaches until
// the monthly cap is hit.
type generatorState int

const (
	awaitingFirstOpen generatorState = iota
	monitoring
	capped
)

// ChainGenerator walks a settlement window day by day and opens a new
// position whenever the index moves a trigger distance away from the current
// baseline ("chain" rollover).
type ChainGenerator struct {
	log *logger.Logger
}

func NewChainGenerator(log *logger.Logger) *ChainGenerator {
	return &ChainGenerator{log: log}
}

// Generate produces the ordered position-opening events for one window.
// Returns nil when the window contains no trading days.
//
// Two distinct state variables drive the walk: the emitted position anchors
// at the exact trigger level that was breached, while the baseline for the
// next trigger comparison resets to that bar's opening price. They must not
// be conflated.
func (g *ChainGenerator) Generate(series model.PriceSeries, cfg dto.StrategyConfig, window dto.SettlementWindow) []dto.Position {
	bars := series.Between(window.StartDate, window.SettlementDate)
	if len(bars) == 0 {
		return nil
	}

	var (
		positions []dto.Position
		baseline  float64
		state     = awaitingFirstOpen
	)

	for _, bar := range bars {
		if len(positions) >= cfg.MaxPositions {
			state = capped
			break
		}

		switch state {
		case awaitingFirstOpen:
			positions = append(positions, NewPosition(bar.Date, bar.Open, cfg))
			baseline = bar.Open
			state = monitoring

		case monitoring:
			distance := triggerDistance(baseline, cfg)
			triggerHigh := baseline + distance
			triggerLow := baseline - distance

			// High breach wins when both sides are crossed in one bar,
			// and at most one position opens per bar.
			switch {
			case bar.High >= triggerHigh:
				positions = append(positions, NewPosition(bar.Date, triggerHigh, cfg))
				baseline = bar.Open
			case bar.Low <= triggerLow:
				positions = append(positions, NewPosition(bar.Date, triggerLow, cfg))
				baseline = bar.Open
			}
		}
	}

	return positions
}

// triggerDistance is half the configured percentage of the baseline, floored
// at the minimum absolute distance.
func triggerDistance(baseline float64, cfg dto.StrategyConfig) float64 {
	distance := baseline * (cfg.TriggerPct / 100) / 2
	return max(distance, cfg.MinTriggerDistance)
}

// NewPosition derives the full strike ladder from a reference index level.
// Strikes are truncated to whole index points to match contract granularity.
func NewPosition(openDate time.Time, referenceIndex float64, cfg dto.StrategyConfig) dto.Position {
	n := cfg.TriggerPct / 100

	sellCallStrike := math.Trunc(referenceIndex * (1 + n))
	sellPutStrike := math.Trunc(referenceIndex * (1 - n))

	callBuyStrike := math.Trunc(sellCallStrike + cfg.SellCallPremiumPts)
	callSellStrike := math.Trunc(callBuyStrike + referenceIndex*n)

	putBuyStrike := math.Trunc(sellPutStrike - cfg.SellPutPremiumPts)
	putSellStrike := math.Trunc(putBuyStrike - referenceIndex*n)

	return dto.Position{
		OpenDate:       openDate,
		ReferenceIndex: referenceIndex,
		SellCallStrike: sellCallStrike,
		SellPutStrike:  sellPutStrike,
		CallBuyStrike:  callBuyStrike,
		CallSellStrike: callSellStrike,
		PutBuyStrike:   putBuyStrike,
		PutSellStrike:  putSellStrike,
	}
}
