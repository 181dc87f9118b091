package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"golang-opsell/internal/dto"
)

func TestSoldCallPnL(t *testing.T) {
	tests := []struct {
		name       string
		close      float64
		strike     float64
		premiumPts float64
		multiplier int
		want       float64
	}{
		{name: "in the money", close: 31500, strike: 30900, premiumPts: 400, multiplier: 50, want: -10000},
		{name: "out of the money keeps full premium", close: 30500, strike: 30900, premiumPts: 400, multiplier: 50, want: 20000},
		{name: "at the money", close: 30900, strike: 30900, premiumPts: 400, multiplier: 50, want: 20000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SoldCallPnL(tt.close, tt.strike, tt.premiumPts, tt.multiplier)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSoldPutPnL(t *testing.T) {
	tests := []struct {
		name       string
		close      float64
		strike     float64
		premiumPts float64
		multiplier int
		want       float64
	}{
		{name: "in the money", close: 29000, strike: 29500, premiumPts: 600, multiplier: 50, want: 5000},
		{name: "out of the money keeps full premium", close: 30000, strike: 29500, premiumPts: 600, multiplier: 50, want: 30000},
		{name: "deep in the money", close: 27000, strike: 29500, premiumPts: 600, multiplier: 50, want: -95000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SoldPutPnL(tt.close, tt.strike, tt.premiumPts, tt.multiplier)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Premium identity: payoff plus intrinsic surrendered always equals the
// premium collected, regardless of moneyness.
func TestSoldCallPremiumIdentity(t *testing.T) {
	strike, premiumPts := 30900.0, 400.0
	multiplier := 50

	for _, close := range []float64{25000, 30899, 30900, 30901, 35000} {
		pnl := SoldCallPnL(close, strike, premiumPts, multiplier)
		intrinsic := max(0, close-strike) * float64(multiplier)
		assert.Equal(t, premiumPts*float64(multiplier), pnl+intrinsic, "close=%v", close)
	}
}

func TestCallSpreadPnL(t *testing.T) {
	tests := []struct {
		name       string
		close      float64
		buyStrike  float64
		sellStrike float64
		costPts    float64
		multiplier int
		want       float64
	}{
		{name: "above sold strike caps at width minus cost", close: 32500, buyStrike: 31400, sellStrike: 32300, costPts: 200, multiplier: 50, want: 35000},
		{name: "below bought strike loses the cost", close: 31000, buyStrike: 31400, sellStrike: 32300, costPts: 200, multiplier: 50, want: -10000},
		{name: "between strikes is linear", close: 31800, buyStrike: 31400, sellStrike: 32300, costPts: 200, multiplier: 50, want: 10000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CallSpreadPnL(tt.close, tt.buyStrike, tt.sellStrike, tt.costPts, tt.multiplier)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPutSpreadPnL(t *testing.T) {
	tests := []struct {
		name       string
		close      float64
		buyStrike  float64
		sellStrike float64
		costPts    float64
		multiplier int
		want       float64
	}{
		{name: "below sold strike caps at width minus cost", close: 28000, buyStrike: 28900, sellStrike: 28400, costPts: 200, multiplier: 50, want: 15000},
		{name: "between strikes is linear", close: 28600, buyStrike: 28900, sellStrike: 28400, costPts: 200, multiplier: 50, want: 5000},
		{name: "above bought strike loses the cost", close: 29500, buyStrike: 28900, sellStrike: 28400, costPts: 200, multiplier: 50, want: -10000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PutSpreadPnL(tt.close, tt.buyStrike, tt.sellStrike, tt.costPts, tt.multiplier)
			assert.Equal(t, tt.want, got)
		})
	}
}

// The payoff regions must meet without jumps at both strikes.
func TestSpreadPnLContinuityAtStrikes(t *testing.T) {
	buy, sell, cost := 31400.0, 32300.0, 200.0
	multiplier := 50

	assert.Equal(t, CallSpreadPnL(buy, buy, sell, cost, multiplier), -cost*float64(multiplier))
	assert.Equal(t,
		CallSpreadPnL(sell, buy, sell, cost, multiplier),
		(sell-buy)*float64(multiplier)-cost*float64(multiplier),
	)

	putBuy, putSell := 28900.0, 28400.0
	assert.Equal(t, PutSpreadPnL(putBuy, putBuy, putSell, cost, multiplier), -cost*float64(multiplier))
	assert.Equal(t,
		PutSpreadPnL(putSell, putBuy, putSell, cost, multiplier),
		(putBuy-putSell)*float64(multiplier)-cost*float64(multiplier),
	)
}

func TestTotalPnL(t *testing.T) {
	cfg := dto.StrategyConfig{
		TriggerPct:         3,
		SellCallPremiumPts: 400,
		SellPutPremiumPts:  600,
		CallHedgeCostPts:   200,
		PutHedgeCostPts:    200,
		MaxPositions:       5,
		ContractMultiplier: 50,
		MinTriggerDistance: 500,
	}

	// Net premium enters once: (400+600)x50 - (200+200)x50 = 30000.
	assert.Equal(t, 30000.0, TotalPnL(cfg, 0, 0, 0, 0))
	assert.Equal(t, 30000.0+20000+30000-10000-10000, TotalPnL(cfg, 20000, 30000, -10000, -10000))
}
