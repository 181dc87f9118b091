package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-opsell/internal/dto"
	"golang-opsell/internal/model"
	"golang-opsell/pkg/logger"
	"golang-opsell/pkg/utils"
)

func testConfig() dto.StrategyConfig {
	return dto.StrategyConfig{
		TriggerPct:         3,
		SellCallPremiumPts: 400,
		SellPutPremiumPts:  600,
		CallHedgeCostPts:   200,
		PutHedgeCostPts:    200,
		MaxPositions:       3,
		ContractMultiplier: 50,
		MinTriggerDistance: 500,
	}
}

func testGenerator(t *testing.T) *ChainGenerator {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return NewChainGenerator(log)
}

func windowFor(bars model.PriceSeries) dto.SettlementWindow {
	return dto.SettlementWindow{
		Period:         dto.Period{Year: bars[0].Date.Year(), Month: bars[0].Date.Month()},
		StartDate:      bars[0].Date,
		SettlementDate: bars[len(bars)-1].Date,
	}
}

func TestGenerateFirstBarAlwaysOpens(t *testing.T) {
	g := testGenerator(t)
	series := model.PriceSeries{
		{Date: utils.Date(2025, time.March, 3), Open: 30000, High: 30200, Low: 29900, Close: 30100},
		{Date: utils.Date(2025, time.March, 4), Open: 30100, High: 30300, Low: 29950, Close: 30200},
	}

	positions := g.Generate(series, testConfig(), windowFor(series))

	require.Len(t, positions, 1)
	assert.Equal(t, utils.Date(2025, time.March, 3), positions[0].OpenDate)
	assert.Equal(t, 30000.0, positions[0].ReferenceIndex)
}

func TestGenerateChainRollover(t *testing.T) {
	g := testGenerator(t)
	// Day 2 breaches the upper trigger (30000 +/- 500 floor), day 4 the lower
	// one against the refreshed baseline. Day 5 moves hard but the cap of 3
	// is already reached.
	series := model.PriceSeries{
		{Date: utils.Date(2025, time.March, 3), Open: 30000, High: 30200, Low: 29900, Close: 30100},
		{Date: utils.Date(2025, time.March, 4), Open: 30100, High: 30600, Low: 29800, Close: 30400},
		{Date: utils.Date(2025, time.March, 5), Open: 30200, High: 30500, Low: 29800, Close: 30000},
		{Date: utils.Date(2025, time.March, 6), Open: 30000, High: 30300, Low: 29550, Close: 29700},
		{Date: utils.Date(2025, time.March, 7), Open: 29500, High: 31500, Low: 28500, Close: 31000},
	}

	positions := g.Generate(series, testConfig(), windowFor(series))

	require.Len(t, positions, 3)

	// Anchors sit at the exact trigger levels, not at the day's extremes.
	assert.Equal(t, 30000.0, positions[0].ReferenceIndex)
	assert.Equal(t, 30500.0, positions[1].ReferenceIndex)
	assert.Equal(t, 29600.0, positions[2].ReferenceIndex)

	assert.Equal(t, utils.Date(2025, time.March, 3), positions[0].OpenDate)
	assert.Equal(t, utils.Date(2025, time.March, 4), positions[1].OpenDate)
	assert.Equal(t, utils.Date(2025, time.March, 6), positions[2].OpenDate)
}

func TestGenerateHighBreachWinsOverLow(t *testing.T) {
	g := testGenerator(t)
	series := model.PriceSeries{
		{Date: utils.Date(2025, time.March, 3), Open: 30000, High: 30100, Low: 29900, Close: 30000},
		// Both triggers crossed in one bar: only the upper one opens.
		{Date: utils.Date(2025, time.March, 4), Open: 30000, High: 30600, Low: 29400, Close: 30000},
	}

	positions := g.Generate(series, testConfig(), windowFor(series))

	require.Len(t, positions, 2)
	assert.Equal(t, 30500.0, positions[1].ReferenceIndex)
}

func TestGenerateMinTriggerDistanceFloor(t *testing.T) {
	g := testGenerator(t)
	// At baseline 40000 the percentage distance (600) exceeds the floor, so
	// a 550-point move must not trigger.
	series := model.PriceSeries{
		{Date: utils.Date(2025, time.March, 3), Open: 40000, High: 40100, Low: 39900, Close: 40000},
		{Date: utils.Date(2025, time.March, 4), Open: 40000, High: 40550, Low: 39900, Close: 40200},
		{Date: utils.Date(2025, time.March, 5), Open: 40100, High: 40600, Low: 39900, Close: 40400},
	}

	positions := g.Generate(series, testConfig(), windowFor(series))

	require.Len(t, positions, 2)
	assert.Equal(t, 40600.0, positions[1].ReferenceIndex)
	assert.Equal(t, utils.Date(2025, time.March, 5), positions[1].OpenDate)
}

func TestGenerateCapEnforced(t *testing.T) {
	g := testGenerator(t)
	cfg := testConfig()
	cfg.MaxPositions = 2

	series := model.PriceSeries{
		{Date: utils.Date(2025, time.March, 3), Open: 30000, High: 30000, Low: 30000, Close: 30000},
		{Date: utils.Date(2025, time.March, 4), Open: 30600, High: 31200, Low: 30500, Close: 31100},
		{Date: utils.Date(2025, time.March, 5), Open: 31200, High: 31800, Low: 31100, Close: 31700},
		{Date: utils.Date(2025, time.March, 6), Open: 31800, High: 32400, Low: 31700, Close: 32300},
	}

	positions := g.Generate(series, cfg, windowFor(series))
	assert.Len(t, positions, 2)
}

func TestGenerateEmptyWindow(t *testing.T) {
	g := testGenerator(t)
	series := model.PriceSeries{
		{Date: utils.Date(2025, time.March, 3), Open: 30000, High: 30000, Low: 30000, Close: 30000},
	}
	window := dto.SettlementWindow{
		StartDate:      utils.Date(2025, time.June, 1),
		SettlementDate: utils.Date(2025, time.June, 18),
	}

	assert.Nil(t, g.Generate(series, testConfig(), window))
}

func TestNewPositionStrikeLadder(t *testing.T) {
	pos := NewPosition(utils.Date(2025, time.March, 3), 30000.7, testConfig())

	// 3% of 30000.7 is 900.021; every strike is truncated to whole points.
	assert.Equal(t, 30900.0, pos.SellCallStrike)
	assert.Equal(t, 29100.0, pos.SellPutStrike)
	assert.Equal(t, 31300.0, pos.CallBuyStrike)
	assert.Equal(t, 32200.0, pos.CallSellStrike)
	assert.Equal(t, 28500.0, pos.PutBuyStrike)
	assert.Equal(t, 27599.0, pos.PutSellStrike)
}
