package service

import "golang-opsell/internal/dto"

// Settlement payoffs for the four legs of a position. All functions are pure:
// money = points x contract multiplier, no pricing model involved.

// SoldCallPnL returns premium collected minus intrinsic value surrendered at
// settlement.
func SoldCallPnL(closingPrice, strike, premiumPts float64, multiplier int) float64 {
	m := float64(multiplier)
	premium := premiumPts * m
	intrinsic := max(0, closingPrice-strike) * m
	return premium - intrinsic
}

// SoldPutPnL is the put-side mirror of SoldCallPnL.
func SoldPutPnL(closingPrice, strike, premiumPts float64, multiplier int) float64 {
	m := float64(multiplier)
	premium := premiumPts * m
	intrinsic := max(0, strike-closingPrice) * m
	return premium - intrinsic
}

// CallSpreadPnL values a call debit spread at settlement: max loss is the
// cost, max gain is the spread width minus cost, linear in between.
func CallSpreadPnL(closingPrice, buyStrike, sellStrike, costPts float64, multiplier int) float64 {
	m := float64(multiplier)
	cost := costPts * m
	switch {
	case closingPrice < buyStrike:
		return -cost
	case closingPrice < sellStrike:
		return (closingPrice-buyStrike)*m - cost
	default:
		return (sellStrike-buyStrike)*m - cost
	}
}

// PutSpreadPnL is the mirror-image put debit spread payoff. For puts the
// bought strike sits above the sold strike.
func PutSpreadPnL(closingPrice, buyStrike, sellStrike, costPts float64, multiplier int) float64 {
	m := float64(multiplier)
	cost := costPts * m
	switch {
	case closingPrice < sellStrike:
		return (buyStrike-sellStrike)*m - cost
	case closingPrice < buyStrike:
		return (buyStrike-closingPrice)*m - cost
	default:
		return -cost
	}
}

// TotalPnL combines the four leg payoffs with the net premium collected at
// open. The net premium/cost enters exactly once per position regardless of
// the legs' outcomes: it is cash exchanged at open, not at settlement.
func TotalPnL(cfg dto.StrategyConfig, callPnL, putPnL, callSpreadPnL, putSpreadPnL float64) float64 {
	m := float64(cfg.ContractMultiplier)
	premiumIncome := (cfg.SellCallPremiumPts + cfg.SellPutPremiumPts) * m
	hedgeCost := (cfg.CallHedgeCostPts + cfg.PutHedgeCostPts) * m
	return premiumIncome - hedgeCost + callPnL + putPnL + callSpreadPnL + putSpreadPnL
}
