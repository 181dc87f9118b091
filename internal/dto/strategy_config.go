package dto

import (
	"fmt"

	goValidator "github.com/go-playground/validator/v10"

	"golang-opsell/config"
)

var validate = goValidator.New()

// StrategyConfig are the immutable parameters of one backtest run. The
// generator and the PnL calculator share it read-only.
type StrategyConfig struct {
	// TriggerPct is the percentage distance n driving both the re-entry
	// trigger and the strike ladder.
	TriggerPct         float64 `json:"trigger_pct" validate:"gt=0"`
	SellCallPremiumPts float64 `json:"sell_call_premium_pts" validate:"gte=0"`
	SellPutPremiumPts  float64 `json:"sell_put_premium_pts" validate:"gte=0"`
	CallHedgeCostPts   float64 `json:"call_hedge_cost_pts" validate:"gte=0"`
	PutHedgeCostPts    float64 `json:"put_hedge_cost_pts" validate:"gte=0"`
	MaxPositions       int     `json:"max_positions" validate:"gt=0"`
	ContractMultiplier int     `json:"contract_multiplier" validate:"gt=0"`
	// MinTriggerDistance floors the trigger distance in index points so a
	// tiny TriggerPct cannot cause runaway re-entry.
	MinTriggerDistance float64 `json:"min_trigger_distance" validate:"gt=0"`
}

// DefaultStrategyConfig builds a StrategyConfig from the configured defaults.
func DefaultStrategyConfig(cfg config.Backtest) StrategyConfig {
	return StrategyConfig{
		TriggerPct:         cfg.TriggerPct,
		SellCallPremiumPts: cfg.SellCallPremiumPts,
		SellPutPremiumPts:  cfg.SellPutPremiumPts,
		CallHedgeCostPts:   cfg.CallHedgeCostPts,
		PutHedgeCostPts:    cfg.PutHedgeCostPts,
		MaxPositions:       cfg.MaxPositions,
		ContractMultiplier: cfg.ContractMultiplier,
		MinTriggerDistance: cfg.MinTriggerDistance,
	}
}

// Validate fails fast on non-positive trigger, cap or multiplier instead of
// letting the run silently divide by zero or emit negative strikes.
func (c StrategyConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid strategy config: %w", err)
	}
	return nil
}
