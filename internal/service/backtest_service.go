package service

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"golang-opsell/config"
	"golang-opsell/internal/dto"
	"golang-opsell/internal/model"
	"golang-opsell/internal/repository"
	"golang-opsell/internal/strategy"
	"golang-opsell/pkg/logger"
)

// BacktestService orchestrates settlement resolution, position generation and
// settlement pricing for single months, full years and arbitrary ranges.
type BacktestService interface {
	RunMonth(ctx context.Context, series model.PriceSeries, cfg dto.StrategyConfig, year int, month time.Month) (dto.MonthResult, error)
	RunYear(ctx context.Context, series model.PriceSeries, cfg dto.StrategyConfig, year int) (*dto.BacktestResult, error)
	RunRange(ctx context.Context, series model.PriceSeries, cfg dto.StrategyConfig, start, end dto.Period) (*dto.BacktestResult, error)
	RunAndRecord(ctx context.Context, symbol string, series model.PriceSeries, cfg dto.StrategyConfig, start, end dto.Period) (*dto.BacktestResult, error)
}

type backtestService struct {
	cfg        *config.Config
	log        *logger.Logger
	settlement SettlementService
	generator  *strategy.ChainGenerator
	runRepo    repository.BacktestRunRepository
}

func NewBacktestService(
	cfg *config.Config,
	log *logger.Logger,
	settlement SettlementService,
	generator *strategy.ChainGenerator,
	runRepo repository.BacktestRunRepository,
) BacktestService {
	return &backtestService{
		cfg:        cfg,
		log:        log,
		settlement: settlement,
		generator:  generator,
		runRepo:    runRepo,
	}
}

// RunMonth backtests a single contract month. A month without a resolvable
// settlement window or without trading data yields a zeroed result, never an
// error.
func (s *backtestService) RunMonth(ctx context.Context, series model.PriceSeries, cfg dto.StrategyConfig, year int, month time.Month) (dto.MonthResult, error) {
	if err := cfg.Validate(); err != nil {
		return dto.MonthResult{}, err
	}
	return s.runMonth(ctx, series, cfg, dto.Period{Year: year, Month: month}), nil
}

// RunYear is the inclusive January..December range of one year.
func (s *backtestService) RunYear(ctx context.Context, series model.PriceSeries, cfg dto.StrategyConfig, year int) (*dto.BacktestResult, error) {
	return s.RunRange(ctx, series, cfg,
		dto.Period{Year: year, Month: time.January},
		dto.Period{Year: year, Month: time.December},
	)
}

// RunRange backtests every month of the inclusive range. Months are
// independent computations and run concurrently; the result preserves
// chronological order regardless.
func (s *backtestService) RunRange(ctx context.Context, series model.PriceSeries, cfg dto.StrategyConfig, start, end dto.Period) (*dto.BacktestResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	periods := dto.PeriodsBetween(start, end)
	if len(periods) == 0 {
		return nil, fmt.Errorf("invalid backtest range: %s after %s", start, end)
	}

	limit := s.cfg.Scheduler.MaxConcurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	months := make([]dto.MonthResult, len(periods))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, period := range periods {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			months[i] = s.runMonth(gctx, series, cfg, period)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &dto.BacktestResult{Months: months}
	for _, m := range months {
		result.TotalPnL += m.TotalPnL
	}

	s.log.InfoContext(ctx, "Backtest range completed",
		logger.StringField("start", start.String()),
		logger.StringField("end", end.String()),
		logger.IntField("months", len(months)),
		logger.FloatField("total_pnl", result.TotalPnL),
	)
	return result, nil
}

// RunAndRecord runs a range backtest and stores the snapshot in the run
// history when a repository is configured.
func (s *backtestService) RunAndRecord(ctx context.Context, symbol string, series model.PriceSeries, cfg dto.StrategyConfig, start, end dto.Period) (*dto.BacktestResult, error) {
	result, err := s.RunRange(ctx, series, cfg, start, end)
	if err != nil {
		return nil, err
	}

	if s.runRepo == nil {
		return result, nil
	}

	params, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal strategy config: %w", err)
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal backtest result: %w", err)
	}

	run := &model.BacktestRun{
		Symbol:     symbol,
		StartYear:  start.Year,
		StartMonth: int(start.Month),
		EndYear:    end.Year,
		EndMonth:   int(end.Month),
		Params:     params,
		Result:     payload,
		TotalPnL:   result.TotalPnL,
		Status:     model.RunStatusCompleted,
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		s.log.ErrorContext(ctx, "Failed to record backtest run", logger.ErrorField(err))
		return nil, err
	}

	return result, nil
}

func (s *backtestService) runMonth(ctx context.Context, series model.PriceSeries, cfg dto.StrategyConfig, period dto.Period) dto.MonthResult {
	result := dto.MonthResult{
		Period:    period,
		Positions: []dto.PricedPosition{},
	}

	windows := s.settlement.Resolve(series, period.Year)
	window := windows[period.Month]
	if window == nil {
		s.log.DebugContext(ctx, "No settlement window, skipping month",
			logger.StringField("period", period.String()),
		)
		return result
	}
	result.Window = window

	positions := s.generator.Generate(series, cfg, *window)
	if len(positions) == 0 {
		return result
	}

	// One shared closing observation per month: the settlement date's bar,
	// or the last bar before it when a holiday shifted the close.
	settlementBar, ok := series.FindExact(window.SettlementDate)
	if !ok {
		settlementBar, ok = series.LastAtOrBefore(window.SettlementDate)
	}
	if !ok {
		return result
	}
	result.SettlementClose = settlementBar.Close

	for _, pos := range positions {
		priced := s.pricePosition(pos, settlementBar.Close, cfg)
		result.Positions = append(result.Positions, priced)
		result.TotalPnL += priced.PositionPnL
	}

	return result
}

func (s *backtestService) pricePosition(pos dto.Position, closingPrice float64, cfg dto.StrategyConfig) dto.PricedPosition {
	callPnL := SoldCallPnL(closingPrice, pos.SellCallStrike, cfg.SellCallPremiumPts, cfg.ContractMultiplier)
	putPnL := SoldPutPnL(closingPrice, pos.SellPutStrike, cfg.SellPutPremiumPts, cfg.ContractMultiplier)
	callSpreadPnL := CallSpreadPnL(closingPrice, pos.CallBuyStrike, pos.CallSellStrike, cfg.CallHedgeCostPts, cfg.ContractMultiplier)
	putSpreadPnL := PutSpreadPnL(closingPrice, pos.PutBuyStrike, pos.PutSellStrike, cfg.PutHedgeCostPts, cfg.ContractMultiplier)

	return dto.PricedPosition{
		Position:        pos,
		SettlementClose: closingPrice,
		CallPnL:         callPnL,
		PutPnL:          putPnL,
		CallSpreadPnL:   callSpreadPnL,
		PutSpreadPnL:    putSpreadPnL,
		PositionPnL:     TotalPnL(cfg, callPnL, putPnL, callSpreadPnL, putSpreadPnL),
	}
}
