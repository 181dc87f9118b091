package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"golang-opsell/config"
	"golang-opsell/internal/dto"
	"golang-opsell/internal/model"
	"golang-opsell/internal/repository"
	"golang-opsell/pkg/logger"
	"golang-opsell/pkg/utils"
)

// Notifier pushes a finished run summary to an outbound channel.
type Notifier interface {
	SendRunSummary(ctx context.Context, symbol string, result *dto.BacktestResult, commentary string) error
}

// SchedulerService periodically refreshes the candle store from the remote
// provider, re-runs the current-year backtest and pushes the summary out.
type SchedulerService interface {
	Start(ctx context.Context) error
	Stop()
	RunOnce(ctx context.Context) error
}

type schedulerService struct {
	cfg      *config.Config
	log      *logger.Logger
	repo     *repository.Repository
	backtest BacktestService
	notifier Notifier
	cron     *cron.Cron
}

func NewSchedulerService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	backtest BacktestService,
	notifier Notifier,
) SchedulerService {
	return &schedulerService{
		cfg:      cfg,
		log:      log,
		repo:     repo,
		backtest: backtest,
		notifier: notifier,
		cron:     cron.New(),
	}
}

func (s *schedulerService) Start(ctx context.Context) error {
	if s.repo.CandleRepo == nil || s.repo.IndexDataRepo == nil {
		return fmt.Errorf("scheduler requires both the candle store and the index data provider")
	}

	_, err := s.cron.AddFunc(s.cfg.Scheduler.RefreshCron, func() {
		utils.GoSafe(func() {
			runCtx, cancel := context.WithTimeout(ctx, s.cfg.Scheduler.TimeoutDuration)
			defer cancel()

			if err := s.RunOnce(runCtx); err != nil {
				s.log.ErrorContext(runCtx, "Scheduled backtest run failed", logger.ErrorField(err))
			}
		})
	})
	if err != nil {
		return fmt.Errorf("invalid refresh cron %q: %w", s.cfg.Scheduler.RefreshCron, err)
	}

	s.cron.Start()
	s.log.Info("Scheduler started", logger.StringField("cron", s.cfg.Scheduler.RefreshCron))
	return nil
}

func (s *schedulerService) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("Scheduler stopped")
}

// RunOnce performs one refresh-and-backtest cycle.
func (s *schedulerService) RunOnce(ctx context.Context) error {
	symbol := s.cfg.IndexData.Symbol

	if err := s.refreshCandles(ctx, symbol); err != nil {
		return err
	}

	now := time.Now().UTC()
	series, err := s.repo.CandleRepo.GetSeries(ctx, model.GetCandlesParam{Symbol: symbol})
	if err != nil {
		return err
	}
	if len(series) == 0 {
		s.log.WarnContext(ctx, "No candles stored, skipping scheduled backtest",
			logger.StringField("symbol", symbol),
		)
		return nil
	}

	strategyCfg := dto.DefaultStrategyConfig(s.cfg.Backtest)
	start := dto.Period{Year: now.Year(), Month: time.January}
	end := dto.Period{Year: now.Year(), Month: now.Month()}

	result, err := s.backtest.RunAndRecord(ctx, symbol, series, strategyCfg, start, end)
	if err != nil {
		return err
	}

	var commentary string
	if s.repo.AIRepo != nil {
		commentary, err = s.repo.AIRepo.SummarizeRun(ctx, result)
		if err != nil {
			// Commentary is best-effort; the run itself already succeeded.
			s.log.WarnContext(ctx, "Failed to get AI commentary", logger.ErrorField(err))
		}
	}

	if s.notifier != nil {
		if err := s.notifier.SendRunSummary(ctx, symbol, result, commentary); err != nil {
			s.log.WarnContext(ctx, "Failed to send run summary", logger.ErrorField(err))
		}
	}

	return nil
}

// refreshCandles pulls bars the store does not have yet.
func (s *schedulerService) refreshCandles(ctx context.Context, symbol string) error {
	latest, err := s.repo.CandleRepo.GetLatestDate(ctx, symbol)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	from := latest.AddDate(0, 0, 1)
	if latest.IsZero() {
		// Empty store: backfill two full calendar years.
		from = utils.Date(now.Year()-2, time.January, 1)
	}
	if from.After(now) {
		return nil
	}

	series, err := s.repo.IndexDataRepo.GetDailyBars(ctx, symbol, from, now)
	if err != nil {
		return fmt.Errorf("failed to refresh candles: %w", err)
	}

	candles := make([]model.IndexCandle, 0, len(series))
	for _, bar := range series {
		candles = append(candles, model.IndexCandle{
			Symbol: symbol,
			Date:   bar.Date,
			Open:   bar.Open,
			High:   bar.High,
			Low:    bar.Low,
			Close:  bar.Close,
		})
	}

	if err := s.repo.CandleRepo.Upsert(ctx, candles); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "Candle store refreshed",
		logger.StringField("symbol", symbol),
		logger.IntField("new_bars", len(candles)),
	)
	return nil
}
