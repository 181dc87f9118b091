package cmd

import (
	"context"
	"log"
	"time"

	"golang-opsell/config"
	"golang-opsell/internal/dto"
	"golang-opsell/internal/report"
	"golang-opsell/internal/repository"
	"golang-opsell/internal/service"
	"golang-opsell/pkg/cache"
	"golang-opsell/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	backtestCSVPath    string
	backtestYear       int
	backtestStartYear  int
	backtestStartMonth int
	backtestEndYear    int
	backtestEndMonth   int
	backtestOutput     string
	backtestTriggerPct float64
	backtestMaxPos     int
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a one-shot backtest from a CSV price file",
	Run:   RunBacktest,
}

func init() {
	backtestCmd.Flags().StringVar(&backtestCSVPath, "csv", "", "path to the daily price CSV file (required)")
	backtestCmd.Flags().IntVar(&backtestYear, "year", 0, "backtest a single calendar year (Jan-Dec)")
	backtestCmd.Flags().IntVar(&backtestStartYear, "start-year", 0, "first contract year")
	backtestCmd.Flags().IntVar(&backtestStartMonth, "start-month", 1, "first contract month (1-12)")
	backtestCmd.Flags().IntVar(&backtestEndYear, "end-year", 0, "last contract year")
	backtestCmd.Flags().IntVar(&backtestEndMonth, "end-month", 12, "last contract month (1-12)")
	backtestCmd.Flags().StringVar(&backtestOutput, "output", "", "write the per-leg breakdown CSV to this path")
	backtestCmd.Flags().Float64Var(&backtestTriggerPct, "trigger-pct", 0, "override the trigger percentage")
	backtestCmd.Flags().IntVar(&backtestMaxPos, "max-positions", 0, "override the monthly position cap")
	_ = backtestCmd.MarkFlagRequired("csv")
}

func RunBacktest(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	inmemoryCache := cache.NewCache(cfg.Cache.DefaultExpiration, cfg.Cache.CleanupInterval)

	// CSV-only mode: no database, no remote provider, no notifier.
	repo, err := repository.NewRepository(cfg, inmemoryCache, nil, appLog)
	if err != nil {
		log.Fatalf("Failed to create repository: %v", err)
	}

	services := service.NewService(cfg, appLog, repo, inmemoryCache, nil)

	series, err := repo.PriceCSVRepo.Load(ctx, backtestCSVPath)
	if err != nil {
		log.Fatalf("Failed to load price CSV: %v", err)
	}

	strategyCfg := dto.DefaultStrategyConfig(cfg.Backtest)
	if backtestTriggerPct > 0 {
		strategyCfg.TriggerPct = backtestTriggerPct
	}
	if backtestMaxPos > 0 {
		strategyCfg.MaxPositions = backtestMaxPos
	}

	start, end := resolveRange()

	result, err := services.BacktestService.RunRange(ctx, series, strategyCfg, start, end)
	if err != nil {
		log.Fatalf("Backtest failed: %v", err)
	}

	for _, month := range result.Months {
		appLog.Info("Month settled",
			logger.StringField("period", month.Period.String()),
			logger.IntField("positions", len(month.Positions)),
			logger.FloatField("pnl", month.TotalPnL),
		)
	}
	appLog.Info("Backtest finished",
		logger.StringField("range", start.String()+".."+end.String()),
		logger.FloatField("total_pnl", result.TotalPnL),
	)

	if backtestOutput != "" {
		if err := report.WriteCSVFile(backtestOutput, result); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
		appLog.Info("Report written", logger.StringField("path", backtestOutput))
	}
}

func resolveRange() (dto.Period, dto.Period) {
	if backtestYear > 0 {
		return dto.Period{Year: backtestYear, Month: time.January},
			dto.Period{Year: backtestYear, Month: time.December}
	}
	if backtestStartYear > 0 && backtestEndYear > 0 {
		return dto.Period{Year: backtestStartYear, Month: time.Month(backtestStartMonth)},
			dto.Period{Year: backtestEndYear, Month: time.Month(backtestEndMonth)}
	}
	log.Fatalf("Either --year or --start-year/--end-year must be set")
	return dto.Period{}, dto.Period{}
}
