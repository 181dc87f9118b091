package service

import (
	"golang-opsell/config"
	"golang-opsell/internal/repository"
	"golang-opsell/internal/strategy"
	"golang-opsell/pkg/cache"
	"golang-opsell/pkg/logger"
)

type Service struct {
	SettlementService SettlementService
	BacktestService   BacktestService
	SchedulerService  SchedulerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
	notifier Notifier,
) *Service {
	settlementService := NewSettlementService(log, inmemoryCache)
	generator := strategy.NewChainGenerator(log)
	backtestService := NewBacktestService(cfg, log, settlementService, generator, repo.BacktestRunRepo)
	schedulerService := NewSchedulerService(cfg, log, repo, backtestService, notifier)

	return &Service{
		SettlementService: settlementService,
		BacktestService:   backtestService,
		SchedulerService:  schedulerService,
	}
}
