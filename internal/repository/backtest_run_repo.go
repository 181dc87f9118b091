package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"golang-opsell/internal/model"
)

// BacktestRunRepository stores completed run snapshots for later inspection.
type BacktestRunRepository interface {
	Create(ctx context.Context, run *model.BacktestRun) error
	FindLatest(ctx context.Context, symbol string, limit int) ([]model.BacktestRun, error)
}

type backtestRunRepository struct {
	db *gorm.DB
}

func NewBacktestRunRepository(db *gorm.DB) BacktestRunRepository {
	return &backtestRunRepository{db: db}
}

func (r *backtestRunRepository) Create(ctx context.Context, run *model.BacktestRun) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to create backtest run: %w", err)
	}
	return nil
}

func (r *backtestRunRepository) FindLatest(ctx context.Context, symbol string, limit int) ([]model.BacktestRun, error) {
	if limit <= 0 {
		limit = 10
	}

	var runs []model.BacktestRun
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("created_at desc").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find backtest runs: %w", err)
	}
	return runs, nil
}
