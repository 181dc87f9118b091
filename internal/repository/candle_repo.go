package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"golang-opsell/internal/model"
)

// CandleRepository persists and serves the daily index bars used as backtest
// input.
type CandleRepository interface {
	Upsert(ctx context.Context, candles []model.IndexCandle) error
	GetSeries(ctx context.Context, param model.GetCandlesParam) (model.PriceSeries, error)
	GetLatestDate(ctx context.Context, symbol string) (time.Time, error)
}

type candleRepository struct {
	db *gorm.DB
}

func NewCandleRepository(db *gorm.DB) CandleRepository {
	return &candleRepository{db: db}
}

func (r *candleRepository) Upsert(ctx context.Context, candles []model.IndexCandle) error {
	if len(candles) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "updated_at"}),
	}).Create(&candles).Error
	if err != nil {
		return fmt.Errorf("failed to upsert candles: %w", err)
	}
	return nil
}

func (r *candleRepository) GetSeries(ctx context.Context, param model.GetCandlesParam) (model.PriceSeries, error) {
	query := r.db.WithContext(ctx).Where("symbol = ?", param.Symbol)
	if !param.StartDate.IsZero() {
		query = query.Where("date >= ?", param.StartDate)
	}
	if !param.EndDate.IsZero() {
		query = query.Where("date <= ?", param.EndDate)
	}

	var candles []model.IndexCandle
	if err := query.Order("date asc").Find(&candles).Error; err != nil {
		return nil, fmt.Errorf("failed to get candles: %w", err)
	}

	series := make(model.PriceSeries, 0, len(candles))
	for _, candle := range candles {
		series = append(series, candle.ToPriceBar())
	}
	return series.Normalize(), nil
}

func (r *candleRepository) GetLatestDate(ctx context.Context, symbol string) (time.Time, error) {
	var candle model.IndexCandle
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("date desc").
		First(&candle).Error
	if err == gorm.ErrRecordNotFound {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get latest candle date: %w", err)
	}
	return candle.Date, nil
}
