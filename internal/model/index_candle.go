package model

import "time"

// IndexCandle is the persisted form of a daily index bar.
type IndexCandle struct {
	ID        uint      `gorm:"primarykey"`
	Symbol    string    `gorm:"not null;uniqueIndex:idx_index_candles_symbol_date"`
	Date      time.Time `gorm:"not null;uniqueIndex:idx_index_candles_symbol_date"`
	Open      float64   `gorm:"not null"`
	High      float64   `gorm:"not null"`
	Low       float64   `gorm:"not null"`
	Close     float64   `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (IndexCandle) TableName() string {
	return "index_candles"
}

func (c IndexCandle) ToPriceBar() PriceBar {
	return PriceBar{
		Date:  time.Date(c.Date.Year(), c.Date.Month(), c.Date.Day(), 0, 0, 0, 0, time.UTC),
		Open:  c.Open,
		High:  c.High,
		Low:   c.Low,
		Close: c.Close,
	}
}

type GetCandlesParam struct {
	Symbol    string
	StartDate time.Time
	EndDate   time.Time
}
