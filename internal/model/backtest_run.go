package model

import (
	"time"

	"gorm.io/datatypes"
)

type BacktestRunStatus string

const (
	RunStatusCompleted BacktestRunStatus = "completed"
	RunStatusFailed    BacktestRunStatus = "failed"
)

// BacktestRun is a snapshot of one completed backtest: the parameters it ran
// with and the full result, stored as JSON for later inspection.
type BacktestRun struct {
	ID         uint              `gorm:"primarykey"`
	Symbol     string            `gorm:"not null"`
	StartYear  int               `gorm:"not null"`
	StartMonth int               `gorm:"not null"`
	EndYear    int               `gorm:"not null"`
	EndMonth   int               `gorm:"not null"`
	Params     datatypes.JSON    `gorm:"type:jsonb;not null"`
	Result     datatypes.JSON    `gorm:"type:jsonb"`
	TotalPnL   float64           `gorm:"column:total_pnl;not null"`
	Status     BacktestRunStatus `gorm:"type:varchar(50);not null"`
	CreatedAt  time.Time         `gorm:"autoCreateTime"`
}

func (BacktestRun) TableName() string {
	return "backtest_runs"
}
