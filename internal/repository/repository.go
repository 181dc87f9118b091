package repository

import (
	"gorm.io/gorm"

	"golang-opsell/config"
	"golang-opsell/pkg/cache"
	"golang-opsell/pkg/logger"
)

type Repository struct {
	PriceCSVRepo    PriceCSVRepository
	IndexDataRepo   IndexDataRepository
	CandleRepo      CandleRepository
	BacktestRunRepo BacktestRunRepository
	AIRepo          AIRepository
}

// NewRepository wires the data layer. db may be nil in CSV-only CLI mode;
// the GORM-backed repositories are then left unset. The AI repository is
// only built when an API key is configured.
func NewRepository(cfg *config.Config, inmemoryCache cache.Cache, db *gorm.DB, log *logger.Logger) (*Repository, error) {
	repo := &Repository{
		PriceCSVRepo: NewPriceCSVRepository(log, inmemoryCache),
	}

	if cfg.IndexData.BaseURL != "" {
		repo.IndexDataRepo = NewIndexDataRepository(cfg, log)
	}

	if db != nil {
		repo.CandleRepo = NewCandleRepository(db)
		repo.BacktestRunRepo = NewBacktestRunRepository(db)
	}

	if cfg.Gemini.APIKey != "" {
		aiRepo, err := NewGeminiAIRepository(cfg, log)
		if err != nil {
			return nil, err
		}
		repo.AIRepo = aiRepo
	}

	return repo, nil
}
