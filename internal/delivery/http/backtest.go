package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"golang-opsell/internal/dto"
	"golang-opsell/internal/model"
)

func (h *HttpAPIHandler) SetupBacktest(base *echo.Group) {
	backtestGroup := base.Group("/backtest")
	backtestGroup.POST("", h.runBacktest)
	backtestGroup.GET("/runs", h.listRuns)
}

func (h *HttpAPIHandler) runBacktest(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.BacktestRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	strategyCfg := dto.DefaultStrategyConfig(h.cfg.Backtest)
	if req.Strategy != nil {
		strategyCfg = *req.Strategy
	}
	if err := strategyCfg.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if h.repo.CandleRepo == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "candle store is not configured"})
	}

	symbol := c.QueryParam("symbol")
	if symbol == "" {
		symbol = h.cfg.IndexData.Symbol
	}

	series, err := h.repo.CandleRepo.GetSeries(ctx, model.GetCandlesParam{Symbol: symbol})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load price series"})
	}
	if len(series) == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no price data for symbol " + symbol})
	}

	result, err := h.service.BacktestService.RunAndRecord(ctx, symbol, series, strategyCfg, req.StartPeriod(), req.EndPeriod())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to run backtest"})
	}

	return c.JSON(http.StatusOK, result)
}

func (h *HttpAPIHandler) listRuns(c echo.Context) error {
	ctx := c.Request().Context()

	if h.repo.BacktestRunRepo == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "run history is not configured"})
	}

	symbol := c.QueryParam("symbol")
	if symbol == "" {
		symbol = h.cfg.IndexData.Symbol
	}

	runs, err := h.repo.BacktestRunRepo.FindLatest(ctx, symbol, 20)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list runs"})
	}

	return c.JSON(http.StatusOK, runs)
}
