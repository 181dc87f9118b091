package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"golang-opsell/config"
	"golang-opsell/internal/dto"
	"golang-opsell/internal/model"
	"golang-opsell/pkg/common"
	"golang-opsell/pkg/httpclient"
	"golang-opsell/pkg/logger"
)

// IndexDataRepository fetches daily bars from the remote index quote API.
type IndexDataRepository interface {
	GetDailyBars(ctx context.Context, symbol string, from, to time.Time) (model.PriceSeries, error)
}

type indexDataRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	log            *logger.Logger
	requestLimiter *rate.Limiter
}

func NewIndexDataRepository(cfg *config.Config, log *logger.Logger) IndexDataRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.IndexData.MaxRequestPerMin)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &indexDataRepository{
		httpClient:     httpclient.New(cfg.IndexData.BaseURL, cfg.IndexData.BaseTimeout, ""),
		cfg:            cfg,
		log:            log,
		requestLimiter: requestLimiter,
	}
}

func (r *indexDataRepository) GetDailyBars(ctx context.Context, symbol string, from, to time.Time) (model.PriceSeries, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("/v1/indices/%s/daily", symbol)
	queryParams := map[string]string{
		"from": from.Format(common.DateFormat),
		"to":   to.Format(common.DateFormat),
	}

	var indexResp dto.IndexDataResponse
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, nil, &indexResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch daily bars: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.log.ErrorContext(ctx, "Index data API returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)),
		)
		return nil, fmt.Errorf("index data api returned status: %d", resp.StatusCode)
	}

	if indexResp.Error != nil {
		return nil, fmt.Errorf("index data api error %s: %s", indexResp.Error.Code, indexResp.Error.Message)
	}

	if len(indexResp.Bars) == 0 {
		return nil, fmt.Errorf("no data returned for symbol: %s", symbol)
	}

	series := make(model.PriceSeries, 0, len(indexResp.Bars))
	for _, bar := range indexResp.Bars {
		date, err := time.ParseInLocation(common.DateFormat, bar.Date, time.UTC)
		if err != nil {
			r.log.WarnContext(ctx, "Skipping bar with invalid date",
				logger.StringField("date", bar.Date),
			)
			continue
		}
		series = append(series, model.PriceBar{
			Date:  date,
			Open:  bar.Open,
			High:  bar.High,
			Low:   bar.Low,
			Close: bar.Close,
		})
	}

	return series.Normalize(), nil
}
