package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang-opsell/internal/model"
	"golang-opsell/pkg/cache"
	"golang-opsell/pkg/common"
	"golang-opsell/pkg/logger"
)

// PriceCSVRepository loads a daily index series from a local CSV file with
// date,open,high,low,close columns.
type PriceCSVRepository interface {
	Load(ctx context.Context, path string) (model.PriceSeries, error)
}

type priceCSVRepository struct {
	log   *logger.Logger
	cache cache.Cache
}

func NewPriceCSVRepository(log *logger.Logger, inmemoryCache cache.Cache) PriceCSVRepository {
	return &priceCSVRepository{
		log:   log,
		cache: inmemoryCache,
	}
}

func (r *priceCSVRepository) Load(ctx context.Context, path string) (model.PriceSeries, error) {
	cacheKey := fmt.Sprintf(common.KEY_PRICE_SERIES, path)
	if r.cache != nil {
		if cached, ok := r.cache.Get(cacheKey); ok {
			if series, ok := cached.(model.PriceSeries); ok {
				return series, nil
			}
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open price data file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var series model.PriceSeries
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read price data file %s: %w", path, err)
		}
		line++

		if len(record) < 5 {
			return nil, fmt.Errorf("line %d: expected 5 columns, got %d", line, len(record))
		}

		date, err := parseDate(record[0])
		if err != nil {
			// First row is allowed to be a header.
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		bar := model.PriceBar{Date: date}
		for i, dst := range []*float64{&bar.Open, &bar.High, &bar.Low, &bar.Close} {
			value, err := parsePrice(record[i+1])
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", line, i+2, err)
			}
			*dst = value
		}
		series = append(series, bar)
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("no price bars found in %s", path)
	}

	series = series.Normalize()
	r.log.InfoContext(ctx, "Loaded price series",
		logger.StringField("path", path),
		logger.IntField("bars", len(series)),
	)

	if r.cache != nil {
		r.cache.Set(cacheKey, series, 0)
	}
	return series, nil
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{common.CSVDateFormat, common.DateFormat} {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

func parsePrice(value string) (float64, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", value)
	}
	return f, nil
}
