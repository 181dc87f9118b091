package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-opsell/pkg/logger"
	"golang-opsell/pkg/utils"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPriceCSVRepositoryLoad(t *testing.T) {
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	repo := NewPriceCSVRepository(log, nil)

	// Header row, thousand separators and out-of-order rows are all part of
	// the exported format.
	path := writeTempCSV(t, `Date,Open,High,Low,Close
2025/03/04,"30,100","30,300","29,950","30,200"
2025/03/03,"30,000","30,200","29,900","30,100"
2025/03/04,"30,100","30,300","29,950","30,200"
`)

	series, err := repo.Load(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, series, 2)
	assert.Equal(t, utils.Date(2025, time.March, 3), series[0].Date)
	assert.Equal(t, utils.Date(2025, time.March, 4), series[1].Date)
	assert.Equal(t, 30000.0, series[0].Open)
	assert.Equal(t, 30200.0, series[0].High)
	assert.Equal(t, 29900.0, series[0].Low)
	assert.Equal(t, 30100.0, series[0].Close)
}

func TestPriceCSVRepositoryLoadISODates(t *testing.T) {
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	repo := NewPriceCSVRepository(log, nil)

	path := writeTempCSV(t, "2025-03-03,30000,30200,29900,30100\n")

	series, err := repo.Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, utils.Date(2025, time.March, 3), series[0].Date)
}

func TestPriceCSVRepositoryLoadErrors(t *testing.T) {
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	repo := NewPriceCSVRepository(log, nil)

	tests := []struct {
		name    string
		content string
	}{
		{name: "header only", content: "Date,Open,High,Low,Close\n"},
		{name: "bad price", content: "2025/03/03,abc,30200,29900,30100\n"},
		{name: "bad date past header row", content: "2025/03/03,30000,30200,29900,30100\nnot-a-date,1,2,3,4\n"},
		{name: "too few columns", content: "2025/03/03,30000,30200\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempCSV(t, tt.content)
			_, err := repo.Load(context.Background(), path)
			assert.Error(t, err)
		})
	}
}

func TestPriceCSVRepositoryLoadMissingFile(t *testing.T) {
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	repo := NewPriceCSVRepository(log, nil)

	_, err = repo.Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
