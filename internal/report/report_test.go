package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-opsell/internal/dto"
	"golang-opsell/pkg/utils"
)

func sampleResult() *dto.BacktestResult {
	return &dto.BacktestResult{
		Months: []dto.MonthResult{
			{
				Period:          dto.Period{Year: 2025, Month: time.March},
				SettlementClose: 30000,
				Positions: []dto.PricedPosition{
					{
						Position: dto.Position{
							OpenDate:       utils.Date(2025, time.February, 20),
							ReferenceIndex: 30000,
							SellCallStrike: 30900,
							SellPutStrike:  29100,
							CallBuyStrike:  31300,
							CallSellStrike: 32200,
							PutBuyStrike:   28500,
							PutSellStrike:  27600,
						},
						SettlementClose: 30000,
						CallPnL:         20000,
						PutPnL:          30000,
						CallSpreadPnL:   -10000,
						PutSpreadPnL:    -10000,
						PositionPnL:     60000,
					},
				},
				TotalPnL: 60000,
			},
		},
		TotalPnL: 60000,
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResult()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	// Header, five leg rows, month total, grand total.
	require.Len(t, records, 8)
	assert.Equal(t, header, records[0])

	soldCall := records[1]
	assert.Equal(t, "2025-03", soldCall[0])
	assert.Equal(t, "1", soldCall[1])
	assert.Equal(t, "2025-02-20", soldCall[2])
	assert.Equal(t, "sold_call", soldCall[4])
	assert.Equal(t, "30900", soldCall[5])
	assert.Equal(t, "20000.00", soldCall[8])

	positionTotal := records[5]
	assert.Equal(t, "position_total", positionTotal[4])
	assert.Equal(t, "60000.00", positionTotal[8])

	monthTotal := records[6]
	assert.Equal(t, "month_total", monthTotal[4])
	assert.Equal(t, "60000.00", monthTotal[8])

	grand := records[7]
	assert.Equal(t, "grand_total", grand[4])
	assert.Equal(t, "60000.00", grand[8])
}
