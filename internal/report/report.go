package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang-opsell/internal/dto"
	"golang-opsell/pkg/common"
)

var header = []string{
	"period", "position", "open_date", "reference_index", "leg",
	"sell_strike", "buy_strike", "settlement_close", "pnl",
}

// WriteCSV renders the per-leg breakdown of a backtest result. Every position
// produces four leg rows followed by a subtotal, every month a total row, and
// the file ends with the grand total.
func WriteCSV(w io.Writer, result *dto.BacktestResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for _, month := range result.Months {
		for i, pos := range month.Positions {
			if err := writePosition(cw, month.Period, i+1, pos); err != nil {
				return err
			}
		}
		totalRow := []string{month.Period.String(), "", "", "", "month_total", "", "", formatPrice(month.SettlementClose), formatPnL(month.TotalPnL)}
		if err := cw.Write(totalRow); err != nil {
			return fmt.Errorf("failed to write month total: %w", err)
		}
	}

	grandRow := []string{"", "", "", "", "grand_total", "", "", "", formatPnL(result.TotalPnL)}
	if err := cw.Write(grandRow); err != nil {
		return fmt.Errorf("failed to write grand total: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the breakdown to path, truncating any existing file.
func WriteCSVFile(path string, result *dto.BacktestResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCSV(f, result); err != nil {
		return err
	}
	return f.Close()
}

func writePosition(cw *csv.Writer, period dto.Period, index int, pos dto.PricedPosition) error {
	base := []string{
		period.String(),
		strconv.Itoa(index),
		pos.OpenDate.Format(common.DateFormat),
		formatPrice(pos.ReferenceIndex),
	}

	rows := [][]string{
		append(append([]string{}, base...), "sold_call", formatPrice(pos.SellCallStrike), "", formatPrice(pos.SettlementClose), formatPnL(pos.CallPnL)),
		append(append([]string{}, base...), "sold_put", formatPrice(pos.SellPutStrike), "", formatPrice(pos.SettlementClose), formatPnL(pos.PutPnL)),
		append(append([]string{}, base...), "call_spread", formatPrice(pos.CallSellStrike), formatPrice(pos.CallBuyStrike), formatPrice(pos.SettlementClose), formatPnL(pos.CallSpreadPnL)),
		append(append([]string{}, base...), "put_spread", formatPrice(pos.PutSellStrike), formatPrice(pos.PutBuyStrike), formatPrice(pos.SettlementClose), formatPnL(pos.PutSpreadPnL)),
		append(append([]string{}, base...), "position_total", "", "", formatPrice(pos.SettlementClose), formatPnL(pos.PositionPnL)),
	}

	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write position row: %w", err)
		}
	}
	return nil
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPnL(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
