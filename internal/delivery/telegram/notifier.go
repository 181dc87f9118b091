package telegram

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/telebot.v3"

	"golang-opsell/config"
	"golang-opsell/internal/dto"
	"golang-opsell/pkg/logger"
)

// Notifier pushes backtest run summaries to a Telegram chat.
type Notifier struct {
	cfg *config.Config
	log *logger.Logger
	bot *telebot.Bot
}

func NewNotifier(cfg *config.Config, log *logger.Logger, bot *telebot.Bot) *Notifier {
	return &Notifier{
		cfg: cfg,
		log: log,
		bot: bot,
	}
}

func (n *Notifier) SendRunSummary(ctx context.Context, symbol string, result *dto.BacktestResult, commentary string) error {
	message := n.formatSummary(symbol, result, commentary)

	_, err := n.bot.Send(telebot.ChatID(n.cfg.Telegram.ChatID), message, &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	if err != nil {
		return fmt.Errorf("failed to send telegram summary: %w", err)
	}

	n.log.InfoContext(ctx, "Run summary sent to telegram",
		logger.StringField("symbol", symbol),
	)
	return nil
}

func (n *Notifier) formatSummary(symbol string, result *dto.BacktestResult, commentary string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📊 *Backtest %s*\n\n", symbol))
	for _, month := range result.Months {
		icon := "🟢"
		if month.TotalPnL < 0 {
			icon = "🔴"
		}
		sb.WriteString(fmt.Sprintf("%s `%s`  positions: %d  pnl: %s\n",
			icon, month.Period.String(), len(month.Positions), formatAmount(month.TotalPnL)))
	}
	sb.WriteString(fmt.Sprintf("\n💰 *Total PnL: %s*\n", formatAmount(result.TotalPnL)))

	if commentary != "" {
		sb.WriteString("\n🤖 ")
		sb.WriteString(commentary)
		sb.WriteString("\n")
	}

	return sb.String()
}

func formatAmount(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.0f", v)
	}
	return fmt.Sprintf("%.0f", v)
}
