package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"golang-opsell/config"
	"golang-opsell/internal/dto"
	"golang-opsell/pkg/httpclient"
	"golang-opsell/pkg/logger"
	"golang-opsell/pkg/ratelimit"
)

// AIRepository produces a natural-language commentary on a finished backtest.
type AIRepository interface {
	SummarizeRun(ctx context.Context, result *dto.BacktestResult) (string, error)
}

type geminiAIRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	log            *logger.Logger
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

func NewGeminiAIRepository(cfg *config.Config, log *logger.Logger) (AIRepository, error) {
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	tokenLimiter := ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute)
	genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.Gemini.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiAIRepository{
		httpClient:     httpclient.New(cfg.Gemini.BaseURL, cfg.Gemini.Timeout, ""),
		cfg:            cfg,
		log:            log,
		tokenLimiter:   tokenLimiter,
		requestLimiter: requestLimiter,
		genAiClient:    genAiClient,
	}, nil
}

func (r *geminiAIRepository) SummarizeRun(ctx context.Context, result *dto.BacktestResult) (string, error) {
	if result == nil || len(result.Months) == 0 {
		return "", fmt.Errorf("no backtest result to summarize")
	}

	prompt, err := r.promptSummarizeRun(result)
	if err != nil {
		return "", fmt.Errorf("failed to build summary prompt: %w", err)
	}

	response, err := r.sendRequest(ctx, prompt)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to get run summary from gemini", logger.ErrorField(err))
		return "", err
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("invalid response from Gemini API: no content found")
	}
	return strings.TrimSpace(response.Candidates[0].Content.Parts[0].Text), nil
}

func (r *geminiAIRepository) promptSummarizeRun(result *dto.BacktestResult) (string, error) {
	var sb strings.Builder
	sb.WriteString("You are reviewing the result of an option-selling backtest on a stock index.\n")
	sb.WriteString("Each month a short strangle was sold and hedged with debit spreads, re-entering on large index moves.\n")
	sb.WriteString("Summarize the performance in at most five sentences: overall PnL, best and worst month, and notable streaks.\n\n")
	sb.WriteString("Monthly results (period, positions, total_pnl):\n")

	for _, month := range result.Months {
		row := map[string]interface{}{
			"period":    month.Period.String(),
			"positions": len(month.Positions),
			"total_pnl": month.TotalPnL,
		}
		line, err := json.Marshal(row)
		if err != nil {
			return "", err
		}
		sb.Write(line)
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("\nAggregate PnL: %.2f\n", result.TotalPnL))
	return sb.String(), nil
}

func (r *geminiAIRepository) sendRequest(ctx context.Context, prompt string) (*dto.GeminiAPIResponse, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}
	geminiTokenResp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Gemini.BaseModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count tokens: %w", err)
	}

	if err := r.tokenLimiter.Wait(ctx, int(geminiTokenResp.TotalTokens)); err != nil {
		return nil, fmt.Errorf("failed to wait for gemini token limit: %w", err)
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for gemini request limit: %w", err)
	}

	payload := dto.GeminiAPIRequest{
		Contents: []dto.Content{{Parts: []dto.Part{{Text: prompt}}}},
	}

	geminiAPIResponse := dto.GeminiAPIResponse{}
	apiURL := fmt.Sprintf("/%s:generateContent?key=%s", r.cfg.Gemini.BaseModel, r.cfg.Gemini.APIKey)

	geminiResp, err := r.httpClient.Post(ctx, apiURL, payload, nil, &geminiAPIResponse)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to gemini: %w", err)
	}

	if geminiResp.StatusCode != http.StatusOK {
		r.log.ErrorContext(ctx, "Failed to get data from gemini", logger.IntField("status_code", geminiResp.StatusCode))
		return nil, fmt.Errorf("gemini api returned status: %d", geminiResp.StatusCode)
	}

	return &geminiAPIResponse, nil
}
