package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Log       Logger         `mapstructure:"logger"`
	DB        Database       `mapstructure:"database"`
	API       API            `mapstructure:"api"`
	Scheduler Scheduler      `mapstructure:"scheduler"`
	IndexData IndexData      `mapstructure:"index_data"`
	Cache     Cache          `mapstructure:"cache"`
	Gemini    Gemini         `mapstructure:"gemini"`
	Telegram  TelegramConfig `mapstructure:"telegram"`
	Backtest  Backtest       `mapstructure:"backtest"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

type Scheduler struct {
	RefreshCron     string        `mapstructure:"refresh_cron"`
	MaxConcurrency  int           `mapstructure:"max_concurrency"`
	TimeoutDuration time.Duration `mapstructure:"timeout_duration"`
}

// IndexData configures the remote daily bar provider.
type IndexData struct {
	BaseURL          string        `mapstructure:"base_url"`
	Symbol           string        `mapstructure:"symbol"`
	BaseTimeout      time.Duration `mapstructure:"base_timeout"`
	MaxRequestPerMin int           `mapstructure:"max_request_per_min"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

type Gemini struct {
	APIKey              string        `mapstructure:"api_key"`
	BaseURL             string        `mapstructure:"base_url"`
	BaseModel           string        `mapstructure:"base_model"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int           `mapstructure:"max_token_per_minute"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Backtest holds the default strategy parameters. Requests may override any
// of them; these are the values the scheduler and CLI run with.
type Backtest struct {
	TriggerPct         float64 `mapstructure:"trigger_pct"`
	SellCallPremiumPts float64 `mapstructure:"sell_call_premium_pts"`
	SellPutPremiumPts  float64 `mapstructure:"sell_put_premium_pts"`
	CallHedgeCostPts   float64 `mapstructure:"call_hedge_cost_pts"`
	PutHedgeCostPts    float64 `mapstructure:"put_hedge_cost_pts"`
	MaxPositions       int     `mapstructure:"max_positions"`
	ContractMultiplier int     `mapstructure:"contract_multiplier"`
	MinTriggerDistance float64 `mapstructure:"min_trigger_distance"`
}

func Load() (*Config, error) {
	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("cache.default_expiration", "30m")
	viper.SetDefault("cache.cleanup_interval", "1h")
	viper.SetDefault("scheduler.refresh_cron", "0 18 * * 1-5")
	viper.SetDefault("scheduler.max_concurrency", 4)
	viper.SetDefault("scheduler.timeout_duration", "5m")
	viper.SetDefault("backtest.trigger_pct", 3.0)
	viper.SetDefault("backtest.sell_call_premium_pts", 400.0)
	viper.SetDefault("backtest.sell_put_premium_pts", 600.0)
	viper.SetDefault("backtest.call_hedge_cost_pts", 200.0)
	viper.SetDefault("backtest.put_hedge_cost_pts", 200.0)
	viper.SetDefault("backtest.max_positions", 5)
	viper.SetDefault("backtest.contract_multiplier", 50)
	viper.SetDefault("backtest.min_trigger_distance", 500.0)
}
