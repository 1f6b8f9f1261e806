package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Trading TradingConfig `mapstructure:"trading"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type ServerConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	Timeout   int    `mapstructure:"timeout"`
	RateLimit int    `mapstructure:"rate_limit"`
}

type TradingConfig struct {
	QuoteCurrency  string   `mapstructure:"quote_currency"`
	PollIntervalMs int      `mapstructure:"poll_interval_ms"`
	ChartInterval  string   `mapstructure:"chart_interval"`
	FallbackCoins  []string `mapstructure:"fallback_coins"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/tradeterm")
	}

	v.SetEnvPrefix("TRADETERM")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; use defaults and environment
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.timeout", 15)
	v.SetDefault("server.rate_limit", 10)

	// Trading defaults
	v.SetDefault("trading.quote_currency", "USDT")
	v.SetDefault("trading.poll_interval_ms", 2000)
	v.SetDefault("trading.chart_interval", "1m")
	v.SetDefault("trading.fallback_coins", []string{"USDT", "BTC", "ETH", "BNB"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")
}

// PollInterval returns the poll cadence as a duration.
func (c TradingConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// TimeoutDuration returns the HTTP client timeout as a duration.
func (c ServerConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
