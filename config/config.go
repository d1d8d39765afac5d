package config

import (
	"log"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings, exchange connectivity and logging.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	RATE_LIMIT_PER_MINUTE=60
//	EXCHANGE_BASE_URL=https://api.binance.com
//	EXCHANGE_TIMEOUT=5s
//	EXCHANGE_RATE_PER_SEC=10
//	LOG_LEVEL=info
//	LOG_PRETTY=false
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Exchange ExchangeConfig // Upstream exchange connectivity
	Log      LogConfig      // Logger settings
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string // The TCP port the HTTP server will listen on (e.g., "8080")
	RateLimitPerMinute int    // Inbound requests allowed per client IP per minute
}

// ExchangeConfig defines how the service reaches the exchange REST API.
//
// Fields:
//   - BaseURL: scheme and host of the exchange API (no trailing path).
//   - Timeout: hard deadline for a single outbound call; exceeding it is an internal error.
//   - RatePerSec: outbound requests per second allowed by the client-side limiter.
type ExchangeConfig struct {
	BaseURL    string
	Timeout    time.Duration
	RatePerSec int
}

// LogConfig controls the zerolog output.
type LogConfig struct {
	Level  string
	Pretty bool
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and read by cmd/ and internal/app.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or malformed, validateConfig() terminates the app.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 60)

	viper.SetDefault("EXCHANGE_BASE_URL", "https://api.binance.com")
	viper.SetDefault("EXCHANGE_TIMEOUT", "5s")
	viper.SetDefault("EXCHANGE_RATE_PER_SEC", 10)

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", false)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			RateLimitPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Exchange: ExchangeConfig{
			BaseURL:    viper.GetString("EXCHANGE_BASE_URL"),
			Timeout:    viper.GetDuration("EXCHANGE_TIMEOUT"),
			RatePerSec: viper.GetInt("EXCHANGE_RATE_PER_SEC"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Pretty: viper.GetBool("LOG_PRETTY"),
		},
	}

	validateConfig()
}

// missingFields returns the names of required variables that are absent or invalid in cfg.
func missingFields(cfg Config) []string {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if cfg.Server.RateLimitPerMinute <= 0 {
		missing = append(missing, "RATE_LIMIT_PER_MINUTE")
	}
	if u, err := url.Parse(cfg.Exchange.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		missing = append(missing, "EXCHANGE_BASE_URL")
	}
	if cfg.Exchange.Timeout <= 0 {
		missing = append(missing, "EXCHANGE_TIMEOUT")
	}
	if cfg.Exchange.RatePerSec <= 0 {
		missing = append(missing, "EXCHANGE_RATE_PER_SEC")
	}

	return missing
}

// validateConfig ensures required variables are present and terminates
// the application if they are not.
func validateConfig() {
	if missing := missingFields(AppConfig); len(missing) > 0 {
		log.Fatalf("❌ Missing or invalid environment variables: %v\n", missing)
	}
}
