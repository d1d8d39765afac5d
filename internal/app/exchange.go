package app

import (
	"context"
	"fmt"
	"net/url"

	"github.com/guttosm/cryptolens/config"
	"github.com/guttosm/cryptolens/internal/exchange"
	"github.com/guttosm/cryptolens/internal/logger"
)

// InitExchange builds the shared exchange client from the provided configuration.
//
// Behavior:
//   - Validates the base URL.
//   - Creates a rate limited Binance client (safe for concurrent use).
//   - Pings the exchange once; an unreachable exchange is logged, not fatal.
//
// Returns:
//   - *exchange.BinanceClient: client shared by every request.
//   - error: if the configuration cannot produce a client.
func InitExchange(cfg config.Config) (*exchange.BinanceClient, error) {
	u, err := url.Parse(cfg.Exchange.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid exchange base url %q", cfg.Exchange.BaseURL)
	}

	client := exchange.NewBinanceClient(exchange.Options{
		BaseURL:    cfg.Exchange.BaseURL,
		Timeout:    cfg.Exchange.Timeout,
		RatePerSec: cfg.Exchange.RatePerSec,
	})

	if err := client.Ping(context.Background()); err != nil {
		logger.L().Warn().Err(err).Str("base_url", cfg.Exchange.BaseURL).Msg("exchange not reachable at startup")
	} else {
		logger.L().Info().Str("base_url", cfg.Exchange.BaseURL).Msg("exchange reachable")
	}

	return client, nil
}

// exchangeOpener is an indirection used by InitializeApp; overridden in tests.
var exchangeOpener = InitExchange
