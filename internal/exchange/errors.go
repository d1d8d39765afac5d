package exchange

import "errors"

var (
	// ErrBadSymbol means the exchange does not list the requested market, or the
	// symbol is not shaped like BASE/QUOTE.
	ErrBadSymbol = errors.New("bad symbol")

	// ErrUpstream covers transport failures, timeouts, unexpected status codes
	// and malformed payloads.
	ErrUpstream = errors.New("exchange request failed")
)

// Binance error code for an unknown market.
const codeInvalidSymbol = -1121
