// Package exchange fetches market data from the Binance public REST API.
package exchange

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/cryptolens/internal/domain/models"
	"github.com/guttosm/cryptolens/internal/logger"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	klinesPath    = "/api/v3/klines"
	pingPath      = "/api/v3/ping"
	dailyInterval = "1d"
	maxLimit      = 1000
	maxBodyBytes  = 4 << 20
)

// Options configures a BinanceClient.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	RatePerSec int
	HTTPClient *http.Client
}

// BinanceClient is a read-only client for the Binance spot market endpoints.
// It is safe for concurrent use.
type BinanceClient struct {
	baseURL string
	timeout time.Duration
	httpc   *http.Client
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewBinanceClient creates a client; zero option values fall back to defaults.
func NewBinanceClient(opts Options) *BinanceClient {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.binance.com"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.RatePerSec <= 0 {
		opts.RatePerSec = 10
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}

	return &BinanceClient{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		timeout: opts.Timeout,
		httpc:   opts.HTTPClient,
		limiter: rate.NewLimiter(rate.Limit(opts.RatePerSec), opts.RatePerSec),
		log:     logger.With("exchange"),
	}
}

// MarketID converts a normalized BASE/QUOTE symbol into the exchange market id
// (BTC/USDT -> BTCUSDT).
func MarketID(symbol string) (string, error) {
	base, quote, ok := strings.Cut(symbol, "/")
	if !ok || !isAsset(base) || !isAsset(quote) {
		return "", fmt.Errorf("%w: binance does not have market symbol %s", ErrBadSymbol, symbol)
	}
	return base + quote, nil
}

func isAsset(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// FetchDailyCandles returns up to limit of the most recent daily candles for
// symbol, oldest first. An unknown market yields ErrBadSymbol; a listed market
// without history yields an empty slice.
func (c *BinanceClient) FetchDailyCandles(ctx context.Context, symbol string, limit int) ([]models.Candle, error) {
	market, err := MarketID(symbol)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}

	params := url.Values{}
	params.Set("symbol", market)
	params.Set("interval", dailyInterval)
	params.Set("limit", strconv.Itoa(limit))

	body, err := c.get(ctx, klinesPath, params)
	if err != nil {
		return nil, fmt.Errorf("fetching daily candles for %s: %w", symbol, err)
	}

	candles, err := ParseKlines(body)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding klines for %s: %w", ErrUpstream, symbol, err)
	}

	c.log.Debug().Str("symbol", symbol).Int("candles", len(candles)).Msg("fetched daily candles")
	return candles, nil
}

// Ping checks that the exchange API is reachable.
func (c *BinanceClient) Ping(ctx context.Context) error {
	_, err := c.get(ctx, pingPath, nil)
	return err
}

// Close releases idle keep-alive connections held by the underlying transport.
func (c *BinanceClient) Close() {
	c.httpc.CloseIdleConnections()
}

// get performs a rate limited GET bounded by the client timeout and returns the body of a 200 response.
func (c *BinanceClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %w", ErrUpstream, err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %w", ErrUpstream, err)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("path", path).Dur("elapsed", time.Since(start)).Msg("exchange request failed")
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %w", ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, body)
	}

	return body, nil
}

// apiError classifies a non-200 exchange response.
func apiError(status int, body []byte) error {
	code := gjson.GetBytes(body, "code")
	msg := gjson.GetBytes(body, "msg").String()

	if code.Exists() && code.Int() == codeInvalidSymbol {
		return fmt.Errorf("%w: %s", ErrBadSymbol, msg)
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return fmt.Errorf("%w: status %d: %s", ErrUpstream, status, msg)
}

// ParseKlines decodes a klines payload: an array of
// [openTime, open, high, low, close, volume, ...] rows with prices as strings.
func ParseKlines(body []byte) ([]models.Candle, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid json payload")
	}
	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		return nil, fmt.Errorf("expected array payload, got %s", root.Type)
	}

	rows := root.Array()
	candles := make([]models.Candle, 0, len(rows))
	for idx, row := range rows {
		cols := row.Array()
		if len(cols) < 6 {
			return nil, fmt.Errorf("row %d: expected at least 6 columns, got %d", idx, len(cols))
		}
		if cols[0].Type != gjson.Number {
			return nil, fmt.Errorf("row %d: open time is not a number", idx)
		}

		var values [5]float64
		for i := range values {
			v, err := parseNumber(cols[i+1])
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", idx, i+1, err)
			}
			values[i] = v
		}

		candles = append(candles, models.Candle{
			OpenTime: time.UnixMilli(cols[0].Int()).UTC(),
			Open:     values[0],
			High:     values[1],
			Low:      values[2],
			Close:    values[3],
			Volume:   values[4],
		})
	}

	return candles, nil
}

func parseNumber(r gjson.Result) (float64, error) {
	switch r.Type {
	case gjson.Number:
		return r.Num, nil
	case gjson.String:
		return strconv.ParseFloat(r.Str, 64)
	default:
		return 0, fmt.Errorf("unexpected %s value", r.Type)
	}
}
