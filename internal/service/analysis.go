package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/guttosm/cryptolens/internal/domain/models"
	"github.com/guttosm/cryptolens/internal/logger"
)

// CandleLimit is the number of daily candles requested per analysis.
const CandleLimit = 200

// Failure messages shared by the HTTP handler and the batch runner.
const (
	MsgBadSymbol = "invalid or unsupported symbol"
	MsgInternal  = "internal error"
)

// NotFoundMessage reports that the exchange returned no candles for symbol.
func NotFoundMessage(symbol string) string {
	return fmt.Sprintf("no data found for symbol %s", symbol)
}

// CandleFetcher retrieves daily candles from an exchange, oldest first.
type CandleFetcher interface {
	FetchDailyCandles(ctx context.Context, symbol string, limit int) ([]models.Candle, error)
}

// IndicatorEngine computes one IndicatorRow per candle.
type IndicatorEngine interface {
	Compute(candles []models.Candle) ([]models.IndicatorRow, error)
}

// AnalysisService defines the business logic behind the analyze endpoint.
type AnalysisService interface {
	// Analyze returns the latest close and indicator values for symbol.
	// It returns nil, nil when the exchange has no candles for the symbol.
	Analyze(ctx context.Context, symbol string) (*models.Analysis, error)
}

type analysisService struct {
	fetcher CandleFetcher
	engine  IndicatorEngine
}

// NewAnalysisService builds an AnalysisService over an exchange fetcher and an indicator engine.
func NewAnalysisService(fetcher CandleFetcher, engine IndicatorEngine) AnalysisService {
	return &analysisService{fetcher: fetcher, engine: engine}
}

// NormalizeSymbol maps a user supplied pair to the exchange format: every
// hyphen becomes a slash and the result is uppercased (btc-usdt -> BTC/USDT).
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, "-", "/"))
}

// Analyze accepts raw user input and normalizes it itself; callers need not.
func (s *analysisService) Analyze(ctx context.Context, symbol string) (*models.Analysis, error) {
	symbol = NormalizeSymbol(symbol)
	log := logger.With("analysis").With().Str("symbol", symbol).Logger()

	candles, err := s.fetcher.FetchDailyCandles(ctx, symbol, CandleLimit)
	if err != nil {
		return nil, err
	}
	if len(candles) == 0 {
		log.Info().Msg("no candles returned")
		return nil, nil
	}

	rows, err := s.engine.Compute(candles)
	if err != nil {
		return nil, fmt.Errorf("computing indicators for %s: %w", symbol, err)
	}
	if len(rows) != len(candles) {
		return nil, fmt.Errorf("computing indicators for %s: got %d rows for %d candles", symbol, len(rows), len(candles))
	}

	last := candles[len(candles)-1]
	log.Debug().Int("candles", len(candles)).Time("open_time", last.OpenTime).Msg("analysis computed")

	return &models.Analysis{
		Symbol:     symbol,
		ClosePrice: last.Close,
		Indicators: rows[len(rows)-1],
		OpenTime:   last.OpenTime,
	}, nil
}
