// Package indicator computes the technical indicators exposed by the analysis
// endpoint over a full candle series.
package indicator

import (
	"errors"
	"fmt"
	"math"

	"github.com/guttosm/cryptolens/internal/domain/models"
)

// Indicator parameters. They are fixed for the service.
const (
	RSIPeriod       = 14
	MACDFastPeriod  = 12
	MACDSlowPeriod  = 26
	MACDSignal      = 9
	BollingerPeriod = 20
	BollingerWidth  = 2.0
)

// ErrComputation is returned when the candle series cannot be processed.
var ErrComputation = errors.New("indicator computation failed")

// Engine computes RSI, MACD and Bollinger Bands for every candle of a series.
type Engine struct{}

// NewEngine returns a ready to use Engine. It holds no state and is safe for concurrent use.
func NewEngine() *Engine {
	return &Engine{}
}

// Compute returns one IndicatorRow per candle, in the same order as candles.
// Values that need more history than is available are left nil.
func (e *Engine) Compute(candles []models.Candle) ([]models.IndicatorRow, error) {
	if len(candles) == 0 {
		return nil, fmt.Errorf("%w: empty candle series", ErrComputation)
	}

	closes := models.Closes(candles)
	for i, c := range closes {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("%w: non-finite close %v at index %d", ErrComputation, c, i)
		}
	}

	rsiSeries := rsi(closes, RSIPeriod)
	line, signal, hist := macd(closes, MACDFastPeriod, MACDSlowPeriod, MACDSignal)
	lower, middle, upper := bollinger(closes, BollingerPeriod, BollingerWidth)

	rows := make([]models.IndicatorRow, len(candles))
	for i := range rows {
		rows[i] = models.IndicatorRow{
			RSI: defined(rsiSeries[i]),
			MACD: models.MACD{
				Line:      defined(line[i]),
				Signal:    defined(signal[i]),
				Histogram: defined(hist[i]),
			},
			Bollinger: models.BollingerBands{
				Lower:  defined(lower[i]),
				Middle: defined(middle[i]),
				Upper:  defined(upper[i]),
			},
		}
	}

	return rows, nil
}

func defined(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
