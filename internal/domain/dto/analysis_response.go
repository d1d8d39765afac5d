package dto

import (
	"math"
	"time"

	"github.com/guttosm/cryptolens/internal/domain/models"
	"github.com/shopspring/decimal"
)

// AnalysisResponse represents the JSON structure returned by the
// GET /api/analyze endpoint.
//
// Indicator values are rounded to two decimals; a null value means the candle
// series was too short for the indicator to be defined.
type AnalysisResponse struct {
	Symbol     string             `json:"symbol" example:"BTC/USDT"`
	ClosePrice float64            `json:"close_price" example:"67123.45"`
	Indicators IndicatorsResponse `json:"indicators"`
	Timestamp  string             `json:"timestamp" example:"2024-06-01T00:00:00Z"`
}

// IndicatorsResponse groups the indicator values of the latest candle.
type IndicatorsResponse struct {
	RSI            *float64               `json:"rsi" example:"55.12"`
	MACD           MACDResponse           `json:"macd"`
	BollingerBands BollingerBandsResponse `json:"bollinger_bands"`
}

type MACDResponse struct {
	MACDLine   *float64 `json:"macd_line" example:"812.4"`
	SignalLine *float64 `json:"signal_line" example:"640.02"`
	Histogram  *float64 `json:"histogram" example:"172.38"`
}

type BollingerBandsResponse struct {
	LowerBand  *float64 `json:"lower_band" example:"61020.5"`
	MiddleBand *float64 `json:"middle_band" example:"64870.11"`
	UpperBand  *float64 `json:"upper_band" example:"68719.72"`
}

// NewAnalysisResponse maps a domain analysis into its API representation.
// The close price is passed through unrounded.
func NewAnalysisResponse(a models.Analysis) AnalysisResponse {
	ind := a.Indicators
	return AnalysisResponse{
		Symbol:     a.Symbol,
		ClosePrice: a.ClosePrice,
		Indicators: IndicatorsResponse{
			RSI: Round2(ind.RSI),
			MACD: MACDResponse{
				MACDLine:   Round2(ind.MACD.Line),
				SignalLine: Round2(ind.MACD.Signal),
				Histogram:  Round2(ind.MACD.Histogram),
			},
			BollingerBands: BollingerBandsResponse{
				LowerBand:  Round2(ind.Bollinger.Lower),
				MiddleBand: Round2(ind.Bollinger.Middle),
				UpperBand:  Round2(ind.Bollinger.Upper),
			},
		},
		Timestamp: a.OpenTime.UTC().Format(time.RFC3339),
	}
}

// Round2 rounds v to two decimal places for presentation.
// Nil and non-finite inputs yield nil so they serialize as JSON null.
func Round2(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	r := decimal.NewFromFloat(*v).Round(2).InexactFloat64()
	return &r
}
