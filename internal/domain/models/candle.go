package models

import "time"

// Candle represents one OHLCV period as returned by the exchange.
//
// OpenTime is the start of the period in UTC, converted from the exchange's
// millisecond epoch timestamp.
type Candle struct {
	OpenTime time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   float64
}

// Closes extracts the closing prices of candles in order.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i := range candles {
		out[i] = candles[i].Close
	}
	return out
}
