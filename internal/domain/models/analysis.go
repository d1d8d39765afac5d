package models

import "time"

// Analysis is the outcome of analyzing one symbol: the latest candle's close
// and the indicator values computed for that candle.
//
// Values are kept at full precision; rounding happens in the response DTO.
type Analysis struct {
	Symbol     string
	ClosePrice float64
	Indicators IndicatorRow
	OpenTime   time.Time
}
