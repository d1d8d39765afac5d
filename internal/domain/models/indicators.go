package models

// MACD holds the moving average convergence divergence values for one row.
// A nil field means the series was too short for the value to be defined.
type MACD struct {
	Line      *float64
	Signal    *float64
	Histogram *float64
}

// BollingerBands holds the band values for one row. Nil means undefined.
type BollingerBands struct {
	Lower  *float64
	Middle *float64
	Upper  *float64
}

// IndicatorRow is the set of indicator values computed for a single candle,
// at full precision.
type IndicatorRow struct {
	RSI       *float64
	MACD      MACD
	Bollinger BollingerBands
}
