package indicator

import "math"

// The functions in this file operate on whole price series and return a series
// of the same length. Positions where a value is not yet defined hold NaN.

func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func firstValid(values []float64) int {
	for i, v := range values {
		if !math.IsNaN(v) {
			return i
		}
	}
	return -1
}

// sma is the simple moving average over a trailing window of period values.
func sma(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	var sum float64
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// stddev is the population standard deviation over a trailing window of period values.
func stddev(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	mean := sma(values, period)

	for i := period - 1; i < len(values) && period > 0; i++ {
		var variance float64
		for _, v := range values[i-period+1 : i+1] {
			variance += (v - mean[i]) * (v - mean[i])
		}
		out[i] = math.Sqrt(variance / float64(period))
	}
	return out
}

// ema is the exponential moving average seeded with the SMA of the first period
// valid values. Leading NaNs are skipped, so ema can be chained on the output
// of another indicator.
func ema(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	start := firstValid(values)
	if period <= 0 || start < 0 || len(values)-start < period {
		return out
	}

	seedAt := start + period - 1
	var sum float64
	for _, v := range values[start : seedAt+1] {
		sum += v
	}
	out[seedAt] = sum / float64(period)

	alpha := 2.0 / float64(period+1)
	for i := seedAt + 1; i < len(values); i++ {
		out[i] = out[i-1] + alpha*(values[i]-out[i-1])
	}
	return out
}

// rma is Wilder's moving average: an adjusted exponential average with
// alpha = 1/period that is defined once period valid observations were seen.
func rma(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	if period <= 0 {
		return out
	}

	decay := 1 - 1/float64(period)
	var num, den float64
	seen := 0
	for i, v := range values {
		if math.IsNaN(v) {
			if seen > 0 {
				out[i] = out[i-1]
			}
			continue
		}
		num = v + decay*num
		den = 1 + decay*den
		seen++
		if seen >= period {
			out[i] = num / den
		}
	}
	return out
}

// rsi is the relative strength index of closes. A window without any price
// movement has no defined RSI.
func rsi(closes []float64, period int) []float64 {
	gains := nanSeries(len(closes))
	losses := nanSeries(len(closes))
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gains[i] = math.Max(change, 0)
		losses[i] = math.Max(-change, 0)
	}

	avgGain := rma(gains, period)
	avgLoss := rma(losses, period)

	out := nanSeries(len(closes))
	for i := range closes {
		total := avgGain[i] + avgLoss[i]
		if math.IsNaN(total) || total == 0 {
			continue
		}
		out[i] = 100 * avgGain[i] / total
	}
	return out
}

// macd returns the MACD line, its signal line and the histogram.
func macd(closes []float64, fast, slow, signal int) (line, sig, hist []float64) {
	fastEMA := ema(closes, fast)
	slowEMA := ema(closes, slow)

	line = make([]float64, len(closes))
	for i := range closes {
		line[i] = fastEMA[i] - slowEMA[i]
	}

	sig = ema(line, signal)

	hist = make([]float64, len(closes))
	for i := range closes {
		hist[i] = line[i] - sig[i]
	}
	return line, sig, hist
}

// bollinger returns the lower, middle and upper bands.
func bollinger(closes []float64, period int, width float64) (lower, middle, upper []float64) {
	middle = sma(closes, period)
	sd := stddev(closes, period)

	lower = make([]float64, len(closes))
	upper = make([]float64, len(closes))
	for i := range closes {
		lower[i] = middle[i] - width*sd[i]
		upper[i] = middle[i] + width*sd[i]
	}
	return lower, middle, upper
}
