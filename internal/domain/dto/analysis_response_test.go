package dto

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/guttosm/cryptolens/internal/domain/models"
)

func ptr(v float64) *float64 { return &v }

func TestRound2(t *testing.T) {
	cases := []struct {
		name string
		in   *float64
		want *float64
	}{
		{name: "nil", in: nil, want: nil},
		{name: "nan", in: ptr(math.NaN()), want: nil},
		{name: "inf", in: ptr(math.Inf(1)), want: nil},
		{name: "round down", in: ptr(55.12345), want: ptr(55.12)},
		{name: "round up", in: ptr(55.126), want: ptr(55.13)},
		{name: "negative", in: ptr(-12.3456), want: ptr(-12.35)},
		{name: "already rounded", in: ptr(10), want: ptr(10)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Round2(tc.in)
			if !cmp.Equal(got, tc.want) {
				t.Fatalf("Round2 mismatch: %s", cmp.Diff(tc.want, got))
			}
		})
	}
}

func TestNewAnalysisResponse(t *testing.T) {
	a := models.Analysis{
		Symbol:     "BTC/USDT",
		ClosePrice: 67123.456789,
		OpenTime:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Indicators: models.IndicatorRow{
			RSI:  ptr(55.1234),
			MACD: models.MACD{Line: ptr(812.399), Signal: ptr(640.021), Histogram: ptr(172.378)},
			Bollinger: models.BollingerBands{
				Lower: ptr(61020.504), Middle: ptr(64870.111), Upper: ptr(68719.718),
			},
		},
	}

	want := AnalysisResponse{
		Symbol:     "BTC/USDT",
		ClosePrice: 67123.456789,
		Indicators: IndicatorsResponse{
			RSI:            ptr(55.12),
			MACD:           MACDResponse{MACDLine: ptr(812.4), SignalLine: ptr(640.02), Histogram: ptr(172.38)},
			BollingerBands: BollingerBandsResponse{LowerBand: ptr(61020.5), MiddleBand: ptr(64870.11), UpperBand: ptr(68719.72)},
		},
		Timestamp: "2024-06-01T00:00:00Z",
	}

	if diff := cmp.Diff(want, NewAnalysisResponse(a)); diff != "" {
		t.Fatalf("unexpected response (-want +got):\n%s", diff)
	}
}

func TestNewAnalysisResponse_NullIndicators(t *testing.T) {
	a := models.Analysis{Symbol: "ETH/USDT", ClosePrice: 3000, OpenTime: time.UnixMilli(0)}
	b, err := json.Marshal(NewAnalysisResponse(a))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	const want = `{"symbol":"ETH/USDT","close_price":3000,"indicators":{"rsi":null,` +
		`"macd":{"macd_line":null,"signal_line":null,"histogram":null},` +
		`"bollinger_bands":{"lower_band":null,"middle_band":null,"upper_band":null}},` +
		`"timestamp":"1970-01-01T00:00:00Z"}`
	if string(b) != want {
		t.Fatalf("unexpected json:\n got %s\nwant %s", b, want)
	}
}
