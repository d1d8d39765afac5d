package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cryptolens/internal/domain/dto"
	"github.com/guttosm/cryptolens/internal/domain/models"
	"github.com/guttosm/cryptolens/internal/exchange"
	"github.com/guttosm/cryptolens/internal/indicator"
	"github.com/guttosm/cryptolens/internal/service"
)

type mockAnalysisService struct {
	resp      *models.Analysis
	err       error
	gotSymbol string
}

func (m *mockAnalysisService) Analyze(_ context.Context, symbol string) (*models.Analysis, error) {
	m.gotSymbol = symbol
	return m.resp, m.err
}

var _ service.AnalysisService = (*mockAnalysisService)(nil)

func setupRouterWithMock(s service.AnalysisService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s)
	r := gin.New()
	r.GET("/", h.Home)
	r.GET("/api/analyze", h.Analyze)
	return r
}

func decodeBody(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("invalid json %q: %v", body, err)
	}
	return out
}

func TestAnalyze_TableDriven(t *testing.T) {
	rsi := 55.1234
	ok := &models.Analysis{
		Symbol:     "BTC/USDT",
		ClosePrice: 67123.456,
		Indicators: models.IndicatorRow{RSI: &rsi},
		OpenTime:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	badSymbol := fmt.Errorf("fetching daily candles for FOO/BAR: %w: Invalid symbol.", exchange.ErrBadSymbol)

	cases := []struct {
		name       string
		svc        *mockAnalysisService
		query      string
		status     int
		wantSymbol string
		assert     func(t *testing.T, body map[string]any)
	}{
		{
			name:   "missing symbol",
			svc:    &mockAnalysisService{},
			query:  "/api/analyze",
			status: http.StatusBadRequest,
			assert: func(t *testing.T, body map[string]any) {
				if msg, _ := body["error"].(string); !strings.Contains(msg, "symbol=BTC/USDT") {
					t.Fatalf("error should describe the parameter, got %q", msg)
				}
			},
		},
		{
			name:   "empty symbol",
			svc:    &mockAnalysisService{},
			query:  "/api/analyze?symbol=",
			status: http.StatusBadRequest,
		},
		{
			name:       "invalid symbol",
			svc:        &mockAnalysisService{err: badSymbol},
			query:      "/api/analyze?symbol=foo-bar",
			status:     http.StatusBadRequest,
			wantSymbol: "FOO/BAR",
			assert: func(t *testing.T, body map[string]any) {
				if msg, _ := body["error"].(string); !strings.Contains(msg, "Invalid symbol.") {
					t.Fatalf("error should embed exchange detail, got %q", msg)
				}
			},
		},
		{
			name:       "not found",
			svc:        &mockAnalysisService{},
			query:      "/api/analyze?symbol=new-coin",
			status:     http.StatusNotFound,
			wantSymbol: "NEW/COIN",
			assert: func(t *testing.T, body map[string]any) {
				if msg, _ := body["error"].(string); !strings.Contains(msg, "NEW/COIN") {
					t.Fatalf("error should name the symbol, got %q", msg)
				}
			},
		},
		{
			name:       "internal error",
			svc:        &mockAnalysisService{err: fmt.Errorf("%w: connection refused", exchange.ErrUpstream)},
			query:      "/api/analyze?symbol=BTC/USDT",
			status:     http.StatusInternalServerError,
			wantSymbol: "BTC/USDT",
			assert: func(t *testing.T, body map[string]any) {
				if msg, _ := body["error"].(string); !strings.Contains(msg, "connection refused") {
					t.Fatalf("error should embed the cause, got %q", msg)
				}
			},
		},
		{
			name:       "timeout",
			svc:        &mockAnalysisService{err: context.DeadlineExceeded},
			query:      "/api/analyze?symbol=BTC/USDT",
			status:     http.StatusInternalServerError,
			wantSymbol: "BTC/USDT",
		},
		{
			name:       "success",
			svc:        &mockAnalysisService{resp: ok},
			query:      "/api/analyze?symbol=btc-usdt",
			status:     http.StatusOK,
			wantSymbol: "BTC/USDT",
			assert: func(t *testing.T, body map[string]any) {
				if body["symbol"] != "BTC/USDT" || body["close_price"] != 67123.456 || body["timestamp"] != "2024-06-01T00:00:00Z" {
					t.Fatalf("unexpected body: %v", body)
				}
				ind := body["indicators"].(map[string]any)
				if ind["rsi"] != 55.12 {
					t.Fatalf("expected rounded rsi, got %v", ind["rsi"])
				}
				if macd := ind["macd"].(map[string]any); macd["macd_line"] != nil {
					t.Fatalf("expected null macd line, got %v", macd["macd_line"])
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			req := httptest.NewRequest(http.MethodGet, tc.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d (%s)", tc.status, w.Code, w.Body.String())
			}
			if tc.svc.gotSymbol != tc.wantSymbol {
				t.Fatalf("service called with %q, want %q", tc.svc.gotSymbol, tc.wantSymbol)
			}
			body := decodeBody(t, w.Body.Bytes())
			if tc.status != http.StatusOK {
				if _, ok := body["error"]; !ok {
					t.Fatalf("error field missing: %v", body)
				}
			}
			if tc.assert != nil {
				tc.assert(t, body)
			}
		})
	}
}

func TestHome(t *testing.T) {
	r := setupRouterWithMock(&mockAnalysisService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "/api/analyze?symbol=") {
		t.Fatalf("unexpected banner: %d %q", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("expected plain text, got %q", ct)
	}
}

// ─── Pipeline tests: real service and engine, fake exchange ───────

type fakeExchange struct {
	candles []models.Candle
	err     error
}

func (f *fakeExchange) FetchDailyCandles(_ context.Context, _ string, limit int) ([]models.Candle, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.candles) > limit {
		return f.candles[len(f.candles)-limit:], nil
	}
	return f.candles, nil
}

type failingEngine struct{}

func (failingEngine) Compute([]models.Candle) ([]models.IndicatorRow, error) {
	return nil, fmt.Errorf("%w: unexpected", indicator.ErrComputation)
}

func knownCandles(n int) []models.Candle {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.Candle, n)
	for i := range out {
		c := 40000 + 1500*math.Sin(float64(i)/7) + 25*float64(i) + 0.123456
		out[i] = models.Candle{OpenTime: start.AddDate(0, 0, i), Open: c - 10, High: c + 50, Low: c - 60, Close: c, Volume: 1000}
	}
	return out
}

func serve(t *testing.T, fetcher service.CandleFetcher, engine service.IndicatorEngine, query string) *httptest.ResponseRecorder {
	t.Helper()
	r := setupRouterWithMock(service.NewAnalysisService(fetcher, engine))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, query, nil))
	return w
}

func TestAnalyze_Pipeline_KnownCandles(t *testing.T) {
	candles := knownCandles(service.CandleLimit)
	w := serve(t, &fakeExchange{candles: candles}, indicator.NewEngine(), "/api/analyze?symbol=BTC/USDT")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var resp dto.AnalysisResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	last := candles[len(candles)-1]
	if resp.ClosePrice != last.Close {
		t.Fatalf("close_price %v, want unrounded %v", resp.ClosePrice, last.Close)
	}
	if resp.Timestamp != last.OpenTime.Format(time.RFC3339) {
		t.Fatalf("timestamp %q, want %q", resp.Timestamp, last.OpenTime.Format(time.RFC3339))
	}

	// Ensure every indicator is a number with at most two decimals on the wire.
	dec := json.NewDecoder(bytes.NewReader(w.Body.Bytes()))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	ind := raw["indicators"].(map[string]any)
	values := map[string]any{
		"rsi":         ind["rsi"],
		"macd_line":   ind["macd"].(map[string]any)["macd_line"],
		"signal_line": ind["macd"].(map[string]any)["signal_line"],
		"histogram":   ind["macd"].(map[string]any)["histogram"],
		"lower_band":  ind["bollinger_bands"].(map[string]any)["lower_band"],
		"middle_band": ind["bollinger_bands"].(map[string]any)["middle_band"],
		"upper_band":  ind["bollinger_bands"].(map[string]any)["upper_band"],
	}
	for name, v := range values {
		n, ok := v.(json.Number)
		if !ok {
			t.Fatalf("%s should be a number, got %v", name, v)
		}
		if _, frac, found := strings.Cut(n.String(), "."); found && len(frac) > 2 {
			t.Fatalf("%s has more than two decimals: %s", name, n)
		}
	}
}

func TestAnalyze_Pipeline_ShortSeries(t *testing.T) {
	w := serve(t, &fakeExchange{candles: knownCandles(13)}, indicator.NewEngine(), "/api/analyze?symbol=BTC/USDT")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w.Body.Bytes())
	ind := body["indicators"].(map[string]any)
	if v, present := ind["rsi"]; !present || v != nil {
		t.Fatalf("rsi should be present and null, got %v (present=%v)", v, present)
	}
}

func TestAnalyze_Pipeline_Failures(t *testing.T) {
	cases := []struct {
		name   string
		fetch  *fakeExchange
		engine service.IndicatorEngine
		status int
	}{
		{name: "empty series", fetch: &fakeExchange{}, engine: indicator.NewEngine(), status: http.StatusNotFound},
		{name: "bad symbol", fetch: &fakeExchange{err: fmt.Errorf("%w: Invalid symbol.", exchange.ErrBadSymbol)}, engine: indicator.NewEngine(), status: http.StatusBadRequest},
		{name: "engine failure", fetch: &fakeExchange{candles: knownCandles(50)}, engine: failingEngine{}, status: http.StatusInternalServerError},
		{name: "network failure", fetch: &fakeExchange{err: errors.New("dial tcp: i/o timeout")}, engine: indicator.NewEngine(), status: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(t, tc.fetch, tc.engine, "/api/analyze?symbol=BTC/USDT")
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d (%s)", tc.status, w.Code, w.Body.String())
			}
			if _, ok := decodeBody(t, w.Body.Bytes())["error"]; !ok {
				t.Fatalf("error field missing")
			}
		})
	}
}
