package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cryptolens/internal/domain/dto"
	"github.com/guttosm/cryptolens/internal/exchange"
	"github.com/guttosm/cryptolens/internal/middleware"
	"github.com/guttosm/cryptolens/internal/service"
)

const banner = "Crypto Analysis API is running. Use GET /api/analyze?symbol=BTC/USDT (or btc-usdt) " +
	"to get RSI(14), MACD(12,26,9) and Bollinger Bands(20,2) for the latest daily candle.\n"

// Handler provides HTTP handlers for the analysis endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters
//   - Delegate to the analysis service
//   - Map service errors to HTTP status codes
//   - Return structured JSON responses
type Handler struct {
	svc service.AnalysisService
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.AnalysisService) *Handler {
	return &Handler{svc: svc}
}

// Home handles GET / with a plain-text banner describing the API.
func (h *Handler) Home(c *gin.Context) {
	c.String(http.StatusOK, banner)
}

// Analyze handles GET /api/analyze requests.
//
// Query Parameters:
//   - symbol (string, required): trading pair, e.g. "BTC/USDT" or "btc-usdt".
//
// Responses:
//   - 200 OK: AnalysisResponse with the latest close and indicator values.
//   - 400 Bad Request: missing symbol, or symbol rejected by the exchange.
//   - 404 Not Found: the exchange returned no candles for the symbol.
//   - 500 Internal Server Error: exchange unreachable, timeout or computation failure.
//
// Analyze godoc
// @Summary      Analyze a trading pair
// @Description  Fetches the last 200 daily candles and returns RSI(14), MACD(12,26,9) and Bollinger Bands(20,2) for the latest one
// @Tags         analysis
// @Produce      json
// @Param        symbol  query     string  true  "Trading pair" example(BTC/USDT)
// @Success      200     {object}  dto.AnalysisResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse     "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse     "Not Found"
// @Failure      500     {object}  dto.ErrorResponse     "Internal Error"
// @Router       /api/analyze [get]
func (h *Handler) Analyze(c *gin.Context) {
	// ─── Validate "symbol" param ──────────────────────────────
	raw := c.Query("symbol")
	if raw == "" {
		middleware.AbortWithError(c, http.StatusBadRequest,
			"query parameter 'symbol' is required, e.g. /api/analyze?symbol=BTC/USDT", nil)
		return
	}
	symbol := service.NormalizeSymbol(raw)

	// ─── Query service (with request context) ─────────────────
	analysis, err := h.svc.Analyze(c.Request.Context(), symbol)
	switch {
	case errors.Is(err, exchange.ErrBadSymbol):
		middleware.AbortWithError(c, http.StatusBadRequest, service.MsgBadSymbol, err)
		return
	case err != nil:
		middleware.AbortWithError(c, http.StatusInternalServerError, service.MsgInternal, err)
		return
	case analysis == nil:
		middleware.AbortWithError(c, http.StatusNotFound, service.NotFoundMessage(symbol), nil)
		return
	}

	c.JSON(http.StatusOK, dto.NewAnalysisResponse(*analysis))
}
