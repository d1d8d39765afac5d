package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cryptolens/internal/logger"
	"github.com/rs/zerolog"
)

// RequestLogger is a Gin middleware that writes one structured log line per request.
//
// Fields: request_id, method, path, symbol (when present), status, latency_ms, client_ip.
// Server errors are logged at error level, client errors at warn, the rest at info.
//
// Example log output:
//
//	{"level":"info","request_id":"123e4567-...","method":"GET","path":"/api/analyze","symbol":"btc-usdt","status":200,"latency_ms":184,"message":"http_request"}
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		symbol := c.Query("symbol")

		c.Next()

		status := c.Writer.Status()

		var event *zerolog.Event
		switch {
		case status >= 500:
			event = logger.L().Error()
		case status >= 400:
			event = logger.L().Warn()
		default:
			event = logger.L().Info()
		}

		if symbol != "" {
			event = event.Str("symbol", symbol)
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}

		event.
			Str("request_id", RequestIDFrom(c)).
			Str("method", method).
			Str("path", path).
			Int("status", status).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}
