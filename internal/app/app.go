package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cryptolens/config"
	"github.com/guttosm/cryptolens/internal/api"
	"github.com/guttosm/cryptolens/internal/indicator"
	"github.com/guttosm/cryptolens/internal/service"
)

// InitializeAnalyzer wires the analysis pipeline (exchange client, indicator
// engine, service) from config.AppConfig. It backs both the HTTP API and the
// batch CLI mode.
//
// Returns:
//   - service.AnalysisService: ready to use service.
//   - func(context.Context) error: exchange ping used by the readiness probe.
//   - func(): cleanup releasing the exchange client's connections.
//   - error: any initialization error that occurred.
func InitializeAnalyzer() (service.AnalysisService, func(context.Context) error, func(), error) {
	cfg := config.AppConfig

	// indirection for unit testing
	client, err := exchangeOpener(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize exchange client: %w", err)
	}

	svc := service.NewAnalysisService(client, indicator.NewEngine())

	return svc, client.Ping, client.Close, nil
}

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the analysis pipeline via InitializeAnalyzer().
//   - Creates the HTTP handler layer to handle requests.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes (readiness pings the exchange).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	svc, ping, cleanup, err := InitializeAnalyzer()
	if err != nil {
		return nil, nil, err
	}

	handler := api.NewHandler(svc)
	router := api.NewRouter(handler, config.AppConfig.Server.RateLimitPerMinute)

	healthHandler := api.NewHealthHandler(ping)
	healthHandler.Register(router)

	return router, cleanup, nil
}
