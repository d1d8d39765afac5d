package main

//
//  @title           cryptolens API
//  @version         1.0
//  @description     Technical indicators (RSI, MACD, Bollinger Bands) for cryptocurrency pairs.
//  @termsOfService  https://github.com/guttosm/cryptolens
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/cryptolens
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        analysis
//  @tag.description Indicator snapshots for a trading pair
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/cryptolens/config"
	_ "github.com/guttosm/cryptolens/docs" // swagger docs
	"github.com/guttosm/cryptolens/internal/app"
	"github.com/guttosm/cryptolens/internal/batch"
	"github.com/guttosm/cryptolens/internal/logger"
	"github.com/guttosm/cryptolens/internal/service"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): parent context for the shutdown deadline.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): releases the exchange client's connections.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// runBatch analyzes symbols and writes one JSON line per symbol to w.
// It reports whether every symbol succeeded.
func runBatch(ctx context.Context, svc service.AnalysisService, symbols string, parallel int, w io.Writer) (bool, error) {
	list := batch.ParseSymbols(symbols)
	if len(list) == 0 {
		return false, errors.New("--symbols is required in analyze mode, e.g. --symbols btc-usdt,eth/usdt")
	}

	summary, err := batch.Run(ctx, svc, list, parallel, w)
	if err != nil {
		return false, err
	}
	return summary.Failed == 0, nil
}

// main is the entry point of the cryptolens application.
//
// Modes (selected via --mode flag):
//   - api:     Starts the REST API (default).
//   - analyze: Runs the analysis once for --symbols and prints JSON lines to stdout.
//
// Flags:
//   - --mode:     Execution mode ("api" or "analyze"). Default: "api".
//   - --port:     Port for the API server. Defaults to value from config (SERVER_PORT).
//   - --symbols:  Comma separated pairs for analyze mode (e.g. btc-usdt,eth/usdt).
//   - --parallel: Concurrent analyses in analyze mode (0=auto up to CPU, max 8).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize logger
	logger.Init(config.AppConfig.Log.Level, config.AppConfig.Log.Pretty)

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api or analyze")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	symbols := flag.String("symbols", "", "Comma separated symbols for analyze mode")
	parallel := flag.Int("parallel", 0, "How many symbols to analyze concurrently (0=auto up to CPU, max 8)")
	flag.Parse()

	switch *mode {
	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	case "analyze":
		logger.L().Info().Msg("running batch analysis")

		svc, _, cleanup, err := app.InitializeAnalyzer()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		ok, err := runBatch(runCtx, svc, *symbols, *parallel, os.Stdout)
		stop()
		cleanup()

		if err != nil {
			logger.L().Fatal().Err(err).Msg("batch analysis failed")
		}
		if !ok {
			os.Exit(1)
		}

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
