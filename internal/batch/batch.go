// Package batch runs the analysis pipeline for several symbols concurrently
// and streams one JSON line per symbol.
package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/cryptolens/internal/domain/dto"
	"github.com/guttosm/cryptolens/internal/exchange"
	"github.com/guttosm/cryptolens/internal/logger"
	"github.com/guttosm/cryptolens/internal/service"
)

// MaxParallel caps concurrent analyses so a batch stays within the exchange's request weight.
const MaxParallel = 8

// Failure is the output line written for a symbol that could not be analyzed.
type Failure struct {
	Symbol string `json:"symbol"`
	Error  string `json:"error"`
}

// Summary counts the outcome of a batch run.
type Summary struct {
	Succeeded int
	Failed    int
}

// ParseSymbols splits a comma separated list, normalizes each entry and drops
// blanks and duplicates while keeping the first-seen order.
func ParseSymbols(list string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sym := service.NormalizeSymbol(part)
		if _, dup := seen[sym]; dup {
			continue
		}
		seen[sym] = struct{}{}
		out = append(out, sym)
	}
	return out
}

// clampParallel returns a worker count in [1, MaxParallel]; zero or negative
// picks min(MaxParallel, NumCPU).
func clampParallel(parallel int) int {
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}
	if parallel > MaxParallel {
		parallel = MaxParallel
	}
	if parallel < 1 {
		parallel = 1
	}
	return parallel
}

// Run analyzes every symbol with at most parallel concurrent requests and
// writes one JSON line per symbol to w, in input order. A failing symbol is
// reported on its own line and never aborts the rest of the batch.
//
// Returns:
//   - Summary: succeeded/failed counts.
//   - error: only for output failures or a cancelled ctx.
func Run(ctx context.Context, svc service.AnalysisService, symbols []string, parallel int, w io.Writer) (Summary, error) {
	workers := clampParallel(parallel)
	logger.L().Info().Int("symbols", len(symbols)).Int("max_parallel", workers).Msg("batch start")

	lines := make([]any, len(symbols))
	var g errgroup.Group
	g.SetLimit(workers)

	for i, sym := range symbols {
		i, sym := i, sym
		g.Go(func() error {
			start := time.Now()
			lines[i] = analyzeOne(ctx, svc, sym)
			logger.L().Debug().Int("idx", i+1).Int("total", len(symbols)).Str("symbol", sym).Dur("elapsed", time.Since(start)).Msg("symbol done")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	var summary Summary
	enc := json.NewEncoder(w)
	for i, line := range lines {
		if f, ok := line.(Failure); ok {
			summary.Failed++
			logger.L().Warn().Str("symbol", symbols[i]).Str("error", f.Error).Msg("symbol failed")
		} else {
			summary.Succeeded++
		}
		if err := enc.Encode(line); err != nil {
			return summary, fmt.Errorf("writing result for %s: %w", symbols[i], err)
		}
	}

	logger.L().Info().Int("succeeded", summary.Succeeded).Int("failed", summary.Failed).Msg("batch done")
	return summary, ctx.Err()
}

// analyzeOne returns a dto.AnalysisResponse or a Failure for symbol, using
// the same messages as the HTTP endpoint.
func analyzeOne(ctx context.Context, svc service.AnalysisService, symbol string) any {
	analysis, err := svc.Analyze(ctx, symbol)
	switch {
	case errors.Is(err, exchange.ErrBadSymbol):
		return Failure{Symbol: symbol, Error: dto.NewErrorResponse(service.MsgBadSymbol, err).Message}
	case err != nil:
		return Failure{Symbol: symbol, Error: dto.NewErrorResponse(service.MsgInternal, err).Message}
	case analysis == nil:
		return Failure{Symbol: symbol, Error: service.NotFoundMessage(symbol)}
	}
	return dto.NewAnalysisResponse(*analysis)
}
