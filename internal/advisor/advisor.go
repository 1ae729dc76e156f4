// Package advisor runs one analysis: fetch, compute indicators, score.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"StockAdvisor/internal/collector"
	"StockAdvisor/internal/model"
	"StockAdvisor/internal/strategy"
)

// ErrEmptySymbol is returned when the ticker is blank after trimming.
var ErrEmptySymbol = errors.New("symbol is required")

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		return "", ErrEmptySymbol
	}
	return s, nil
}

// Advisor is stateless between calls and safe for concurrent use.
type Advisor struct {
	Collector *collector.Collector
}

// New creates an Advisor.
func New(col *collector.Collector) *Advisor {
	return &Advisor{Collector: col}
}

// Analyze produces a scored recommendation for symbol. Any fetch failure
// aborts the analysis.
func (a *Advisor) Analyze(ctx context.Context, symbol string) (*model.Analysis, error) {
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] analyzing %s via %s", sym, a.Collector.Fetcher.Name())
	ind, err := a.Collector.Collect(ctx, sym)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", sym, err)
	}

	res := strategy.Evaluate(ind)
	log.Printf("[INFO] %s: score %.1f%% -> %s", sym, res.Score, res.Recommendation)

	return &model.Analysis{
		Symbol:     sym,
		Indicators: ind,
		Result:     res,
		AnalyzedAt: time.Now(),
	}, nil
}
