package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"StockAdvisor/internal/calculator"
	"StockAdvisor/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Quote     model.Quote
	Closes    []float64
	QuoteErr  error
	ClosesErr error
	Delay     time.Duration
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if m.QuoteErr != nil {
		return nil, m.QuoteErr
	}
	q := m.Quote
	q.Symbol = symbol
	return &q, nil
}

func (m *MockFetcher) FetchCloses(ctx context.Context, symbol string) (*model.PriceSeries, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if m.ClosesErr != nil {
		return nil, m.ClosesErr
	}
	closes := m.Closes
	if closes == nil {
		closes = generateMockCloses(m.Quote.Price, 252)
	}
	return &model.PriceSeries{Symbol: symbol, Closes: append([]float64(nil), closes...), FetchedAt: time.Now()}, nil
}

func (m *MockFetcher) wait(ctx context.Context) error {
	if m.Delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return &FetchError{Source: "mock", Err: ctx.Err()}
	case <-time.After(m.Delay):
		return nil
	}
}

func generateMockCloses(basePrice float64, count int) []float64 {
	if basePrice == 0 {
		basePrice = 100
	}
	closes := make([]float64, count)
	for i := 0; i < count; i++ {
		closes[i] = basePrice * (1 + float64(i-count/2)*0.001)
	}
	return closes
}

// Indicator periods used by the scorer.
const (
	ShortSMAPeriod = 50
	LongSMAPeriod  = 200
	MACDShort      = 12
	MACDLong       = 26
)

// DefaultTimeout bounds each individual fetch.
const DefaultTimeout = 15 * time.Second

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher Fetcher
	Timeout time.Duration
}

// NewCollector creates a new Collector. A zero timeout selects DefaultTimeout.
func NewCollector(fetcher Fetcher, timeout time.Duration) *Collector {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Collector{Fetcher: fetcher, Timeout: timeout}
}

// Collect fetches the quote and price history concurrently and computes all
// indicators. Either fetch failing fails the whole collection.
func (c *Collector) Collect(ctx context.Context, symbol string) (*model.MarketIndicators, error) {
	var (
		quote  *model.Quote
		series *model.PriceSeries
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fctx, cancel := context.WithTimeout(gctx, c.Timeout)
		defer cancel()
		q, err := c.Fetcher.FetchQuote(fctx, symbol)
		if err != nil {
			return fmt.Errorf("fetch quote: %w", err)
		}
		quote = q
		return nil
	})
	g.Go(func() error {
		fctx, cancel := context.WithTimeout(gctx, c.Timeout)
		defer cancel()
		s, err := c.Fetcher.FetchCloses(fctx, symbol)
		if err != nil {
			return fmt.Errorf("fetch closes: %w", err)
		}
		series = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Compute(quote, series), nil
}

// Compute derives the latest indicator values from a quote and its history.
func Compute(quote *model.Quote, series *model.PriceSeries) *model.MarketIndicators {
	closes := series.Closes
	ind := &model.MarketIndicators{
		Quote:     *quote,
		LastClose: series.Last(),
		Bars:      len(closes),
	}

	// SMA50 / SMA200
	if s, err := calculator.SMA(closes, ShortSMAPeriod); err != nil {
		log.Printf("[WARN] SMA%d calculation failed: %v", ShortSMAPeriod, err)
	} else {
		ind.SMA50 = s.Latest()
	}
	if s, err := calculator.SMA(closes, LongSMAPeriod); err != nil {
		log.Printf("[WARN] SMA%d calculation failed: %v", LongSMAPeriod, err)
	} else {
		ind.SMA200 = s.Latest()
	}
	if !ind.SMA200.Valid {
		log.Printf("[WARN] %s: only %d closes, SMA%d undefined", quote.Symbol, len(closes), LongSMAPeriod)
	}

	// RSI14
	if s, err := calculator.RSI(closes, calculator.DefaultRSIPeriod); err != nil {
		log.Printf("[WARN] RSI calculation failed: %v", err)
	} else {
		ind.RSI14 = s.Latest()
	}

	// MACD line
	if s, err := calculator.MACD(closes, MACDShort, MACDLong); err != nil {
		log.Printf("[WARN] MACD calculation failed: %v", err)
	} else {
		ind.MACD = s.Latest()
	}

	// 52-week range
	if h, l, err := calculator.Range(closes, calculator.TradingDaysPerYear); err != nil {
		log.Printf("[WARN] 52-week range calculation failed: %v", err)
	} else {
		ind.High52w = model.Some(h)
		ind.Low52w = model.Some(l)
		if ind.LastClose.Valid {
			if pos, err := calculator.RangePosition(ind.LastClose.Float64, h, l); err != nil {
				log.Printf("[WARN] 52-week position calculation failed: %v", err)
			} else {
				ind.Position = model.Some(pos)
			}
		}
	}

	return ind
}
