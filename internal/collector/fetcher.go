package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"StockAdvisor/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchQuote(ctx context.Context, symbol string) (*model.Quote, error)
	FetchCloses(ctx context.Context, symbol string) (*model.PriceSeries, error)
	Name() string
}

var (
	// ErrFetchFailure covers network errors, non-success responses and
	// bodies that cannot be decoded.
	ErrFetchFailure = errors.New("fetch failure")
	// ErrNoData means the symbol resolved to no quote or no price history.
	ErrNoData = errors.New("no data")
)

// FetchError describes a failed request to a data source.
type FetchError struct {
	Source     string
	StatusCode int
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d, body: %s", e.Source, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFetchFailure}
	}
	return []error{ErrFetchFailure, e.Err}
}

func noData(source, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", source, ErrNoData, fmt.Sprintf(format, args...))
}

const maxErrorBody = 512

// newHTTPClient builds a client with optional proxy support.
func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

func newLimiter(requestsPerSecond float64) *rate.Limiter {
	if requestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	burst := int(requestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

// get performs a rate-limited GET and returns the body of a 200 response.
func get(ctx context.Context, client *http.Client, limiter *rate.Limiter, source, endpoint string) ([]byte, error) {
	if err := limiter.Wait(ctx); err != nil {
		return nil, &FetchError{Source: source, Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Source: source, Err: err}
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Source: source, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Source: source, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &FetchError{Source: source, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
