package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"StockAdvisor/internal/model"
)

// RelayFetcher implements Fetcher against a relay endpoint that forwards to
// Yahoo Finance and answers GET ?symbol=X with {"quote":...,"chart":...}.
type RelayFetcher struct {
	URL     string
	Client  *http.Client
	Limiter *rate.Limiter
}

// NewRelayFetcher creates a new relay fetcher with optional proxy support.
func NewRelayFetcher(relayURL, proxyURL string, requestsPerSecond float64) *RelayFetcher {
	return &RelayFetcher{
		URL:     relayURL,
		Client:  newHTTPClient(proxyURL, 30*time.Second),
		Limiter: newLimiter(requestsPerSecond),
	}
}

func (f *RelayFetcher) Name() string { return "relay" }

// relayPayload is the JSON shape served by the relay.
type relayPayload struct {
	Quote json.RawMessage `json:"quote"`
	Chart json.RawMessage `json:"chart"`
	Error string          `json:"error"`
}

func (f *RelayFetcher) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	p, err := f.fetch(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return parseQuote("relay quote", symbol, p.Quote)
}

func (f *RelayFetcher) FetchCloses(ctx context.Context, symbol string) (*model.PriceSeries, error) {
	p, err := f.fetch(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return parseChart("relay chart", symbol, p.Chart)
}

func (f *RelayFetcher) fetch(ctx context.Context, symbol string) (*relayPayload, error) {
	u, err := url.Parse(f.URL)
	if err != nil {
		return nil, &FetchError{Source: "relay", Err: fmt.Errorf("parse relay url: %w", err)}
	}
	q := u.Query()
	q.Set("symbol", symbol)
	u.RawQuery = q.Encode()

	body, err := get(ctx, f.Client, f.Limiter, "relay", u.String())
	if err != nil {
		return nil, err
	}
	var p relayPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, &FetchError{Source: "relay", Err: fmt.Errorf("decode: %w", err)}
	}
	if p.Error != "" {
		return nil, &FetchError{Source: "relay", Err: fmt.Errorf("relay error: %s", p.Error)}
	}
	return &p, nil
}
