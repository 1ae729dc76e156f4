package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"StockAdvisor/internal/model"
)

// DefaultYahooBaseURL is the public Yahoo Finance host.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using the Yahoo Finance v7 quote and v8
// chart endpoints.
type YahooFetcher struct {
	BaseURL  string
	Range    string
	Interval string
	Client   *http.Client
	Limiter  *rate.Limiter
}

// NewYahooFetcher creates a new Yahoo Finance fetcher. An empty baseURL
// selects the public host.
func NewYahooFetcher(baseURL, proxyURL string, requestsPerSecond float64) *YahooFetcher {
	if baseURL == "" {
		baseURL = DefaultYahooBaseURL
	}
	return &YahooFetcher{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Range:    "1y",
		Interval: "1d",
		Client:   newHTTPClient(proxyURL, 30*time.Second),
		Limiter:  newLimiter(requestsPerSecond),
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// QuoteJSON returns the raw v7 quote response body.
func (f *YahooFetcher) QuoteJSON(ctx context.Context, symbol string) ([]byte, error) {
	u := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", f.BaseURL, url.QueryEscape(symbol))
	return get(ctx, f.Client, f.Limiter, "yahoo quote", u)
}

// ChartJSON returns the raw v8 chart response body.
func (f *YahooFetcher) ChartJSON(ctx context.Context, symbol string) ([]byte, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s",
		f.BaseURL, url.PathEscape(symbol), f.Range, f.Interval)
	return get(ctx, f.Client, f.Limiter, "yahoo chart", u)
}

func (f *YahooFetcher) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	body, err := f.QuoteJSON(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return parseQuote("yahoo quote", symbol, body)
}

func (f *YahooFetcher) FetchCloses(ctx context.Context, symbol string) (*model.PriceSeries, error) {
	body, err := f.ChartJSON(ctx, symbol)
	if err != nil {
		return nil, err
	}
	series, err := parseChart("yahoo chart", symbol, body)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] yahoo: %s returned %d closes (range=%s interval=%s)", symbol, len(series.Closes), f.Range, f.Interval)
	return series, nil
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// yahooQuote is the response structure from the Yahoo Finance quote API.
type yahooQuote struct {
	QuoteResponse struct {
		Result []struct {
			Symbol             string   `json:"symbol"`
			RegularMarketPrice *float64 `json:"regularMarketPrice"`
			TrailingPE         *float64 `json:"trailingPE"`
			PriceToBook        *float64 `json:"priceToBook"`
			LongName           string   `json:"longName"`
			ShortName          string   `json:"shortName"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"quoteResponse"`
}

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"chart"`
}

func parseQuote(source, symbol string, body []byte) (*model.Quote, error) {
	var resp yahooQuote
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &FetchError{Source: source, Err: fmt.Errorf("decode: %w", err)}
	}
	if resp.QuoteResponse.Error != nil {
		return nil, noData(source, "%s", resp.QuoteResponse.Error.Description)
	}
	if len(resp.QuoteResponse.Result) == 0 {
		return nil, noData(source, "no quote data for %s", symbol)
	}

	r := resp.QuoteResponse.Result[0]
	q := &model.Quote{
		Symbol:      symbol,
		TrailingPE:  model.FromPtr(r.TrailingPE),
		PriceToBook: model.FromPtr(r.PriceToBook),
		LongName:    r.LongName,
	}
	if q.LongName == "" {
		q.LongName = r.ShortName
	}
	if r.RegularMarketPrice != nil {
		q.Price = *r.RegularMarketPrice
	}
	return q, nil
}

func parseChart(source, symbol string, body []byte) (*model.PriceSeries, error) {
	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, &FetchError{Source: source, Err: fmt.Errorf("decode: %w", err)}
	}
	if chart.Chart.Error != nil {
		return nil, noData(source, "%s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, noData(source, "no chart data for %s", symbol)
	}

	raw := chart.Chart.Result[0].Indicators.Quote[0].Close
	closes := make([]float64, 0, len(raw))
	for _, c := range raw {
		if c == nil {
			continue // skip null bars (holidays etc.)
		}
		closes = append(closes, *c)
	}
	if len(closes) == 0 {
		return nil, noData(source, "empty price history for %s", symbol)
	}

	return &model.PriceSeries{
		Symbol:    symbol,
		Closes:    closes,
		FetchedAt: time.Now(),
	}, nil
}
