package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const quoteBody = `{"quoteResponse":{"result":[{"symbol":"RPOWER.NS","regularMarketPrice":45.1,"trailingPE":0,"longName":"Reliance Power Limited"}],"error":null}}`

const chartBody = `{"chart":{"result":[{"timestamp":[1,2,3,4],"indicators":{"quote":[{"close":[40.5,null,41.25,42]}]}}],"error":null}}`

func newYahooServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v7/finance/quote", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("symbols") {
		case "RPOWER.NS":
			fmt.Fprint(w, quoteBody)
		case "EMPTY":
			fmt.Fprint(w, `{"quoteResponse":{"result":[],"error":null}}`)
		case "GARBAGE":
			fmt.Fprint(w, `<html>`)
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	})
	mux.HandleFunc("/v8/finance/chart/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("range") != "1y" || r.URL.Query().Get("interval") != "1d" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		switch r.URL.Path {
		case "/v8/finance/chart/RPOWER.NS":
			fmt.Fprint(w, chartBody)
		case "/v8/finance/chart/NULLS":
			fmt.Fprint(w, `{"chart":{"result":[{"indicators":{"quote":[{"close":[null,null]}]}}],"error":null}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestYahooFetcher_FetchQuote(t *testing.T) {
	srv := newYahooServer(t)
	f := NewYahooFetcher(srv.URL, "", 0)

	q, err := f.FetchQuote(context.Background(), "RPOWER.NS")
	if err != nil {
		t.Fatalf("fetch quote: %v", err)
	}
	if q.Price != 45.1 || q.DisplayName() != "Reliance Power Limited" {
		t.Errorf("unexpected quote: %+v", q)
	}
	if !q.TrailingPE.Valid || q.TrailingPE.Float64 != 0 {
		t.Errorf("a P/E of 0 must be present: %+v", q.TrailingPE)
	}
	if q.PriceToBook.Valid {
		t.Errorf("missing P/B must be absent: %+v", q.PriceToBook)
	}
}

func TestYahooFetcher_FetchQuoteErrors(t *testing.T) {
	srv := newYahooServer(t)
	f := NewYahooFetcher(srv.URL, "", 0)

	tests := []struct {
		symbol string
		want   error
	}{
		{"EMPTY", ErrNoData},
		{"GARBAGE", ErrFetchFailure},
		{"FAIL", ErrFetchFailure},
	}
	for _, tt := range tests {
		_, err := f.FetchQuote(context.Background(), tt.symbol)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.symbol, tt.want, err)
		}
	}

	_, err := f.FetchQuote(context.Background(), "FAIL")
	var fe *FetchError
	if !errors.As(err, &fe) || fe.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected FetchError with status 500, got %v", err)
	}
}

func TestYahooFetcher_FetchCloses(t *testing.T) {
	srv := newYahooServer(t)
	f := NewYahooFetcher(srv.URL, "", 0)

	s, err := f.FetchCloses(context.Background(), "RPOWER.NS")
	if err != nil {
		t.Fatalf("fetch closes: %v", err)
	}
	want := []float64{40.5, 41.25, 42}
	if len(s.Closes) != len(want) {
		t.Fatalf("closes: got %v, want %v", s.Closes, want)
	}
	for i := range want {
		if s.Closes[i] != want[i] {
			t.Errorf("close %d: got %v, want %v", i, s.Closes[i], want[i])
		}
	}

	if _, err := f.FetchCloses(context.Background(), "NULLS"); !errors.Is(err, ErrNoData) {
		t.Errorf("all-null history: expected ErrNoData, got %v", err)
	}
	if _, err := f.FetchCloses(context.Background(), "UNKNOWN"); !errors.Is(err, ErrFetchFailure) {
		t.Errorf("404: expected ErrFetchFailure, got %v", err)
	}
}

func TestRelayFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("symbol") {
		case "RPOWER.NS":
			json.NewEncoder(w).Encode(map[string]json.RawMessage{
				"quote": json.RawMessage(quoteBody),
				"chart": json.RawMessage(chartBody),
			})
		default:
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"error":"upstream failed"}`)
		}
	}))
	defer srv.Close()

	f := NewRelayFetcher(srv.URL+"/.netlify/functions/fetchStock", "", 0)
	q, err := f.FetchQuote(context.Background(), "RPOWER.NS")
	if err != nil {
		t.Fatalf("relay quote: %v", err)
	}
	if q.Price != 45.1 {
		t.Errorf("price: got %v", q.Price)
	}
	s, err := f.FetchCloses(context.Background(), "RPOWER.NS")
	if err != nil {
		t.Fatalf("relay closes: %v", err)
	}
	if len(s.Closes) != 3 {
		t.Errorf("closes: got %v", s.Closes)
	}

	if _, err := f.FetchQuote(context.Background(), "BAD"); !errors.Is(err, ErrFetchFailure) {
		t.Errorf("expected ErrFetchFailure, got %v", err)
	}
}
