// Package relay serves quote and chart data for a symbol in one response,
// forwarding to the upstream finance API.
package relay

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Source returns raw upstream response bodies.
type Source interface {
	QuoteJSON(ctx context.Context, symbol string) ([]byte, error)
	ChartJSON(ctx context.Context, symbol string) ([]byte, error)
}

// Handler answers GET ?symbol=SYM with {"quote": ..., "chart": ...}.
type Handler struct {
	Source  Source
	Timeout time.Duration
}

// NewHandler creates a relay handler.
func NewHandler(src Source, timeout time.Duration) *Handler {
	return &Handler{Source: src, Timeout: timeout}
}

type payload struct {
	Quote json.RawMessage `json:"quote"`
	Chart json.RawMessage `json:"chart"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	symbol := strings.TrimSpace(r.URL.Query().Get("symbol"))
	if symbol == "" {
		http.Error(w, "Symbol missing", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	var p payload
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		body, err := h.Source.QuoteJSON(gctx, symbol)
		p.Quote = body
		return err
	})
	g.Go(func() error {
		body, err := h.Source.ChartJSON(gctx, symbol)
		p.Chart = body
		return err
	})
	if err := g.Wait(); err != nil {
		log.Printf("[ERROR] relay %s: %v", symbol, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[WARN] relay write response: %v", err)
	}
}

// NewServer wraps the handler in an http.Server listening on addr.
func NewServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
	}
}
