package notifier

import (
	"errors"
	"strings"
	"testing"

	"StockAdvisor/internal/model"
)

func sampleAnalysis() *model.Analysis {
	return &model.Analysis{
		Symbol: "RPOWER.NS",
		Indicators: &model.MarketIndicators{
			Quote: model.Quote{
				Symbol:     "RPOWER.NS",
				Price:      45.1,
				TrailingPE: model.Some(20),
			},
			LastClose: model.Some(44.9),
			SMA50:     model.Some(40),
			RSI14:     model.Some(55.555),
			Bars:      120,
		},
		Result: &model.ScoreResult{
			FundamentalPct: 100.0 / 3,
			TechnicalPct:   200.0 / 3,
			RiskPct:        50,
			Score:          46.6666,
			Recommendation: model.Hold,
			Notes:          []string{"P/E reasonable", "P/B high/NA"},
		},
	}
}

func TestFormatRatio(t *testing.T) {
	tests := []struct {
		in   model.NullFloat
		want string
	}{
		{model.Some(20), "20.00"},
		{model.Some(3.14159), "3.14"},
		{model.Some(0), "0.00"},
		{model.None(), "NA"},
	}
	for _, tt := range tests {
		if got := FormatRatio(tt.in); got != tt.want {
			t.Errorf("FormatRatio(%+v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatScore(t *testing.T) {
	if got := FormatScore(63.3333); got != "63.3" {
		t.Errorf("got %q", got)
	}
	if got := FormatScore(70); got != "70.0" {
		t.Errorf("got %q", got)
	}
}

func TestFormatReportText(t *testing.T) {
	out := FormatReportText(sampleAnalysis())
	for _, want := range []string{
		"RPOWER.NS\n", // no long name, falls back to symbol
		"Price: 45.1\n",
		"Score: 46.7% → HOLD\n",
		"P/E: 20.00 | P/B: NA\n",
		"SMA50: 40.00 | SMA200: NA",
		"RSI14: 55.56",
		"• P/B high/NA",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<b>") {
		t.Error("text report must not contain markup")
	}
}

func TestFormatReport_EscapesHTML(t *testing.T) {
	a := sampleAnalysis()
	a.Indicators.Quote.LongName = "Procter & Gamble"
	a.Result.Recommendation = model.SellAvoid
	out := FormatReport(a)
	if !strings.HasPrefix(out, "<b>Procter &amp; Gamble</b>\n") {
		t.Errorf("unexpected header:\n%s", out)
	}
	if !strings.Contains(out, "<b>SELL/AVOID</b>") {
		t.Errorf("missing label:\n%s", out)
	}
}

func TestFormatError(t *testing.T) {
	out := FormatError("XYZ", errors.New("fetch quote: no data"))
	if !strings.Contains(out, "<b>Error</b>") || !strings.Contains(out, "no data") {
		t.Errorf("got %q", out)
	}
}
