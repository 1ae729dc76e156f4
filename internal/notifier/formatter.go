package notifier

import (
	"fmt"
	"html"
	"strings"

	"github.com/shopspring/decimal"

	"StockAdvisor/internal/model"
)

// FormatRatio renders an optional ratio with two decimals, or NA.
func FormatRatio(v model.NullFloat) string {
	if !v.Valid {
		return "NA"
	}
	return decimal.NewFromFloat(v.Float64).StringFixed(2)
}

// FormatScore renders a percentage with one decimal.
func FormatScore(score float64) string {
	return decimal.NewFromFloat(score).StringFixed(1)
}

func formatPrice(p float64) string {
	return decimal.NewFromFloat(p).String()
}

func formatIndicator(v model.NullFloat) string {
	if !v.Valid {
		return "NA"
	}
	return decimal.NewFromFloat(v.Float64).StringFixed(2)
}

// FormatReport formats an analysis as a Telegram HTML message.
func FormatReport(a *model.Analysis) string {
	return formatReport(a, true)
}

// FormatReportText formats an analysis for a terminal.
func FormatReportText(a *model.Analysis) string {
	return formatReport(a, false)
}

func formatReport(a *model.Analysis, markup bool) string {
	bold := func(s string) string { return s }
	esc := func(s string) string { return s }
	if markup {
		bold = func(s string) string { return "<b>" + s + "</b>" }
		esc = html.EscapeString
	}

	ind := a.Indicators
	res := a.Result
	var b strings.Builder

	b.WriteString(bold(esc(ind.Quote.DisplayName())) + "\n")
	b.WriteString(fmt.Sprintf("Price: %s\n", formatPrice(a.LastPrice())))
	b.WriteString(fmt.Sprintf("Score: %s%% → %s\n", FormatScore(res.Score), bold(esc(string(res.Recommendation)))))
	b.WriteString(fmt.Sprintf("P/E: %s | P/B: %s\n\n",
		FormatRatio(ind.Quote.TrailingPE), FormatRatio(ind.Quote.PriceToBook)))

	b.WriteString(bold("Breakdown") + "\n")
	b.WriteString(fmt.Sprintf("  Fundamentals: %s%%\n", FormatScore(res.FundamentalPct)))
	b.WriteString(fmt.Sprintf("  Technicals:   %s%%\n", FormatScore(res.TechnicalPct)))
	b.WriteString(fmt.Sprintf("  Risk:         %s%% (fixed)\n\n", FormatScore(res.RiskPct)))

	b.WriteString(bold("Indicators") + "\n")
	b.WriteString(fmt.Sprintf("  SMA50: %s | SMA200: %s\n", formatIndicator(ind.SMA50), formatIndicator(ind.SMA200)))
	b.WriteString(fmt.Sprintf("  RSI14: %s | MACD: %s\n", formatIndicator(ind.RSI14), formatIndicator(ind.MACD)))
	if ind.High52w.Valid && ind.Low52w.Valid {
		b.WriteString(fmt.Sprintf("  52w: %s - %s", formatPrice(ind.Low52w.Float64), formatPrice(ind.High52w.Float64)))
		if ind.Position.Valid {
			b.WriteString(fmt.Sprintf(" (position %.0f%%)", ind.Position.Float64*100))
		}
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("  Closes: %d\n\n", ind.Bars))

	b.WriteString(bold("Notes") + "\n")
	for _, n := range res.Notes {
		b.WriteString("  • " + esc(n) + "\n")
	}
	return b.String()
}

// FormatError formats a failed analysis.
func FormatError(symbol string, err error) string {
	return fmt.Sprintf("<b>Error</b>\n%s: %s", html.EscapeString(symbol), html.EscapeString(err.Error()))
}

// FormatHelp lists the bot commands.
func FormatHelp() string {
	return "Commands:\n• /analyze SYMBOL (e.g. /analyze RPOWER.NS)\n• SYMBOL on its own\n• /help"
}
