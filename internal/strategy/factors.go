package strategy

import "StockAdvisor/internal/model"

// Fundamental thresholds. A third fundamental point exists in the
// denominator but is never awarded here.
const (
	MaxTrailingPE     = 25.0
	MaxPriceToBook    = 4.0
	FundamentalChecks = 3
	TechnicalChecks   = 3
	RSIOversold       = 30.0
	RSIOverbought     = 70.0
)

// ManualCheckNote marks the fundamental check left to the reader.
const ManualCheckNote = "Manual check: debt & results"

// ScoreFundamentals awards one point each for a present P/E below 25 and a
// present P/B below 4. Missing ratios fail.
func ScoreFundamentals(q *model.Quote) ([]model.FactorScore, float64) {
	pe := model.FactorScore{Name: "P/E", Commentary: "P/E high/NA"}
	if q.TrailingPE.Valid && q.TrailingPE.Float64 < MaxTrailingPE {
		pe.Passed = true
		pe.Commentary = "P/E reasonable"
	}

	pb := model.FactorScore{Name: "P/B", Commentary: "P/B high/NA"}
	if q.PriceToBook.Valid && q.PriceToBook.Float64 < MaxPriceToBook {
		pb.Passed = true
		pb.Commentary = "P/B reasonable"
	}

	manual := model.FactorScore{Name: "Debt & results", Commentary: ManualCheckNote}

	factors := []model.FactorScore{pe, pb, manual}
	return factors, pct(factors, FundamentalChecks)
}

// ScoreTechnicals awards one point each for close > SMA50, close > SMA200
// and 30 < RSI < 70. Undefined values fail their check.
func ScoreTechnicals(ind *model.MarketIndicators) ([]model.FactorScore, float64) {
	last := ind.LastClose

	sma50 := aboveAverage("SMA50", last, ind.SMA50)
	sma200 := aboveAverage("SMA200", last, ind.SMA200)

	rsi := model.FactorScore{Name: "RSI14"}
	switch {
	case !ind.RSI14.Valid:
		rsi.Commentary = "RSI unavailable"
	case ind.RSI14.Float64 > RSIOversold && ind.RSI14.Float64 < RSIOverbought:
		rsi.Passed = true
		rsi.Commentary = "RSI neutral"
	default:
		rsi.Commentary = "RSI extreme"
	}

	factors := []model.FactorScore{sma50, sma200, rsi}
	return factors, pct(factors, TechnicalChecks)
}

func aboveAverage(name string, last, avg model.NullFloat) model.FactorScore {
	f := model.FactorScore{Name: "Price>" + name}
	switch {
	case !last.Valid || !avg.Valid:
		f.Commentary = name + " unavailable"
	case last.Float64 > avg.Float64:
		f.Passed = true
		f.Commentary = "Price>" + name
	default:
		f.Commentary = "Price<=" + name
	}
	return f
}

func pct(factors []model.FactorScore, checks int) float64 {
	points := 0
	for _, f := range factors {
		if f.Passed {
			points++
		}
	}
	return float64(points) / float64(checks) * 100
}
