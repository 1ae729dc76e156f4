package model

import "time"

// Recommendation is the discrete label derived from the composite score.
type Recommendation string

const (
	StrongBuy Recommendation = "STRONG BUY"
	Buy       Recommendation = "BUY"
	Hold      Recommendation = "HOLD"
	SellAvoid Recommendation = "SELL/AVOID"
)

// FactorScore is a single pass/fail check and its note.
type FactorScore struct {
	Name       string
	Passed     bool
	Commentary string
}

// ScoreResult is the final output of the strategy engine.
type ScoreResult struct {
	FundamentalPct float64
	TechnicalPct   float64
	RiskPct        float64
	Score          float64
	Recommendation Recommendation
	Fundamentals   []FactorScore
	Technicals     []FactorScore
	Notes          []string
}

// Analysis bundles everything produced for one symbol.
type Analysis struct {
	Symbol     string
	Indicators *MarketIndicators
	Result     *ScoreResult
	AnalyzedAt time.Time
}

// LastPrice prefers the quoted price and falls back to the last close.
func (a *Analysis) LastPrice() float64 {
	if a.Indicators.Quote.Price > 0 {
		return a.Indicators.Quote.Price
	}
	return a.Indicators.LastClose.Float64
}
