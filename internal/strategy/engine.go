package strategy

import "StockAdvisor/internal/model"

// Composite weights. Risk has no sub-model and is held at RiskPct.
const (
	FundamentalWeight = 0.5
	TechnicalWeight   = 0.3
	RiskWeight        = 0.2
	RiskPct           = 50.0
)

// Tiers maps a composite score to a recommendation, checked in order.
var Tiers = []struct {
	MinScore       float64
	Recommendation model.Recommendation
}{
	{70, model.StrongBuy},
	{60, model.Buy},
	{45, model.Hold},
}

// DefaultTier is used for scores below every tier.
var DefaultTier = model.SellAvoid

// MapRecommendation maps a composite score to its label.
func MapRecommendation(score float64) model.Recommendation {
	for _, t := range Tiers {
		if score >= t.MinScore {
			return t.Recommendation
		}
	}
	return DefaultTier
}

// CompositeScore blends the three sub-percentages.
func CompositeScore(fundPct, techPct, riskPct float64) float64 {
	return fundPct*FundamentalWeight + techPct*TechnicalWeight + riskPct*RiskWeight
}

// Evaluate computes the full score result from market indicators.
func Evaluate(ind *model.MarketIndicators) *model.ScoreResult {
	fund, fundPct := ScoreFundamentals(&ind.Quote)
	tech, techPct := ScoreTechnicals(ind)

	score := CompositeScore(fundPct, techPct, RiskPct)

	res := &model.ScoreResult{
		FundamentalPct: fundPct,
		TechnicalPct:   techPct,
		RiskPct:        RiskPct,
		Score:          score,
		Recommendation: MapRecommendation(score),
		Fundamentals:   fund,
		Technicals:     tech,
	}
	for _, f := range fund {
		res.Notes = append(res.Notes, f.Commentary)
	}
	for _, f := range tech {
		res.Notes = append(res.Notes, f.Commentary)
	}
	return res
}
