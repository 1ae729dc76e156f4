package model

import "time"

// NullFloat is a float64 that may be absent. A zero Float64 with Valid set
// is a real value.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// Some wraps v as a present value.
func Some(v float64) NullFloat { return NullFloat{Float64: v, Valid: true} }

// None returns an absent value.
func None() NullFloat { return NullFloat{} }

// FromPtr converts a decoded optional JSON number.
func FromPtr(v *float64) NullFloat {
	if v == nil {
		return NullFloat{}
	}
	return Some(*v)
}

// Quote is a point-in-time snapshot for a ticker.
type Quote struct {
	Symbol      string
	Price       float64
	TrailingPE  NullFloat
	PriceToBook NullFloat
	LongName    string
}

// DisplayName returns the long name, or the symbol when the source has none.
func (q *Quote) DisplayName() string {
	if q.LongName != "" {
		return q.LongName
	}
	return q.Symbol
}

// PriceSeries holds daily closes, oldest first. Entries are tracked by
// position only.
type PriceSeries struct {
	Symbol    string
	Closes    []float64
	FetchedAt time.Time
}

// Last returns the most recent close.
func (p *PriceSeries) Last() NullFloat {
	if len(p.Closes) == 0 {
		return None()
	}
	return Some(p.Closes[len(p.Closes)-1])
}
