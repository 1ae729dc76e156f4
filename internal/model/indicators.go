package model

// IndicatorSeries has the same length as the prices it was derived from.
// Warm-up positions are not Valid.
type IndicatorSeries []NullFloat

// Latest returns the final position, or None for an empty series.
func (s IndicatorSeries) Latest() NullFloat {
	if len(s) == 0 {
		return None()
	}
	return s[len(s)-1]
}

// Defined counts the positions holding a value.
func (s IndicatorSeries) Defined() int {
	n := 0
	for _, v := range s {
		if v.Valid {
			n++
		}
	}
	return n
}

// MarketIndicators holds the quote and the latest indicator values for one
// analysis.
type MarketIndicators struct {
	Quote     Quote
	LastClose NullFloat
	SMA50     NullFloat
	SMA200    NullFloat
	RSI14     NullFloat
	MACD      NullFloat
	High52w   NullFloat
	Low52w    NullFloat
	Position  NullFloat // 0.0 ~ 1.0 within the 52-week range
	Bars      int
}
