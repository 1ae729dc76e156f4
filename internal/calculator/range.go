package calculator

import (
	"errors"
	"math"
)

// TradingDaysPerYear bounds the lookback of Range.
const TradingDaysPerYear = 252

// Range scans the most recent `days` closes and returns the high and low.
func Range(closes []float64, days int) (high, low float64, err error) {
	if len(closes) == 0 {
		return 0, 0, errors.New("no closes provided")
	}
	if days <= 0 {
		return 0, 0, ErrInvalidPeriod
	}
	n := len(closes)
	start := n - days
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < n; i++ {
		if closes[i] > high {
			high = closes[i]
		}
		if closes[i] < low {
			low = closes[i]
		}
	}
	return high, low, nil
}

// RangePosition returns where the current price sits within [low, high] (0.0~1.0).
func RangePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
