package calculator

import (
	"errors"

	"StockAdvisor/internal/model"
)

// ErrInvalidPeriod is returned for a period of zero or less.
var ErrInvalidPeriod = errors.New("period must be positive")

// SMA computes the trailing simple moving average at every position.
// Positions before the first full window are undefined.
func SMA(prices []float64, period int) (model.IndicatorSeries, error) {
	if period <= 0 {
		return nil, ErrInvalidPeriod
	}
	out := make(model.IndicatorSeries, len(prices))
	for i := period - 1; i < len(prices); i++ {
		sum := 0.0
		for j := i + 1 - period; j <= i; j++ {
			sum += prices[j]
		}
		out[i] = model.Some(sum / float64(period))
	}
	return out, nil
}

// EMA computes the exponential moving average, seeded with the SMA of the
// first period prices.
func EMA(prices []float64, period int) (model.IndicatorSeries, error) {
	if period <= 0 {
		return nil, ErrInvalidPeriod
	}
	out := make(model.IndicatorSeries, len(prices))
	if len(prices) < period {
		return out, nil
	}
	k := 2.0 / float64(period+1)
	prev := 0.0
	for _, p := range prices[:period] {
		prev += p
	}
	prev /= float64(period)
	out[period-1] = model.Some(prev)
	for i := period; i < len(prices); i++ {
		prev = prices[i]*k + prev*(1-k)
		out[i] = model.Some(prev)
	}
	return out, nil
}
