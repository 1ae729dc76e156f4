package calculator

import "StockAdvisor/internal/model"

// DefaultRSIPeriod is the conventional Wilder period.
const DefaultRSIPeriod = 14

// RSIEpsilon replaces a zero average loss. The value carries no precision
// meaning; it only keeps the ratio finite.
const RSIEpsilon = 1e-9

// RSI computes the Wilder-smoothed RSI at every position.
// Position `period` holds the RSI of the seed averages; each later position
// applies one more smoothing step. The first `period` positions are
// undefined, and a series shorter than period+1 has no defined value.
func RSI(prices []float64, period int) (model.IndicatorSeries, error) {
	if period <= 0 {
		return nil, ErrInvalidPeriod
	}
	out := make(model.IndicatorSeries, len(prices))
	if len(prices) < period+1 {
		return out, nil
	}

	// Seed with the simple mean over the first `period` changes
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = model.Some(rsiValue(avgGain, avgLoss))

	p := float64(period)
	for i := period + 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*(p-1) + gain) / p
		avgLoss = (avgLoss*(p-1) + loss) / p
		out[i] = model.Some(rsiValue(avgGain, avgLoss))
	}
	return out, nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		avgLoss = RSIEpsilon
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
