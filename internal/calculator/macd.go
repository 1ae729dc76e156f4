package calculator

import "StockAdvisor/internal/model"

// MACD returns the EMA(short) - EMA(long) line. Positions where either
// average is still warming up are undefined.
func MACD(prices []float64, short, long int) (model.IndicatorSeries, error) {
	emaShort, err := EMA(prices, short)
	if err != nil {
		return nil, err
	}
	emaLong, err := EMA(prices, long)
	if err != nil {
		return nil, err
	}
	out := make(model.IndicatorSeries, len(prices))
	for i := range prices {
		if emaShort[i].Valid && emaLong[i].Valid {
			out[i] = model.Some(emaShort[i].Float64 - emaLong[i].Float64)
		}
	}
	return out, nil
}
