package analytics

import (
	"math"

	"FinSight/internal/domain/models"
)

const (
	smaWindow   = 20
	bbandStdDev = 2.0
	rsiPeriod   = 14
	macdFast    = 12
	macdSlow    = 26
	macdSignal  = 9
)

// ComputeIndicators computes the latest SMA/Bollinger, RSI, and MACD values
// over the given closes. Indicators whose window exceeds the data length are
// left at zero.
func ComputeIndicators(closes []float64) models.Indicators {
	var ind models.Indicators

	if len(closes) >= smaWindow {
		mean, std := meanStd(closes[len(closes)-smaWindow:])
		ind.SMA20 = mean
		ind.BollingerUpper = mean + bbandStdDev*std
		ind.BollingerLower = mean - bbandStdDev*std
	}

	if len(closes) >= rsiPeriod+1 {
		ind.RSI14 = rsi(closes, rsiPeriod)
	}

	if len(closes) >= macdSlow+macdSignal {
		ind.MACD, ind.MACDSignal = macd(closes)
		ind.MACDHist = ind.MACD - ind.MACDSignal
	}

	return ind
}

func meanStd(xs []float64) (float64, float64) {
	n := float64(len(xs))
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / n

	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	// sample standard deviation, matching rolling std of the reference data
	if len(xs) < 2 {
		return mean, 0
	}
	return mean, math.Sqrt(sq / (n - 1))
}

// rsi computes a Wilder-smoothed relative strength index over the full series.
func rsi(closes []float64, period int) float64 {
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss -= delta
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

func macd(closes []float64) (line, signal float64) {
	fast := emaSeries(closes, macdFast)
	slow := emaSeries(closes, macdSlow)
	diff := make([]float64, len(closes))
	for i := range closes {
		diff[i] = fast[i] - slow[i]
	}
	sig := emaSeries(diff, macdSignal)
	return diff[len(diff)-1], sig[len(sig)-1]
}

func emaSeries(xs []float64, span int) []float64 {
	out := make([]float64, len(xs))
	alpha := 2.0 / float64(span+1)
	out[0] = xs[0]
	for i := 1; i < len(xs); i++ {
		out[i] = alpha*xs[i] + (1-alpha)*out[i-1]
	}
	return out
}
