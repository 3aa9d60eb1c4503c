package analytics

import (
	"math"
	"testing"
)

func TestComputeIndicatorsConstantSeries(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 50
	}

	ind := ComputeIndicators(closes)
	if math.Abs(ind.SMA20-50) > 1e-9 {
		t.Fatalf("SMA20 = %v, want 50", ind.SMA20)
	}
	if math.Abs(ind.BollingerUpper-50) > 1e-9 || math.Abs(ind.BollingerLower-50) > 1e-9 {
		t.Fatalf("bands = (%v, %v), want both 50 for zero variance", ind.BollingerUpper, ind.BollingerLower)
	}
	// no losses at all: RSI saturates at 100 by convention
	if ind.RSI14 != 100 {
		t.Fatalf("RSI14 = %v, want 100", ind.RSI14)
	}
	if ind.MACD != 0 || ind.MACDSignal != 0 {
		t.Fatalf("MACD = (%v, %v), want zero for flat series", ind.MACD, ind.MACDSignal)
	}
}

func TestComputeIndicatorsRisingSeries(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	ind := ComputeIndicators(closes)
	if ind.RSI14 != 100 {
		t.Fatalf("RSI14 = %v, want 100 for monotone gains", ind.RSI14)
	}
	if ind.SMA20 >= closes[len(closes)-1] {
		t.Fatalf("SMA20 = %v, should lag the last close %v", ind.SMA20, closes[len(closes)-1])
	}
	if ind.BollingerUpper <= ind.BollingerLower {
		t.Fatalf("bands inverted: (%v, %v)", ind.BollingerUpper, ind.BollingerLower)
	}
	// fast EMA above slow EMA in an uptrend
	if ind.MACD <= 0 {
		t.Fatalf("MACD = %v, want > 0 in an uptrend", ind.MACD)
	}
}

func TestComputeIndicatorsShortSeries(t *testing.T) {
	ind := ComputeIndicators([]float64{100, 101, 99})
	if ind.SMA20 != 0 || ind.RSI14 != 0 || ind.MACD != 0 {
		t.Fatalf("expected zero indicators for short series, got %+v", ind)
	}
}
