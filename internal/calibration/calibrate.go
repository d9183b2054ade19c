package calibration

import (
	"math"

	"github.com/masmgr/logbound-go/internal/transform"
)

// Outermost whole decades accepted by transform.New.
const (
	minDecade = -323
	maxDecade = 308
)

// CalibrateInput holds the input data for calibration.
type CalibrateInput struct {
	Values  []float64
	Current transform.BoundedLog
	Padding float64 // Added below and above the observed log10 range, in decades
}

// CalibrateResult holds the output of calibration.
type CalibrateResult struct {
	CurrentMin       float64
	CurrentMax       float64
	CurrentClampRate float64
	RecommendedMin   float64
	RecommendedMax   float64
	RecommendedRate  float64
	ObservedMin      float64 // log10 magnitude of the smallest valid value
	ObservedMax      float64 // log10 magnitude of the largest valid value
	ValidCount       int
	InvalidCount     int
}

// Calibrate recommends bounds that cover the observed log10 magnitudes of
// the valid (strictly negative, finite) values.
func Calibrate(input CalibrateInput) CalibrateResult {
	curMin, curMax := input.Current.Bounds()
	result := CalibrateResult{
		CurrentMin:     curMin,
		CurrentMax:     curMax,
		RecommendedMin: curMin,
		RecommendedMax: curMax,
	}

	valid := make([]float64, 0, len(input.Values))
	minMag, maxMag := math.Inf(1), 0.0
	for _, v := range input.Values {
		if !(v < 0) || math.IsInf(v, 0) {
			result.InvalidCount++
			continue
		}
		valid = append(valid, v)
		minMag = math.Min(minMag, -v)
		maxMag = math.Max(maxMag, -v)
	}
	result.ValidCount = len(valid)

	if len(valid) == 0 {
		return result
	}

	lo, hi := math.Log10(minMag), math.Log10(maxMag)
	result.ObservedMin = lo
	result.ObservedMax = hi
	result.CurrentClampRate = clampRate(input.Current, valid)

	padding := input.Padding
	if padding < 0 {
		padding = 0
	}
	recMin := math.Floor(lo) - padding
	recMax := math.Ceil(hi) + padding
	// log10 rounding can land on the wrong side of a whole decade
	for math.Pow(10, recMin) > minMag {
		recMin--
	}
	for math.Pow(10, recMax) < maxMag {
		recMax++
	}
	// stay within decades whose powers of ten are representable
	recMin = math.Max(recMin, minDecade)
	recMax = math.Min(recMax, maxDecade)
	if recMax <= recMin {
		recMax = recMin + 1
	}

	recommended, err := transform.New(recMin, recMax)
	if err != nil {
		result.RecommendedRate = result.CurrentClampRate
		return result
	}

	result.RecommendedMin = recMin
	result.RecommendedMax = recMax
	result.RecommendedRate = clampRate(recommended, valid)
	return result
}

// clampRate returns the share of values that b clamps.
func clampRate(b transform.BoundedLog, values []float64) float64 {
	_, stats := b.ForwardWithStats(values)
	return stats.ClampRate()
}

// Improved reports whether the recommended bounds clamp fewer values.
func (r CalibrateResult) Improved() bool {
	return r.RecommendedRate < r.CurrentClampRate
}
