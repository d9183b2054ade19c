package target

import "math"

// Tolerances used by CheckInverse.
const (
	CheckRelTol = 1e-7
	CheckAbsTol = 1e-9
)

// InverseCheck summarizes a forward/inverse consistency check.
type InverseCheck struct {
	Checked     int
	Mismatches  int
	MaxAbsError float64
}

// Passed reports whether every sampled value was restored.
func (c InverseCheck) Passed() bool {
	return c.Mismatches == 0
}

// CheckInverse samples every max(1, len(y)/10)-th target and verifies that
// Inverse(Forward(v)) restores it. Clamped values are reported as mismatches.
func CheckInverse(t Transformer, y []float64) InverseCheck {
	if len(y) == 0 {
		return InverseCheck{}
	}

	stride := len(y) / 10
	if stride < 1 {
		stride = 1
	}

	sample := make([]float64, 0, len(y)/stride+1)
	for i := 0; i < len(y); i += stride {
		sample = append(sample, y[i])
	}

	restored := t.Inverse(t.Forward(sample))

	check := InverseCheck{Checked: len(sample)}
	for i, want := range sample {
		got := restored[i]
		diff := math.Abs(got - want)
		if math.IsNaN(diff) || math.IsInf(diff, 0) {
			check.Mismatches++
			continue
		}
		if diff > check.MaxAbsError {
			check.MaxAbsError = diff
		}
		if diff > CheckAbsTol+CheckRelTol*math.Abs(want) {
			check.Mismatches++
		}
	}
	return check
}
