package transform

import (
	"errors"
	"fmt"
	"math"
)

// Default bounds for the log10 magnitude of the target.
const (
	DefaultMinBound = -2.0
	DefaultMaxBound = 4.0
)

var (
	// ErrInvalidBounds is returned when the bounds cannot define a range.
	ErrInvalidBounds = errors.New("invalid bounds")
	// ErrInvalidDomain is returned by strict operations for inputs that are not strictly negative.
	ErrInvalidDomain = errors.New("value outside forward domain (x < 0)")
)

// DomainError reports the first input that is outside the forward domain.
type DomainError struct {
	Index int
	Value float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("index %d: %g: %v", e.Index, e.Value, ErrInvalidDomain)
}

func (e *DomainError) Unwrap() error {
	return ErrInvalidDomain
}

// BoundedLog maps strictly negative values to [0, 1] through a min-max
// normalized log10 magnitude, and back.
// The zero value is not usable; construct with New or Default.
type BoundedLog struct {
	minBound float64
	maxBound float64

	// magnitude thresholds 10^minBound and 10^maxBound
	loMag float64
	hiMag float64
}

// New creates a transform over [minBound, maxBound] in log10 magnitude.
func New(minBound, maxBound float64) (BoundedLog, error) {
	if math.IsNaN(minBound) || math.IsInf(minBound, 0) || math.IsNaN(maxBound) || math.IsInf(maxBound, 0) {
		return BoundedLog{}, fmt.Errorf("%w: bounds must be finite (min=%g, max=%g)", ErrInvalidBounds, minBound, maxBound)
	}
	if maxBound <= minBound {
		return BoundedLog{}, fmt.Errorf("%w: max bound %g must exceed min bound %g", ErrInvalidBounds, maxBound, minBound)
	}
	if math.IsInf(maxBound-minBound, 0) {
		return BoundedLog{}, fmt.Errorf("%w: range %g to %g is too wide", ErrInvalidBounds, minBound, maxBound)
	}
	// Both magnitudes must be representable so that the inverse stays
	// strictly negative and finite.
	loMag, hiMag := math.Pow(10, minBound), math.Pow(10, maxBound)
	if loMag == 0 {
		return BoundedLog{}, fmt.Errorf("%w: 10^%g underflows to zero", ErrInvalidBounds, minBound)
	}
	if math.IsInf(hiMag, 0) {
		return BoundedLog{}, fmt.Errorf("%w: 10^%g overflows", ErrInvalidBounds, maxBound)
	}
	return BoundedLog{
		minBound: minBound,
		maxBound: maxBound,
		loMag:    loMag,
		hiMag:    hiMag,
	}, nil
}

// Default returns the transform with bounds (-2, 4).
func Default() BoundedLog {
	b, _ := New(DefaultMinBound, DefaultMaxBound)
	return b
}

// Bounds returns the min and max bounds.
func (b BoundedLog) Bounds() (float64, float64) {
	return b.minBound, b.maxBound
}

func (b BoundedLog) span() float64 {
	return b.maxBound - b.minBound
}

// ForwardValue transforms a single value.
// Values that are not strictly negative yield NaN.
func (b BoundedLog) ForwardValue(x float64) float64 {
	if !(x < 0) {
		return math.NaN()
	}
	mag := -x
	if mag >= b.hiMag {
		return 1.0
	}
	if mag <= b.loMag {
		return 0.0
	}
	return clamp((math.Log10(mag) - b.minBound) / b.span())
}

// InverseValue undoes ForwardValue. Inputs outside [0, 1] are clamped first.
func (b BoundedLog) InverseValue(y float64) float64 {
	switch {
	case y <= 0:
		return -b.loMag
	case y >= 1:
		return -b.hiMag
	}
	m := y*b.span() + b.minBound
	return -math.Pow(10, m)
}

// ClassifyForward reports how ForwardValue treats x.
func (b BoundedLog) ClassifyForward(x float64) ClampState {
	if !(x < 0) {
		return ClampInvalid
	}
	mag := -x
	switch {
	case mag > b.hiMag:
		return ClampHigh
	case mag < b.loMag:
		return ClampLow
	}
	return ClampNone
}

// ClassifyInverse reports how InverseValue treats y.
func (b BoundedLog) ClassifyInverse(y float64) ClampState {
	switch {
	case math.IsNaN(y):
		return ClampInvalid
	case y > 1:
		return ClampHigh
	case y < 0:
		return ClampLow
	}
	return ClampNone
}

// Forward transforms xs into a new slice. xs is not modified.
func (b BoundedLog) Forward(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = b.ForwardValue(x)
	}
	return out
}

// Inverse undoes Forward into a new slice. ys is not modified.
func (b BoundedLog) Inverse(ys []float64) []float64 {
	out := make([]float64, len(ys))
	for i, y := range ys {
		out[i] = b.InverseValue(y)
	}
	return out
}

// CheckDomain returns a *DomainError for the first value that is not
// strictly negative.
func CheckDomain(xs []float64) error {
	for i, x := range xs {
		if !(x < 0) {
			return &DomainError{Index: i, Value: x}
		}
	}
	return nil
}

// ForwardStrict is Forward that fails on the first value outside the domain.
func (b BoundedLog) ForwardStrict(xs []float64) ([]float64, error) {
	if err := CheckDomain(xs); err != nil {
		return nil, err
	}
	return b.Forward(xs), nil
}

// ForwardWithStats is Forward that also counts clamped and invalid values.
func (b BoundedLog) ForwardWithStats(xs []float64) ([]float64, Stats) {
	stats := Stats{Count: len(xs)}
	for _, x := range xs {
		stats.add(b.ClassifyForward(x))
	}
	return b.Forward(xs), stats
}

// InverseWithStats is Inverse that also counts clamped and NaN inputs.
func (b BoundedLog) InverseWithStats(ys []float64) ([]float64, Stats) {
	stats := Stats{Count: len(ys)}
	for _, y := range ys {
		stats.add(b.ClassifyInverse(y))
	}
	return b.Inverse(ys), stats
}

// clamp constrains a value between 0 and 1. NaN passes through.
func clamp(value float64) float64 {
	if value > 1 {
		return 1
	}
	if value < 0 {
		return 0
	}
	return value
}
