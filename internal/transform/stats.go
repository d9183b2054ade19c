package transform

// ClampState describes how a single value was treated by a transform.
type ClampState string

const (
	ClampNone    ClampState = "none"
	ClampLow     ClampState = "low"
	ClampHigh    ClampState = "high"
	ClampInvalid ClampState = "invalid"
)

// Stats counts clamped and invalid values for one call.
type Stats struct {
	Count       int
	ClampedLow  int
	ClampedHigh int
	Invalid     int
}

// Clamped returns the number of values forced to a boundary.
func (s Stats) Clamped() int {
	return s.ClampedLow + s.ClampedHigh
}

// ClampRate returns the share of valid values that were clamped.
func (s Stats) ClampRate() float64 {
	valid := s.Count - s.Invalid
	if valid <= 0 {
		return 0
	}
	return float64(s.Clamped()) / float64(valid)
}

func (s *Stats) add(state ClampState) {
	switch state {
	case ClampLow:
		s.ClampedLow++
	case ClampHigh:
		s.ClampedHigh++
	case ClampInvalid:
		s.Invalid++
	}
}
