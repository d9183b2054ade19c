package target

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/masmgr/logbound-go/internal/logging"
	"github.com/masmgr/logbound-go/internal/transform"
)

// meanRegressor predicts the mean of the targets it was fitted on.
type meanRegressor struct {
	seen []float64
	mean float64
	err  error
}

func (m *meanRegressor) Fit(_ [][]float64, y []float64) error {
	if m.err != nil {
		return m.err
	}
	m.seen = append([]float64(nil), y...)
	var sum float64
	for _, v := range y {
		sum += v
	}
	m.mean = sum / float64(len(y))
	return nil
}

func (m *meanRegressor) Predict(X [][]float64) ([]float64, error) {
	out := make([]float64, len(X))
	for i := range out {
		out[i] = m.mean
	}
	return out, nil
}

func rows(n int) [][]float64 {
	X := make([][]float64, n)
	for i := range X {
		X[i] = []float64{float64(i)}
	}
	return X
}

func TestTransformedTarget_FitTransformsTargets(t *testing.T) {
	inner := &meanRegressor{}
	tt := NewTransformedTarget(inner, transform.Default(), false, nil)

	y := []float64{-1e5, -10, -1e-4}
	if err := tt.Fit(rows(3), y); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	want := []float64{1, 0.5, 0}
	for i, v := range inner.seen {
		if math.Abs(v-want[i]) > 1e-12 {
			t.Errorf("inner target[%d] = %f, want %f", i, v, want[i])
		}
	}
	if y[0] != -1e5 || y[2] != -1e-4 {
		t.Errorf("Fit modified caller targets: %v", y)
	}
}

func TestTransformedTarget_PredictInverts(t *testing.T) {
	inner := &meanRegressor{}
	tt := NewTransformedTarget(inner, transform.Default(), true, nil)

	if err := tt.Fit(rows(2), []float64{-1, -100}); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	pred, err := tt.Predict(rows(4))
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if len(pred) != 4 {
		t.Fatalf("len(pred) = %d, want 4", len(pred))
	}
	// Mean of log magnitudes 0 and 2 is 1, so the prediction is -10.
	for _, p := range pred {
		if math.Abs(p+10) > 1e-9 {
			t.Errorf("prediction = %f, want -10", p)
		}
	}
}

func TestTransformedTarget_PredictBeforeFit(t *testing.T) {
	tt := NewTransformedTarget(&meanRegressor{}, transform.Default(), false, nil)
	if _, err := tt.Predict(rows(1)); !errors.Is(err, ErrNotFitted) {
		t.Fatalf("Predict error = %v, want ErrNotFitted", err)
	}
}

func TestTransformedTarget_FitErrors(t *testing.T) {
	t.Run("LengthMismatch", func(t *testing.T) {
		tt := NewTransformedTarget(&meanRegressor{}, transform.Default(), false, nil)
		if err := tt.Fit(rows(2), []float64{-1}); err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("Empty", func(t *testing.T) {
		tt := NewTransformedTarget(&meanRegressor{}, transform.Default(), false, nil)
		if err := tt.Fit(nil, nil); err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("InnerFailure", func(t *testing.T) {
		boom := errors.New("boom")
		tt := NewTransformedTarget(&meanRegressor{err: boom}, transform.Default(), false, nil)
		err := tt.Fit(rows(1), []float64{-1})
		if !errors.Is(err, boom) {
			t.Fatalf("Fit error = %v, want wrapped boom", err)
		}
		if _, err := tt.Predict(rows(1)); !errors.Is(err, ErrNotFitted) {
			t.Fatalf("Predict after failed fit = %v, want ErrNotFitted", err)
		}
	})
}

func TestTransformedTarget_CheckInverseWarns(t *testing.T) {
	var buf bytes.Buffer
	tt := NewTransformedTarget(&meanRegressor{}, transform.Default(), true, logging.New(&buf, "warn"))

	// -1e6 is beyond the upper bound and cannot be restored.
	if err := tt.Fit(rows(2), []float64{-1e6, -10}); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	check := tt.LastCheck()
	if check == nil {
		t.Fatal("LastCheck() = nil, want a check result")
	}
	if check.Mismatches != 1 {
		t.Errorf("Mismatches = %d, want 1", check.Mismatches)
	}
	if !strings.Contains(buf.String(), "inverse does not restore targets") {
		t.Errorf("expected warning, got %q", buf.String())
	}
}

func TestTransformedTarget_CheckInverseDisabled(t *testing.T) {
	tt := NewTransformedTarget(&meanRegressor{}, transform.Default(), false, nil)
	if err := tt.Fit(rows(1), []float64{-10}); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if tt.LastCheck() != nil {
		t.Errorf("LastCheck() = %+v, want nil", tt.LastCheck())
	}
}
