// Package target wraps a regressor so it is fitted on transformed targets
// and predicts on the original scale. TransformedTarget is the library entry
// point for model code; the CLI uses only CheckInverse.
package target

import (
	"errors"
	"fmt"

	"github.com/masmgr/logbound-go/internal/logging"
)

// ErrNotFitted is returned when Predict is called before Fit.
var ErrNotFitted = errors.New("regressor is not fitted")

// Regressor is a model fitted on feature rows and a target vector.
type Regressor interface {
	Fit(X [][]float64, y []float64) error
	Predict(X [][]float64) ([]float64, error)
}

// Transformer maps targets into model space and back.
type Transformer interface {
	Forward(y []float64) []float64
	Inverse(y []float64) []float64
}

// TransformedTarget fits the inner regressor on transformed targets and
// maps its predictions back to the original scale.
type TransformedTarget struct {
	Regressor    Regressor
	Transformer  Transformer
	CheckInverse bool
	Logger       logging.Logger

	fitted    bool
	lastCheck *InverseCheck
}

// Compile-time interface conformance check.
var _ Regressor = (*TransformedTarget)(nil)

// NewTransformedTarget wraps regressor with transformer.
func NewTransformedTarget(regressor Regressor, transformer Transformer, checkInverse bool, logger logging.Logger) *TransformedTarget {
	if logger == nil {
		logger = logging.Discard()
	}
	return &TransformedTarget{
		Regressor:    regressor,
		Transformer:  transformer,
		CheckInverse: checkInverse,
		Logger:       logger,
	}
}

// Fit transforms y and fits the inner regressor on it.
func (t *TransformedTarget) Fit(X [][]float64, y []float64) error {
	if len(X) != len(y) {
		return fmt.Errorf("feature rows (%d) and targets (%d) differ in length", len(X), len(y))
	}
	if len(y) == 0 {
		return errors.New("no targets to fit")
	}

	if t.CheckInverse {
		check := CheckInverse(t.Transformer, y)
		t.lastCheck = &check
		if check.Mismatches > 0 {
			t.logger().Warn("inverse does not restore targets",
				"checked", check.Checked,
				"mismatches", check.Mismatches,
				"maxAbsError", check.MaxAbsError)
		}
	}

	if err := t.Regressor.Fit(X, t.Transformer.Forward(y)); err != nil {
		return fmt.Errorf("failed to fit regressor: %w", err)
	}
	t.fitted = true
	return nil
}

// Predict returns the inner regressor's predictions on the original scale.
func (t *TransformedTarget) Predict(X [][]float64) ([]float64, error) {
	if !t.fitted {
		return nil, ErrNotFitted
	}
	pred, err := t.Regressor.Predict(X)
	if err != nil {
		return nil, fmt.Errorf("failed to predict: %w", err)
	}
	return t.Transformer.Inverse(pred), nil
}

// LastCheck returns the inverse check from the latest Fit, if one ran.
func (t *TransformedTarget) LastCheck() *InverseCheck {
	return t.lastCheck
}

func (t *TransformedTarget) logger() logging.Logger {
	if t.Logger == nil {
		return logging.Discard()
	}
	return t.Logger
}
