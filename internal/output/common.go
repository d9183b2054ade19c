package output

import (
	"encoding/json"
	"io"
	"math"
	"os"
	"strconv"
)

const reportDateTimeLayout = "2006-01-02T15:04:05"

func limitTop[T any](items []T, top int) []T {
	if top <= 0 || top >= len(items) {
		return items
	}
	return items[:top]
}

func openOutputWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

// formatValue prints a value with full precision; NaN and infinities are spelled out.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// jsonNumber returns nil for values JSON cannot represent.
func jsonNumber(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// absError returns |restored - input|, or NaN when there is nothing to compare.
func absError(item Item) float64 {
	if item.Restored == nil {
		return math.NaN()
	}
	return math.Abs(*item.Restored - item.Input)
}

// OptionalNumber is a JSON number that is either absent or present.
// A present value that JSON cannot represent is written as null.
type OptionalNumber struct {
	Present bool
	Value   *float64
}

func optionalNumber(v float64) OptionalNumber {
	return OptionalNumber{Present: true, Value: jsonNumber(v)}
}

// IsZero lets omitzero drop absent values.
func (n OptionalNumber) IsZero() bool {
	return !n.Present
}

func (n OptionalNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Value)
}

func (n *OptionalNumber) UnmarshalJSON(data []byte) error {
	n.Present = true
	n.Value = nil
	return json.Unmarshal(data, &n.Value)
}
