package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNoValues is returned when a load produced no values at all.
var ErrNoValues = errors.New("no values found in input")

// ParseOptions controls how numeric values are read from delimited text.
type ParseOptions struct {
	Column    string // Header name or zero-based index; empty means column 0
	Delimiter rune   // Default ','
}

// Series is a named list of values read from one input.
type Series struct {
	Name   string
	Values []float64
}

// ReadValues reads one numeric column from CSV or one-value-per-line text.
// A first row whose selected cell is not numeric is treated as a header.
func ReadValues(r io.Reader, opts ParseOptions) ([]float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}

	index, byName := 0, false
	if col := strings.TrimSpace(opts.Column); col != "" {
		n, err := strconv.Atoi(col)
		switch {
		case err == nil && n >= 0:
			index = n
		case err == nil:
			return nil, fmt.Errorf("column index must be non-negative: %d", n)
		default:
			byName = true
		}
	}

	var values []float64
	first := true
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if first {
			first = false
			if byName {
				idx, ok := findColumn(record, opts.Column)
				if !ok {
					return nil, fmt.Errorf("column %q not found in header", opts.Column)
				}
				index = idx
				continue
			}
			if index < len(record) {
				if _, err := parseValue(record[index]); err != nil {
					// header row
					continue
				}
			}
		}

		line, _ := cr.FieldPos(0)
		if index >= len(record) {
			return nil, fmt.Errorf("line %d: missing column %d", line, index)
		}
		v, err := parseValue(record[index])
		if err != nil {
			return nil, fmt.Errorf("line %d, column %d: %w", line, index, err)
		}
		values = append(values, v)
	}

	return values, nil
}

func findColumn(header []string, name string) (int, bool) {
	name = strings.TrimSpace(name)
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, true
		}
	}
	return 0, false
}

func parseValue(cell string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(cell), 64)
}

// Flatten concatenates the values of all series in order.
func Flatten(series []Series) []float64 {
	var n int
	for _, s := range series {
		n += len(s.Values)
	}
	out := make([]float64, 0, n)
	for _, s := range series {
		out = append(out, s.Values...)
	}
	return out
}
