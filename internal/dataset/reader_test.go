package dataset

import (
	"math"
	"strings"
	"testing"
)

func TestReadValues(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		opts     ParseOptions
		expected []float64
	}{
		{name: "One per line", input: "-1\n-2.5\n-1e3\n", expected: []float64{-1, -2.5, -1000}},
		{name: "Blank lines and comments", input: "# targets\n-1\n\n-2\n", expected: []float64{-1, -2}},
		{name: "Header skipped", input: "energy\n-3\n-4\n", expected: []float64{-3, -4}},
		{name: "Column by index", input: "a,b\n1,-5\n2,-6\n", opts: ParseOptions{Column: "1"}, expected: []float64{-5, -6}},
		{name: "Column by name", input: "id, Energy\n1, -7\n2, -8\n", opts: ParseOptions{Column: "energy"}, expected: []float64{-7, -8}},
		{name: "Semicolon delimiter", input: "1;-9\n", opts: ParseOptions{Column: "1", Delimiter: ';'}, expected: []float64{-9}},
		{name: "Padded cells", input: "  -1.5  \n", expected: []float64{-1.5}},
		{name: "Empty input", input: "", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadValues(strings.NewReader(tt.input), tt.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("ReadValues() = %v, expected %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("value[%d] = %g, expected %g", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestReadValues_SpecialValues(t *testing.T) {
	got, err := ReadValues(strings.NewReader("NaN\n-Inf\n0\n"), ParseOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 || !math.IsNaN(got[0]) || !math.IsInf(got[1], -1) || got[2] != 0 {
		t.Fatalf("ReadValues() = %v", got)
	}
}

func TestReadValues_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		opts    ParseOptions
		wantMsg string
	}{
		{name: "Bad data cell", input: "-1\nabc\n", wantMsg: "line 2, column 0"},
		{name: "Missing named column", input: "a,b\n1,2\n", opts: ParseOptions{Column: "c"}, wantMsg: `column "c" not found`},
		{name: "Short row", input: "1,-2\n3\n", opts: ParseOptions{Column: "1"}, wantMsg: "line 2: missing column 1"},
		{name: "Negative index", input: "1\n", opts: ParseOptions{Column: "-1"}, wantMsg: "non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadValues(strings.NewReader(tt.input), tt.opts)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestFlatten(t *testing.T) {
	got := Flatten([]Series{
		{Name: "a", Values: []float64{-1, -2}},
		{Name: "b"},
		{Name: "c", Values: []float64{-3}},
	})
	want := []float64{-1, -2, -3}
	if len(got) != len(want) {
		t.Fatalf("Flatten() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Flatten()[%d] = %g, want %g", i, got[i], want[i])
		}
	}
}
