package output

import (
	"encoding/json"
	"fmt"
	"time"
)

// JSONWriter writes transform reports as JSON.
type JSONWriter struct{}

// JSONReport is the JSON output structure for a transform run.
type JSONReport struct {
	Direction   string     `json:"direction"`
	Sources     []string   `json:"sources"`
	MinBound    float64    `json:"minBound"`
	MaxBound    float64    `json:"maxBound"`
	GeneratedAt string     `json:"generatedAt"`
	Stats       JSONStats  `json:"stats"`
	Check       *JSONCheck `json:"inverseCheck,omitempty"`
	Items       []JSONItem `json:"items"`
}

// JSONStats holds the clamp counters in JSON format.
type JSONStats struct {
	Count       int `json:"count"`
	ClampedLow  int `json:"clampedLow"`
	ClampedHigh int `json:"clampedHigh"`
	Invalid     int `json:"invalid"`
}

// JSONCheck holds the inverse check summary in JSON format.
type JSONCheck struct {
	Checked     int     `json:"checked"`
	Mismatches  int     `json:"mismatches"`
	MaxAbsError float64 `json:"maxAbsError"`
}

// JSONItem is the JSON output structure for a single value.
// NaN and infinite values are written as null.
type JSONItem struct {
	Index    int            `json:"index"`
	Source   string         `json:"source"`
	Input    *float64       `json:"input"`
	Output   *float64       `json:"output"`
	Restored OptionalNumber `json:"restored,omitzero"`
	Clamp    string         `json:"clamp"`
}

// Write outputs the transform report as JSON.
func (w *JSONWriter) Write(report *TransformReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	jsonItems := make([]JSONItem, len(items))
	for i, item := range items {
		jsonItems[i] = JSONItem{
			Index:  item.Index,
			Source: item.Source,
			Input:  jsonNumber(item.Input),
			Output: jsonNumber(item.Output),
			Clamp:  string(item.State),
		}
		if item.Restored != nil {
			jsonItems[i].Restored = optionalNumber(*item.Restored)
		}
	}

	jsonReport := JSONReport{
		Direction:   string(report.Direction),
		Sources:     report.Sources,
		MinBound:    report.MinBound,
		MaxBound:    report.MaxBound,
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		Stats: JSONStats{
			Count:       report.Stats.Count,
			ClampedLow:  report.Stats.ClampedLow,
			ClampedHigh: report.Stats.ClampedHigh,
			Invalid:     report.Stats.Invalid,
		},
		Items: jsonItems,
	}
	if report.Check != nil {
		jsonReport.Check = &JSONCheck{
			Checked:     report.Check.Checked,
			Mismatches:  report.Check.Mismatches,
			MaxAbsError: report.Check.MaxAbsError,
		}
	}

	return writeJSON(jsonReport, options.OutputPath)
}

func writeJSON(v interface{}, outputPath string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	out, file, err := openOutputWriter(outputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	_, err = fmt.Fprintln(out, string(data))
	return err
}
