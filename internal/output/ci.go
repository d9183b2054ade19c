package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// CIWriter writes transform reports as NDJSON (one JSON object per line) for CI pipelines.
type CIWriter struct{}

// CISummary is the first line of CI output, containing aggregate statistics.
type CISummary struct {
	Type           string `json:"type"`
	Direction      string `json:"direction"`
	Count          int    `json:"count"`
	ClampedLow     int    `json:"clampedLow"`
	ClampedHigh    int    `json:"clampedHigh"`
	Invalid        int    `json:"invalid"`
	InverseChecked int    `json:"inverseChecked,omitempty"`
	Mismatches     int    `json:"mismatches,omitempty"`
}

// CIValueEntry represents a single value in CI output.
type CIValueEntry struct {
	Type     string         `json:"type"`
	Index    int            `json:"index"`
	Source   string         `json:"source"`
	Input    *float64       `json:"input"`
	Output   *float64       `json:"output"`
	Restored OptionalNumber `json:"restored,omitzero"`
	Clamp    string         `json:"clamp"`
}

// Write outputs the transform report as NDJSON.
func (w *CIWriter) Write(report *TransformReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	summary := CISummary{
		Type:        "summary",
		Direction:   string(report.Direction),
		Count:       report.Stats.Count,
		ClampedLow:  report.Stats.ClampedLow,
		ClampedHigh: report.Stats.ClampedHigh,
		Invalid:     report.Stats.Invalid,
	}
	if report.Check != nil {
		summary.InverseChecked = report.Check.Checked
		summary.Mismatches = report.Check.Mismatches
	}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	for _, item := range items {
		entry := CIValueEntry{
			Type:   "value",
			Index:  item.Index,
			Source: item.Source,
			Input:  jsonNumber(item.Input),
			Output: jsonNumber(item.Output),
			Clamp:  string(item.State),
		}
		if item.Restored != nil {
			entry.Restored = optionalNumber(*item.Restored)
		}
		if err := writeNDJSONLine(out, entry); err != nil {
			return err
		}
	}

	return nil
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
