package output

import (
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/masmgr/logbound-go/internal/target"
	"github.com/masmgr/logbound-go/internal/transform"
)

func testReport(direction Direction) *TransformReport {
	b := transform.Default()
	inputs := []float64{-100, -1e6, 3}

	out, stats := b.ForwardWithStats(inputs)
	items := make([]Item, len(inputs))
	for i, x := range inputs {
		items[i] = Item{
			Index:  i,
			Source: "data/train.csv",
			Input:  x,
			Output: out[i],
			State:  b.ClassifyForward(x),
		}
		if direction == DirectionRoundTrip {
			restored := b.InverseValue(out[i])
			items[i].Restored = &restored
		}
	}

	report := &TransformReport{
		Direction:   direction,
		Sources:     []string{"data/train.csv"},
		MinBound:    -2,
		MaxBound:    4,
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Items:       items,
		Stats:       stats,
	}
	if direction == DirectionRoundTrip {
		check := target.CheckInverse(b, inputs)
		report.Check = &check
	}
	return report
}

func writeReport(t *testing.T, writer ReportWriter, report *TransformReport, top int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.out")
	if err := writer.Write(report, OutputOptions{Top: top, OutputPath: path}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	return string(data)
}

func TestJSONWriter_Write(t *testing.T) {
	data := writeReport(t, &JSONWriter{}, testReport(DirectionForward), 0)

	var report JSONReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		t.Fatalf("Failed to parse JSON: %v\n%s", err, data)
	}

	if report.Direction != "forward" {
		t.Errorf("Direction = %q, want %q", report.Direction, "forward")
	}
	if report.GeneratedAt != "2026-01-02T03:04:05Z" {
		t.Errorf("GeneratedAt = %q", report.GeneratedAt)
	}
	if len(report.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(report.Items))
	}
	if got := report.Items[0].Output; got == nil || math.Abs(*got-4.0/6.0) > 1e-12 {
		t.Errorf("Items[0].Output = %v, want 0.6667", got)
	}
	if report.Items[1].Clamp != "high" {
		t.Errorf("Items[1].Clamp = %q, want %q", report.Items[1].Clamp, "high")
	}
	if report.Items[2].Output != nil {
		t.Errorf("Items[2].Output = %v, want null for NaN", *report.Items[2].Output)
	}
	if report.Stats.Invalid != 1 || report.Stats.ClampedHigh != 1 {
		t.Errorf("Stats = %+v", report.Stats)
	}
	if report.Check != nil {
		t.Errorf("Check = %+v, want nil for forward report", report.Check)
	}
	if strings.Contains(data, `"restored"`) {
		t.Errorf("forward report should not carry restored values:\n%s", data)
	}
}

func TestJSONWriter_RoundTripNaNRestoredIsNull(t *testing.T) {
	data := writeReport(t, &JSONWriter{}, testReport(DirectionRoundTrip), 0)

	var raw struct {
		Items []map[string]json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	got, ok := raw.Items[2]["restored"]
	if !ok {
		t.Fatalf("restored key missing for NaN value:\n%s", data)
	}
	if string(got) != "null" {
		t.Errorf("restored = %s, want null", got)
	}

	var report JSONReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if r := report.Items[2].Restored; !r.Present || r.Value != nil {
		t.Errorf("Items[2].Restored = %+v, want present null", r)
	}
}

func TestJSONWriter_RoundTripTop(t *testing.T) {
	data := writeReport(t, &JSONWriter{}, testReport(DirectionRoundTrip), 1)

	var report JSONReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if len(report.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(report.Items))
	}
	if got := report.Items[0].Restored.Value; got == nil || math.Abs(*got+100) > 1e-9 {
		t.Errorf("Items[0].Restored = %v, want -100", got)
	}
	if report.Check == nil || report.Check.Mismatches != 2 {
		t.Errorf("Check = %+v, want 2 mismatches", report.Check)
	}
}

func TestCSVWriter_Write(t *testing.T) {
	data := writeReport(t, &CSVWriter{}, testReport(DirectionRoundTrip), 0)

	records, err := csv.NewReader(strings.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	wantHeader := []string{"Index", "Source", "Input", "Output", "Clamp", "Restored", "AbsError"}
	for i, h := range wantHeader {
		if records[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}
	if records[2][2] != "-1e+06" || records[2][3] != "1" || records[2][4] != "high" {
		t.Errorf("clamped row = %v", records[2])
	}
	if records[3][3] != "NaN" || records[3][4] != "invalid" {
		t.Errorf("invalid row = %v", records[3])
	}
}

func TestCIWriter_Write(t *testing.T) {
	data := writeReport(t, &CIWriter{}, testReport(DirectionForward), 2)

	lines := strings.Split(strings.TrimSpace(data), "\n")
	if len(lines) != 3 { // 1 summary + 2 values
		t.Fatalf("expected 3 lines, got %d: %s", len(lines), data)
	}

	var summary CISummary
	if err := json.Unmarshal([]byte(lines[0]), &summary); err != nil {
		t.Fatalf("Failed to parse summary: %v", err)
	}
	if summary.Type != "summary" || summary.Count != 3 || summary.Invalid != 1 {
		t.Errorf("summary = %+v", summary)
	}

	var entry CIValueEntry
	if err := json.Unmarshal([]byte(lines[2]), &entry); err != nil {
		t.Fatalf("Failed to parse entry: %v", err)
	}
	if entry.Type != "value" || entry.Index != 1 || entry.Clamp != "high" {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Output == nil || *entry.Output != 1 {
		t.Errorf("entry.Output = %v, want 1", entry.Output)
	}
	if entry.Restored.Present {
		t.Errorf("entry.Restored = %+v, want absent in forward report", entry.Restored)
	}
}

func TestCIWriter_RoundTripNaNRestoredIsNull(t *testing.T) {
	data := writeReport(t, &CIWriter{}, testReport(DirectionRoundTrip), 0)

	lines := strings.Split(strings.TrimSpace(data), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %s", len(lines), data)
	}
	if !strings.Contains(lines[3], `"restored":null`) {
		t.Errorf("NaN restored value not written as null: %s", lines[3])
	}

	var entry CIValueEntry
	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatalf("Failed to parse entry: %v", err)
	}
	if entry.Restored.Value == nil || math.Abs(*entry.Restored.Value+100) > 1e-9 {
		t.Errorf("entry.Restored = %+v, want -100", entry.Restored)
	}
}

func TestMarkdownWriter_Write(t *testing.T) {
	data := writeReport(t, &MarkdownWriter{}, testReport(DirectionRoundTrip), 0)

	for _, want := range []string{
		"# Bounded Log Transform (roundtrip)",
		"**Bounds:** [-2, 4]",
		"| 3 | 0 | 1 | 1 |",
		"**Inverse check:** 2 mismatches",
		"| # | Source | Input | Output | Restored | Error | Clamp |",
		"⚠ invalid",
	} {
		if !strings.Contains(data, want) {
			t.Errorf("markdown output missing %q:\n%s", want, data)
		}
	}
}

func TestConsoleWriter_Write(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	data := writeReport(t, &ConsoleWriter{}, testReport(DirectionRoundTrip), 0)

	for _, want := range []string{
		"Bounded Log Transform (roundtrip)",
		"Bounds: [-2, 4]",
		"Values: 3 (clamped low: 0, clamped high: 1, invalid: 1)",
		"Restored",
		"Inverse check: 2 of 3 sampled values not restored",
	} {
		if !strings.Contains(data, want) {
			t.Errorf("console output missing %q:\n%s", want, data)
		}
	}
}

func TestWriter_BadOutputPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "report.json")
	for _, format := range []OutputFormat{FormatConsole, FormatJSON, FormatCSV, FormatMarkdown, FormatCI} {
		if err := NewReportWriter(format).Write(testReport(DirectionForward), OutputOptions{OutputPath: path}); err == nil {
			t.Errorf("format %q: expected error for unwritable path", format)
		}
	}
}
