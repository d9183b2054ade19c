package output

import (
	"fmt"
	"strings"

	"github.com/masmgr/logbound-go/internal/transform"
)

// MarkdownWriter writes transform reports as Markdown.
type MarkdownWriter struct{}

// Write outputs the transform report as Markdown.
func (w *MarkdownWriter) Write(report *TransformReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	fmt.Fprintf(out, "# Bounded Log Transform (%s)\n\n", report.Direction)
	fmt.Fprintf(out, "**Sources:** %s\n\n", escapeMarkdown(strings.Join(report.Sources, ", ")))
	fmt.Fprintf(out, "**Bounds:** [%g, %g]\n\n", report.MinBound, report.MaxBound)
	fmt.Fprintf(out, "**Generated:** %s\n\n", report.GeneratedAt.Format(reportDateTimeLayout))

	fmt.Fprintln(out, "## Summary")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "| Values | Clamped low | Clamped high | Invalid |")
	fmt.Fprintln(out, "|--------|-------------|--------------|---------|")
	fmt.Fprintf(out, "| %d | %d | %d | %d |\n\n",
		report.Stats.Count, report.Stats.ClampedLow, report.Stats.ClampedHigh, report.Stats.Invalid)

	if report.Check != nil {
		status := "passed"
		if !report.Check.Passed() {
			status = fmt.Sprintf("%d mismatches", report.Check.Mismatches)
		}
		fmt.Fprintf(out, "**Inverse check:** %s (%d sampled, max abs error %g)\n\n",
			status, report.Check.Checked, report.Check.MaxAbsError)
	}

	fmt.Fprintln(out, "## Values")
	fmt.Fprintln(out)
	roundTrip := report.Direction == DirectionRoundTrip
	if roundTrip {
		fmt.Fprintln(out, "| # | Source | Input | Output | Restored | Error | Clamp |")
		fmt.Fprintln(out, "|---|--------|-------|--------|----------|-------|-------|")
	} else {
		fmt.Fprintln(out, "| # | Source | Input | Output | Clamp |")
		fmt.Fprintln(out, "|---|--------|-------|--------|-------|")
	}

	for _, item := range items {
		if roundTrip {
			restored := "-"
			if item.Restored != nil {
				restored = formatValue(*item.Restored)
			}
			fmt.Fprintf(out, "| %d | `%s` | %s | %s | %s | %.3g | %s |\n",
				item.Index, item.Source, formatValue(item.Input), formatValue(item.Output),
				restored, absError(item), clampBadge(item.State))
		} else {
			fmt.Fprintf(out, "| %d | `%s` | %s | %s | %s |\n",
				item.Index, item.Source, formatValue(item.Input), formatValue(item.Output),
				clampBadge(item.State))
		}
	}

	return nil
}

func clampBadge(state transform.ClampState) string {
	switch state {
	case transform.ClampHigh:
		return "⬆ high"
	case transform.ClampLow:
		return "⬇ low"
	case transform.ClampInvalid:
		return "⚠ invalid"
	default:
		return ""
	}
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
