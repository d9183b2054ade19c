package output

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/masmgr/logbound-go/internal/transform"
)

// ConsoleWriter writes transform reports as an aligned table.
type ConsoleWriter struct{}

// Write outputs the transform report to the console.
func (w *ConsoleWriter) Write(report *TransformReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	title := color.New(color.FgGreen)
	title.Fprintf(out, "Bounded Log Transform (%s)\n", report.Direction)
	fmt.Fprintf(out, "Sources: %s\n", strings.Join(report.Sources, ", "))
	fmt.Fprintf(out, "Bounds: [%g, %g]\n", report.MinBound, report.MaxBound)
	fmt.Fprintf(out, "Values: %d (clamped low: %d, clamped high: %d, invalid: %d)\n\n",
		report.Stats.Count, report.Stats.ClampedLow, report.Stats.ClampedHigh, report.Stats.Invalid)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	roundTrip := report.Direction == DirectionRoundTrip
	if roundTrip {
		fmt.Fprintln(tw, "#\tSource\tInput\tOutput\tRestored\tError\tClamp")
	} else {
		fmt.Fprintln(tw, "#\tSource\tInput\tOutput\tClamp")
	}

	for _, item := range items {
		state := stateLabel(item.State)
		if roundTrip {
			restored := "-"
			if item.Restored != nil {
				restored = formatValue(*item.Restored)
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%.6f\t%s\t%.3g\t%s\n",
				item.Index, item.Source, formatValue(item.Input), item.Output,
				restored, absError(item), state)
		} else {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
				item.Index, item.Source, formatValue(item.Input), formatValue(item.Output), state)
		}
	}

	tw.Flush()

	if report.Check != nil {
		fmt.Fprintln(out)
		if report.Check.Passed() {
			color.New(color.FgGreen).Fprintf(out, "Inverse check passed (%d sampled)\n", report.Check.Checked)
		} else {
			color.New(color.FgYellow).Fprintf(out, "Inverse check: %d of %d sampled values not restored (max abs error %g)\n",
				report.Check.Mismatches, report.Check.Checked, report.Check.MaxAbsError)
		}
	}

	return nil
}

func stateLabel(state transform.ClampState) string {
	switch state {
	case transform.ClampHigh:
		return color.CyanString("high")
	case transform.ClampLow:
		return color.CyanString("low")
	case transform.ClampInvalid:
		return color.RedString("invalid")
	default:
		return ""
	}
}
