package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/logbound-go/internal/calibration"
	"github.com/masmgr/logbound-go/internal/dataset"
)

// CalibrateCmd returns the calibrate command.
func CalibrateCmd() *cli.Command {
	flags := append(inputFlags(),
		&cli.Float64Flag{
			Name:  "padding",
			Usage: "Decades added below and above the observed range",
		},
	)

	return &cli.Command{
		Name:   "calibrate",
		Usage:  "Recommend bounds that cover the observed target magnitudes",
		Flags:  flags,
		Action: calibrateAction,
	}
}

func calibrateAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		result := calibration.Calibrate(calibration.CalibrateInput{
			Values:  dataset.Flatten(ctx.Series),
			Current: ctx.Transform,
			Padding: ctx.Config.Calibration.Padding,
		})

		if result.ValidCount == 0 {
			fmt.Fprintln(c.App.Writer, "No strictly negative values found. Cannot calibrate bounds.")
			return nil
		}
		if result.InvalidCount > 0 {
			ctx.Logger.Warn("skipped values outside the forward domain", "count", result.InvalidCount)
		}

		printCalibrationResult(c.App.Writer, result)
		return nil
	})
}

func printCalibrationResult(w io.Writer, result calibration.CalibrateResult) {
	color.New(color.FgGreen).Fprintf(w, "Calibration Results (based on %d values, %d skipped):\n",
		result.ValidCount, result.InvalidCount)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Observed log10 magnitude: %.3f to %.3f\n\n", result.ObservedMin, result.ObservedMax)

	fmt.Fprintln(w, "Recommended bounds:")
	fmt.Fprintf(w, "  %-10s %g (current: %g)%s\n", "min:", result.RecommendedMin, result.CurrentMin,
		boundMarker(result.RecommendedMin, result.CurrentMin))
	fmt.Fprintf(w, "  %-10s %g (current: %g)%s\n", "max:", result.RecommendedMax, result.CurrentMax,
		boundMarker(result.RecommendedMax, result.CurrentMax))

	fmt.Fprintf(w, "\nClamped with current bounds: %.1f%%\n", result.CurrentClampRate*100)
	fmt.Fprintf(w, "Clamped with recommended bounds: %.1f%%\n", result.RecommendedRate*100)

	if result.Improved() {
		improvement := (result.CurrentClampRate - result.RecommendedRate) * 100
		color.New(color.FgGreen).Fprintf(w, "\nImprovement: -%.1f percentage points clamped\n", improvement)
	} else {
		color.New(color.FgGreen).Fprintln(w, "\nCurrent bounds already cover this dataset.")
	}
}

func boundMarker(recommended, current float64) string {
	switch {
	case recommended > current:
		return color.CyanString("  ^")
	case recommended < current:
		return color.YellowString("  v")
	}
	return ""
}
