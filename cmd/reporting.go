package cmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/logbound-go/internal/output"
	"github.com/masmgr/logbound-go/internal/target"
	"github.com/masmgr/logbound-go/internal/transform"
)

// buildReport applies the transform in the given direction to every series.
func buildReport(ctx *CommandContext, direction output.Direction) (*output.TransformReport, error) {
	b := ctx.Transform
	minBound, maxBound := b.Bounds()

	report := &output.TransformReport{
		Direction:   direction,
		Sources:     ctx.Sources(),
		MinBound:    minBound,
		MaxBound:    maxBound,
		GeneratedAt: time.Now(),
		Items:       make([]output.Item, 0, ctx.ValueCount()),
	}

	for _, s := range ctx.Series {
		if direction != output.DirectionInverse && ctx.Config.Transform.StrictDomain {
			if err := transform.CheckDomain(s.Values); err != nil {
				return nil, fmt.Errorf("%s: %w", s.Name, err)
			}
		}

		var out []float64
		var stats transform.Stats
		classify := b.ClassifyForward
		if direction == output.DirectionInverse {
			out, stats = b.InverseWithStats(s.Values)
			classify = b.ClassifyInverse
		} else {
			out, stats = b.ForwardWithStats(s.Values)
		}
		addStats(&report.Stats, stats)

		var restored []float64
		if direction == output.DirectionRoundTrip {
			restored = b.Inverse(out)
		}

		for i, v := range s.Values {
			item := output.Item{
				Index:  i,
				Source: s.Name,
				Input:  v,
				Output: out[i],
				State:  classify(v),
			}
			if restored != nil {
				item.Restored = &restored[i]
			}
			report.Items = append(report.Items, item)
		}

		switch {
		case direction == output.DirectionRoundTrip:
			report.Check = mergeCheck(report.Check, target.CheckInverse(b, s.Values))
		case direction == output.DirectionForward && ctx.Config.CheckInverse.Enabled:
			if check := target.CheckInverse(b, s.Values); !check.Passed() {
				ctx.Logger.Warn("inverse does not restore targets", "source", s.Name,
					"checked", check.Checked, "mismatches", check.Mismatches)
			}
		}
	}

	logStats(ctx, direction, report.Stats)
	return report, nil
}

func addStats(total *transform.Stats, s transform.Stats) {
	total.Count += s.Count
	total.ClampedLow += s.ClampedLow
	total.ClampedHigh += s.ClampedHigh
	total.Invalid += s.Invalid
}

func mergeCheck(total *target.InverseCheck, c target.InverseCheck) *target.InverseCheck {
	if total == nil {
		return &c
	}
	total.Checked += c.Checked
	total.Mismatches += c.Mismatches
	if c.MaxAbsError > total.MaxAbsError {
		total.MaxAbsError = c.MaxAbsError
	}
	return total
}

func logStats(ctx *CommandContext, direction output.Direction, stats transform.Stats) {
	if stats.Invalid > 0 {
		if direction == output.DirectionInverse {
			ctx.Logger.Warn("NaN inputs propagate to the output", "count", stats.Invalid)
		} else {
			ctx.Logger.Warn("values outside the forward domain (x >= 0) produce NaN", "count", stats.Invalid)
		}
	}
	if stats.Clamped() > 0 {
		ctx.Logger.Info("values clamped to bounds", "low", stats.ClampedLow, "high", stats.ClampedHigh)
	}
}

func writeReport(c *cli.Context, report *output.TransformReport) error {
	opts := OutputOptions(c)
	writer := output.NewReportWriter(opts.Format)
	return writer.Write(report, opts)
}
