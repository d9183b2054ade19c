package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/logbound-go/internal/output"
)

// ErrInverseMismatch is returned by check when values are not restored
// and failing on mismatch is enabled.
var ErrInverseMismatch = errors.New("inverse transform does not restore all sampled values")

// CheckCmd returns the check command.
func CheckCmd() *cli.Command {
	flags := append(inputFlags(), outputFlags()...)
	flags = append(flags,
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "Fail on values that are not strictly negative instead of emitting NaN",
		},
		&cli.BoolFlag{
			Name:  "fail-on-mismatch",
			Usage: "Exit with an error when the inverse does not restore sampled values",
		},
	)

	return &cli.Command{
		Name:        "check",
		Usage:       "Round-trip values through forward and inverse and report the error",
		Description: "Runs the sampled inverse check that target.TransformedTarget performs at fit time.",
		Flags:       flags,
		Action:      checkAction,
	}
}

func checkAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		report, err := buildReport(ctx, output.DirectionRoundTrip)
		if err != nil {
			return err
		}
		if err := writeReport(c, report); err != nil {
			return err
		}

		check := report.Check
		if check == nil || check.Passed() {
			return nil
		}
		ctx.Logger.Warn("inverse does not restore targets",
			"checked", check.Checked,
			"mismatches", check.Mismatches,
			"maxAbsError", check.MaxAbsError)
		if ctx.Config.CheckInverse.FailOnMismatch {
			return fmt.Errorf("%w (%d of %d)", ErrInverseMismatch, check.Mismatches, check.Checked)
		}
		return nil
	})
}
