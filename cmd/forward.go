package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/logbound-go/internal/output"
)

// ForwardCmd returns the forward command.
func ForwardCmd() *cli.Command {
	flags := append(inputFlags(), outputFlags()...)
	flags = append(flags,
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "Fail on values that are not strictly negative instead of emitting NaN",
		},
	)

	return &cli.Command{
		Name:    "forward",
		Aliases: []string{"f"},
		Usage:   "Map negative values into [0, 1]",
		Flags:   flags,
		Action:  forwardAction,
	}
}

func forwardAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		report, err := buildReport(ctx, output.DirectionForward)
		if err != nil {
			return err
		}
		return writeReport(c, report)
	})
}
