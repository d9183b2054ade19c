package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/logbound-go/internal/output"
)

// InverseCmd returns the inverse command.
func InverseCmd() *cli.Command {
	return &cli.Command{
		Name:    "inverse",
		Aliases: []string{"i"},
		Usage:   "Map values in [0, 1] back to negative targets",
		Flags:   append(inputFlags(), outputFlags()...),
		Action:  inverseAction,
	}
}

func inverseAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		report, err := buildReport(ctx, output.DirectionInverse)
		if err != nil {
			return err
		}
		return writeReport(c, report)
	})
}
