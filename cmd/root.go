package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/logbound-go/config"
	"github.com/masmgr/logbound-go/internal/output"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "logbound",
		Usage:   "Bounded log10 transform for strictly negative regression targets",
		Version: "1.0.0",
		Commands: []*cli.Command{
			ForwardCmd(),
			InverseCmd(),
			CheckCmd(),
			CalibrateCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
	}
}

// Input flags shared across commands
func inputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "Input file or glob pattern, - for stdin (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:  "repo",
			Usage: "Read inputs from this Git repository instead of the working tree",
		},
		&cli.StringFlag{
			Name:  "rev",
			Usage: "Git revision to read inputs from (implies --repo .)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns to exclude when reading from Git (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:  "column",
			Usage: "Column name or zero-based index holding the values",
		},
		&cli.StringFlag{
			Name:  "delimiter",
			Usage: "Field delimiter of the input files",
		},
		&cli.Float64Flag{
			Name:  "min-bound",
			Usage: "Lower bound of the log10 magnitude",
		},
		&cli.Float64Flag{
			Name:  "max-bound",
			Usage: "Upper bound of the log10 magnitude",
		},
	}
}

// Output flags shared by the transform commands
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, markdown, ci)",
			Value:   "console",
		},
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"n"},
			Usage:   "Number of values to show (0 for all)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
	}
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) output.OutputFormat {
	switch s {
	case "json":
		return output.FormatJSON
	case "csv":
		return output.FormatCSV
	case "markdown", "md":
		return output.FormatMarkdown
	case "ci", "ndjson":
		return output.FormatCI
	default:
		return output.FormatConsole
	}
}

// loadConfig loads configuration from file or defaults, applies CLI
// overrides and validates the result.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if c.IsSet("min-bound") {
		cfg.Transform.MinBound = c.Float64("min-bound")
	}
	if c.IsSet("max-bound") {
		cfg.Transform.MaxBound = c.Float64("max-bound")
	}
	if c.IsSet("strict") {
		cfg.Transform.StrictDomain = c.Bool("strict")
	}
	if c.IsSet("fail-on-mismatch") {
		cfg.CheckInverse.FailOnMismatch = c.Bool("fail-on-mismatch")
	}
	if c.IsSet("padding") {
		cfg.Calibration.Padding = c.Float64("padding")
	}
	if c.IsSet("column") {
		cfg.Input.Column = c.String("column")
	}
	if c.IsSet("delimiter") {
		cfg.Input.Delimiter = c.String("delimiter")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
