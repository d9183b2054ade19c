package cmd

import (
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/logbound-go/config"
	"github.com/masmgr/logbound-go/internal/dataset"
	"github.com/masmgr/logbound-go/internal/logging"
	"github.com/masmgr/logbound-go/internal/output"
	"github.com/masmgr/logbound-go/internal/transform"
)

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across all commands.
type CommandContext struct {
	Config    *config.Config
	Logger    *charmlog.Logger
	Transform transform.BoundedLog
	Series    []dataset.Series
}

// NewCommandContext creates a context from CLI flags.
// It loads configuration, builds the transform and reads the input values.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	logger := logging.New(c.App.ErrWriter, cfg.Log.Level)

	b, err := cfg.BoundedLog()
	if err != nil {
		return nil, err
	}

	source := newSource(c, cfg)
	series, err := source.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	ctx := &CommandContext{
		Config:    cfg,
		Logger:    logger,
		Transform: b,
		Series:    series,
	}
	if ctx.ValueCount() == 0 {
		return nil, dataset.ErrNoValues
	}

	logger.Debug("loaded input", "series", len(series), "values", ctx.ValueCount())
	return ctx, nil
}

// newSource picks the Git source when a repository or revision is given.
func newSource(c *cli.Context, cfg *config.Config) dataset.Source {
	opts := dataset.ParseOptions{
		Column:    cfg.Input.Column,
		Delimiter: cfg.DelimiterRune(),
	}

	if c.IsSet("repo") || c.IsSet("rev") {
		repo := c.String("repo")
		if repo == "" {
			repo = "."
		}
		return &dataset.GitSource{
			RepoPath: repo,
			Revision: c.String("rev"),
			Include:  c.StringSlice("input"),
			Exclude:  c.StringSlice("exclude"),
			Options:  opts,
		}
	}

	return &dataset.LocalSource{
		Patterns: c.StringSlice("input"),
		Stdin:    c.App.Reader,
		Options:  opts,
	}
}

// ValueCount returns the number of values across all series.
func (ctx *CommandContext) ValueCount() int {
	n := 0
	for _, s := range ctx.Series {
		n += len(s.Values)
	}
	return n
}

// Sources returns the series names in load order.
func (ctx *CommandContext) Sources() []string {
	names := make([]string, len(ctx.Series))
	for i, s := range ctx.Series {
		names[i] = s.Name
	}
	return names
}

// executeWithContext builds the command context and runs fn with it.
func executeWithContext(c *cli.Context, fn func(ctx *CommandContext, c *cli.Context) error) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	return fn(ctx, c)
}

// OutputOptions creates OutputOptions from CLI flags.
func OutputOptions(c *cli.Context) output.OutputOptions {
	return output.OutputOptions{
		Format:     getOutputFormat(c.String("format")),
		Top:        c.Int("top"),
		OutputPath: c.String("output"),
	}
}
