package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tbsim/tbsim/pkg/pipeline"
	"github.com/tbsim/tbsim/pkg/plotter"
	"github.com/tbsim/tbsim/pkg/scenario"
)

// outputOpts holds the flags shared by every figure-producing command.
type outputOpts struct {
	dir        string // output directory for figures
	formatsStr string // comma-separated output formats
	figConfig  string // optional TOML file with figure overrides
	refresh    bool   // bypass the sweep cache
	noCache    bool   // disable caching entirely
}

// register adds the figure output flags shared by every rendering command.
func (o *outputOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.dir, "output", "o", "out", "output directory for figures")
	cmd.Flags().StringVarP(&o.formatsStr, "format", "f", "", "output format(s): png (default), pdf (comma-separated)")
	cmd.Flags().StringVar(&o.figConfig, "fig-config", "", "TOML file with figure setting overrides")
}

// registerCache adds the cache-control flags. Only commands that consult the
// result cache register these.
func (o *outputOpts) registerCache(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "recompute even if a cached result exists")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the result cache")
}

// formats parses the --format flag. If empty, defaults to ["png"].
func (o *outputOpts) formats() []string {
	if o.formatsStr == "" {
		return []string{plotter.FormatPNG}
	}
	return strings.Split(o.formatsStr, ",")
}

// runPipeline executes a scenario through the pipeline with spinner and
// status output.
func runPipeline(ctx context.Context, scn *scenario.Scenario, out *outputOpts) error {
	logger := loggerFromContext(ctx)

	c, err := openCache(out.noCache)
	if err != nil {
		return err
	}
	defer c.Close()

	runner := pipeline.NewRunner(c, logger)

	spinner := newSpinner(ctx, "computing transmission...")
	spinner.Start()
	result, err := runner.Execute(ctx, pipeline.Options{
		Scenario:     scn,
		FigureConfig: out.figConfig,
		Refresh:      out.refresh,
		Logger:       logger,
	})
	spinner.Stop()
	if err != nil {
		return err
	}

	printSuccess("Computed %s (%d points)", scn.Name, result.Sweep.Stats.Points)
	printStats(result.Stats.Sites, result.Stats.Hoppings, result.CacheHit)
	for _, path := range result.Paths {
		printFile(path)
	}
	return nil
}
