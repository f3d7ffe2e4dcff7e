package pipeline

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tbsim/tbsim/pkg/cache"
	"github.com/tbsim/tbsim/pkg/plotter"
	"github.com/tbsim/tbsim/pkg/scenario"
	"github.com/tbsim/tbsim/pkg/sweep"
)

// Runner executes pipelines with caching.
//
// The Runner is stateless except for the cache and logger - it stores no
// results itself. Multiple goroutines can safely share one Runner with
// different options.
type Runner struct {
	Sweeps *sweep.Runner
	Logger *log.Logger
}

// NewRunner creates a runner backed by the given cache.
// If cache is nil, caching is disabled.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Sweeps: sweep.NewRunner(c, logger),
		Logger: logger,
	}
}

// Execute runs the complete build -> solve -> render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	scn := opts.Scenario
	if scn == nil {
		loaded, err := scenario.Load(opts.ScenarioPath)
		if err != nil {
			return nil, err
		}
		scn = loaded
	}
	if err := scn.Validate(); err != nil {
		return nil, err
	}

	result := &Result{Scenario: scn}

	// Stage 1: Build
	buildStart := time.Now()
	sys, err := scn.BuildSystem()
	if err != nil {
		return nil, err
	}
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Sites = sys.NumSites()
	result.Stats.Hoppings = len(sys.Hoppings())

	logger.Info("built system",
		"sites", sys.NumSites(),
		"hoppings", len(sys.Hoppings()),
		"leads", sys.NumLeads(),
		"duration", result.Stats.BuildTime)

	// Stage 2: Solve
	sweepOpts := scn.RunOptions()
	sweepOpts.Refresh = opts.Refresh
	sweepOpts.Logger = logger

	solveStart := time.Now()
	sweepResult, err := r.Sweeps.Execute(ctx, sys, sweepOpts)
	if err != nil {
		return nil, err
	}
	result.Sweep = sweepResult
	result.CacheHit = sweepResult.CacheHit
	result.Stats.SolveTime = time.Since(solveStart)

	logger.Info("computed transmission",
		"points", sweepResult.Stats.Points,
		"cached", sweepResult.CacheHit,
		"duration", result.Stats.SolveTime)

	// Stage 3: Render
	dir := scn.Output.Directory
	if opts.OutputDir != "" {
		dir = opts.OutputDir
	}
	formats := scn.Output.Formats
	if len(opts.Formats) > 0 {
		formats = opts.Formats
	}

	cfg, err := plotter.LoadConfig(opts.FigureConfig)
	if err != nil {
		return nil, err
	}

	xs := sweepResult.Curve.X
	if sweepOpts.Quantity == sweep.QuantityFlux {
		xs = fluxQuanta(xs)
	}

	renderStart := time.Now()
	fig, err := plotter.Conductance(cfg, xLabel(sweepOpts.Quantity), xs, sweepResult.Curve.T)
	if err != nil {
		return nil, err
	}
	paths, err := fig.SaveAll(dir, formats)
	if err != nil {
		return nil, err
	}
	result.Paths = paths

	if scn.Output.PlotSystem {
		sysFig, err := plotter.System(cfg, sys)
		if err != nil {
			return nil, err
		}
		sysPaths, err := sysFig.SaveAll(dir, formats)
		if err != nil {
			return nil, err
		}
		result.Paths = append(result.Paths, sysPaths...)
	}
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered figures",
		"files", len(result.Paths),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// xLabel names the swept quantity on the figure axis.
func xLabel(quantity string) string {
	if quantity == sweep.QuantityFlux {
		return "flux [flux quantum]"
	}
	return "energy [t]"
}

// fluxQuanta rescales a flux grid from the Peierls phase in radians to flux
// quanta, matching the axis label; one flux quantum is a phase of 2*pi.
func fluxQuanta(phis []float64) []float64 {
	out := make([]float64, len(phis))
	for i, phi := range phis {
		out[i] = phi / (2 * math.Pi)
	}
	return out
}
