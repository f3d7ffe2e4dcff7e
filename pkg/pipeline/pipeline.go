// Package pipeline runs complete transport calculations: build the system
// from a scenario, sweep, and render the figures.
//
// The CLI and the scenario runner both go through this package, so a
// calculation behaves the same no matter how it was launched.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: construct and finalize the scattering region with its leads
//  2. Solve: sweep the configured quantity, computing transmission per point
//  3. Render: export the conductance curve (and optionally the geometry)
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(fileCache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{ScenarioPath: "wire.hcl"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Paths)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tbsim/tbsim/pkg/errors"
	"github.com/tbsim/tbsim/pkg/scenario"
	"github.com/tbsim/tbsim/pkg/sweep"
)

// Options configures one pipeline run.
type Options struct {
	// ScenarioPath names the HCL scenario file. Ignored when Scenario is
	// set directly.
	ScenarioPath string `json:"scenario_path,omitempty"`

	// Scenario overrides ScenarioPath with an already-loaded scenario.
	Scenario *scenario.Scenario `json:"-"`

	// OutputDir overrides the scenario's output directory when non-empty.
	OutputDir string `json:"output_dir,omitempty"`

	// Formats overrides the scenario's output formats when non-empty.
	Formats []string `json:"formats,omitempty"`

	// FigureConfig names an optional TOML file with figure overrides.
	FigureConfig string `json:"figure_config,omitempty"`

	// Refresh bypasses the sweep cache.
	Refresh bool `json:"refresh,omitempty"`

	// Logger receives progress output. Defaults to a discard logger.
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Scenario == nil && o.ScenarioPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "pipeline needs a scenario or a scenario path")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Stats contains pipeline execution measurements.
type Stats struct {
	Sites      int
	Hoppings   int
	BuildTime  time.Duration
	SolveTime  time.Duration
	RenderTime time.Duration
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scenario is the definition the pipeline executed.
	Scenario *scenario.Scenario

	// Sweep is the computed (or cached) transmission curve.
	Sweep *sweep.Result

	// Paths lists the written figure files.
	Paths []string

	// Stats contains timing information.
	Stats Stats

	// CacheHit reports whether the sweep curve came from the cache.
	CacheHit bool
}
