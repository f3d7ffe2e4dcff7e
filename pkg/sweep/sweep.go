// Package sweep runs transmission calculations over parameter grids.
//
// A sweep fixes a finalized system and varies one quantity - the carrier
// energy or a named parameter such as a magnetic flux - solving the
// scattering problem at each grid point and collecting the transmission
// into a Curve. Finished curves are cached by content so that re-running
// an unchanged sweep is free.
//
// Create a Runner and execute a sweep:
//
//	runner := sweep.NewRunner(fileCache, logger)
//	opts := sweep.Options{
//	    Quantity: sweep.QuantityEnergy,
//	    Range:    sweep.Range{Min: 0, Max: 2, Samples: 200},
//	}
//	result, err := runner.Execute(ctx, sys, opts)
package sweep

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tbsim/tbsim/pkg/errors"
)

// Quantity constants name what a sweep varies.
const (
	// QuantityEnergy varies the carrier energy at which the scattering
	// problem is solved.
	QuantityEnergy = "energy"

	// QuantityFlux varies a named parameter (default "phi") at a fixed
	// carrier energy. The parameter typically enters hopping values as a
	// Peierls phase.
	QuantityFlux = "flux"
)

// ValidQuantities is the set of supported sweep quantities.
var ValidQuantities = map[string]bool{
	QuantityEnergy: true,
	QuantityFlux:   true,
}

// DefaultFluxParam is the parameter name a flux sweep varies unless the
// options name another one.
const DefaultFluxParam = "phi"

// Range is a closed interval sampled at evenly spaced points, endpoints
// included.
type Range struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Samples int     `json:"samples"`
}

// Validate checks that the range describes a usable grid.
func (r Range) Validate() error {
	if r.Samples < 2 {
		return errors.New(errors.ErrCodeInvalidSweep, "sweep needs at least 2 samples, got %d", r.Samples)
	}
	if r.Max <= r.Min {
		return errors.New(errors.ErrCodeInvalidSweep, "sweep range [%g, %g] is empty", r.Min, r.Max)
	}
	return nil
}

// Values returns the sample grid.
func (r Range) Values() []float64 {
	xs := make([]float64, r.Samples)
	step := (r.Max - r.Min) / float64(r.Samples-1)
	for i := range xs {
		xs[i] = r.Min + float64(i)*step
	}
	// Pin the endpoint exactly so cache keys and plot axes agree.
	xs[r.Samples-1] = r.Max
	return xs
}

// Options configures a sweep. The struct serializes to JSON so scenario
// files and cache keys can carry it.
type Options struct {
	// Quantity selects what varies: QuantityEnergy or QuantityFlux.
	Quantity string `json:"quantity"`

	// Range is the sample grid for the varied quantity.
	Range Range `json:"range"`

	// FromLead and ToLead select the transmission T(ToLead <- FromLead).
	FromLead int `json:"from_lead"`
	ToLead   int `json:"to_lead"`

	// Energy is the fixed carrier energy for flux sweeps. Ignored for
	// energy sweeps.
	Energy float64 `json:"energy,omitempty"`

	// FluxParam is the parameter name a flux sweep varies.
	// Defaults to DefaultFluxParam.
	FluxParam string `json:"flux_param,omitempty"`

	// Params holds fixed parameter values passed to every solve.
	Params map[string]float64 `json:"params,omitempty"`

	// Refresh bypasses the cache and recomputes the curve.
	Refresh bool `json:"refresh,omitempty"`

	// TTL bounds how long the cached curve stays fresh. Zero means forever.
	TTL time.Duration `json:"-"`

	// Logger receives progress output. Defaults to a discard logger.
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Quantity == "" {
		o.Quantity = QuantityEnergy
	}
	if !ValidQuantities[o.Quantity] {
		return errors.New(errors.ErrCodeInvalidSweep, "unknown sweep quantity %q", o.Quantity)
	}
	if err := o.Range.Validate(); err != nil {
		return err
	}
	if o.FromLead == 0 && o.ToLead == 0 {
		o.ToLead = 1
	}
	if o.FromLead == o.ToLead {
		return errors.New(errors.ErrCodeInvalidSweep, "sweep lead pair %d -> %d must differ", o.FromLead, o.ToLead)
	}
	if o.FluxParam == "" {
		o.FluxParam = DefaultFluxParam
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Curve is the output of a sweep: transmission T at each grid value X.
// It marshals to JSON for caching and plotting.
type Curve struct {
	X []float64 `json:"x"`
	T []float64 `json:"t"`
}

// Stats records sweep execution measurements.
type Stats struct {
	Points    int
	SolveTime time.Duration
}

// Result contains the outputs of one sweep run.
type Result struct {
	// RunID uniquely identifies this execution for logs.
	RunID string

	// Curve is the computed (or cached) transmission curve.
	Curve Curve

	// Stats contains timing information. Zero solve time for cache hits.
	Stats Stats

	// CacheHit reports whether the curve was replayed from the cache.
	CacheHit bool
}

// BandsOptions configures a lead band-structure computation.
type BandsOptions struct {
	// Momenta is the number of uniform momentum samples over [-pi, pi].
	Momenta int

	// Params holds fixed parameter values for the cell Hamiltonian.
	Params map[string]float64

	// Refresh bypasses the cache and recomputes the bands.
	Refresh bool
}

// BandsResult contains a lead band structure: for each momentum in Momenta
// the energies of all bands, sorted ascending.
type BandsResult struct {
	Momenta  []float64   `json:"momenta"`
	Energies [][]float64 `json:"energies"`

	CacheHit bool `json:"-"`
}
