package sweep

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tbsim/tbsim/pkg/cache"
	"github.com/tbsim/tbsim/pkg/errors"
	"github.com/tbsim/tbsim/pkg/physics"
	"github.com/tbsim/tbsim/pkg/system"
)

// Runner executes sweeps with caching.
//
// The Runner is stateless except for the cache and logger - it stores no
// sweep results itself. Multiple goroutines can safely share one Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs one sweep over the system, consulting the cache first.
func (r *Runner) Execute(ctx context.Context, sys *system.FiniteSystem, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	if sys.NumLeads() <= opts.FromLead || sys.NumLeads() <= opts.ToLead {
		return nil, errors.New(errors.ErrCodeInvalidSweep,
			"sweep lead pair %d -> %d out of range for %d leads",
			opts.FromLead, opts.ToLead, sys.NumLeads())
	}

	result := &Result{RunID: uuid.NewString()}
	logger = logger.With("run", result.RunID)

	key := r.sweepKey(sys, opts)
	if !opts.Refresh {
		if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
			var curve Curve
			if err := json.Unmarshal(data, &curve); err == nil {
				logger.Debug("sweep cache hit", "points", len(curve.X))
				result.Curve = curve
				result.Stats.Points = len(curve.X)
				result.CacheHit = true
				return result, nil
			}
		}
	}

	xs := opts.Range.Values()
	curve := Curve{X: xs, T: make([]float64, len(xs))}

	logger.Info("running sweep",
		"quantity", opts.Quantity,
		"points", len(xs),
		"leads", []int{opts.FromLead, opts.ToLead})

	start := time.Now()
	for i, x := range xs {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "sweep canceled at point %d", i)
		}

		p := make(system.Params, len(opts.Params)+1)
		for k, v := range opts.Params {
			p[k] = v
		}
		energy := x
		if opts.Quantity == QuantityFlux {
			p[opts.FluxParam] = x
			energy = opts.Energy
		}

		sol, err := physics.Solve(sys, energy, p)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeSolver
			}
			return nil, errors.Wrap(code, err, "sweep point %d (%s=%g)", i, opts.Quantity, x)
		}
		t, err := sol.Transmission(opts.ToLead, opts.FromLead)
		if err != nil {
			return nil, err
		}
		curve.T[i] = t
	}
	result.Curve = curve
	result.Stats.Points = len(xs)
	result.Stats.SolveTime = time.Since(start)

	logger.Info("sweep done", "duration", result.Stats.SolveTime)

	if data, err := json.Marshal(curve); err == nil {
		if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
			logger.Warn("failed to cache sweep", "err", err)
		}
	}
	return result, nil
}

// Bands computes (or replays) a lead band structure over a uniform momentum
// grid covering the first Brillouin zone [-pi, pi].
func (r *Runner) Bands(ctx context.Context, lead *system.InfiniteSystem, opts BandsOptions) (*BandsResult, error) {
	if opts.Momenta < 2 {
		return nil, errors.New(errors.ErrCodeInvalidSweep, "band structure needs at least 2 momenta, got %d", opts.Momenta)
	}

	key := cache.BandsKey(lead.Fingerprint(), opts.Momenta, opts.Params)
	if !opts.Refresh {
		if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
			var res BandsResult
			if err := json.Unmarshal(data, &res); err == nil {
				res.CacheHit = true
				return &res, nil
			}
		}
	}

	ks := make([]float64, opts.Momenta)
	step := 2 * math.Pi / float64(opts.Momenta-1)
	for i := range ks {
		ks[i] = -math.Pi + float64(i)*step
	}
	ks[opts.Momenta-1] = math.Pi

	energies, err := lead.Bands(ks, system.Params(opts.Params))
	if err != nil {
		return nil, err
	}
	res := &BandsResult{Momenta: ks, Energies: energies}

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, 0); err != nil {
			r.Logger.Warn("failed to cache bands", "err", err)
		}
	}
	return res, nil
}

// sweepKey derives the cache key for the sweep. Flux sweeps fold the fixed
// energy and the varied parameter name into the key alongside the fixed
// parameter values.
func (r *Runner) sweepKey(sys *system.FiniteSystem, opts Options) string {
	extra := make(map[string]float64, len(opts.Params)+1)
	for k, v := range opts.Params {
		extra[k] = v
	}
	quantity := opts.Quantity
	if opts.Quantity == QuantityFlux {
		quantity = quantity + ":" + opts.FluxParam
		extra["energy"] = opts.Energy
	}
	return cache.SweepKey(sys.Fingerprint(), quantity,
		opts.Range.Min, opts.Range.Max, opts.Range.Samples,
		opts.FromLead, opts.ToLead, extra)
}
