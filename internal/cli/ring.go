package cli

import (
	"math"

	"github.com/spf13/cobra"

	"github.com/tbsim/tbsim/pkg/scenario"
	"github.com/tbsim/tbsim/pkg/sweep"
)

// ringOpts holds the command-line flags for the ring command.
type ringOpts struct {
	inner      float64 // inner annulus radius
	outer      float64 // outer annulus radius
	leadWidth  int     // transverse lead size
	hopping    float64 // hopping matrix element t
	energy     float64 // fixed carrier energy
	fmin, fmax float64 // flux window in flux quanta (units of 2 pi)
	samples    int     // sweep sample count
	plotSystem bool    // also render the geometry
	out        outputOpts
}

// newRingCmd creates the ring command: an Aharonov-Bohm interferometer. The
// flux threading the hole shifts the relative phase of the two arms, so the
// conductance oscillates with period one flux quantum.
func newRingCmd() *cobra.Command {
	opts := ringOpts{
		inner:   10,
		outer:   20,
		hopping: -1,
		energy:  0.15,
		fmin:    -1,
		fmax:    1,
		samples: 100,
	}

	cmd := &cobra.Command{
		Use:   "ring",
		Short: "Aharonov-Bohm ring conductance versus flux",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scn := &scenario.Scenario{
				Name: "ring",
				Geometry: &scenario.Geometry{
					Kind:        scenario.KindRing,
					InnerRadius: opts.inner,
					OuterRadius: opts.outer,
					LeadWidth:   opts.leadWidth,
					Hopping:     &opts.hopping,
				},
				Sweep: &scenario.SweepBlock{
					Quantity: sweep.QuantityFlux,
					Min:      opts.fmin * 2 * math.Pi,
					Max:      opts.fmax * 2 * math.Pi,
					Samples:  opts.samples,
					Energy:   opts.energy,
				},
				Output: &scenario.Output{
					Directory:  opts.out.dir,
					Formats:    opts.out.formats(),
					PlotSystem: opts.plotSystem,
				},
			}
			if err := scn.Validate(); err != nil {
				return err
			}
			return runPipeline(cmd.Context(), scn, &opts.out)
		},
	}

	cmd.Flags().Float64Var(&opts.inner, "inner", opts.inner, "inner radius in lattice constants")
	cmd.Flags().Float64Var(&opts.outer, "outer", opts.outer, "outer radius in lattice constants")
	cmd.Flags().IntVar(&opts.leadWidth, "lead-width", 0, "lead width (default: annulus thickness)")
	cmd.Flags().Float64VarP(&opts.hopping, "hopping", "t", opts.hopping, "hopping matrix element")
	cmd.Flags().Float64VarP(&opts.energy, "energy", "e", opts.energy, "fixed carrier energy")
	cmd.Flags().Float64Var(&opts.fmin, "fmin", opts.fmin, "sweep start flux in flux quanta")
	cmd.Flags().Float64Var(&opts.fmax, "fmax", opts.fmax, "sweep end flux in flux quanta")
	cmd.Flags().IntVarP(&opts.samples, "samples", "n", opts.samples, "number of sweep points")
	cmd.Flags().BoolVar(&opts.plotSystem, "plot-system", false, "also render the system geometry")
	opts.out.register(cmd)
	opts.out.registerCache(cmd)

	return cmd
}
