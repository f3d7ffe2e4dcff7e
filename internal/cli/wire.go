package cli

import (
	"github.com/spf13/cobra"

	"github.com/tbsim/tbsim/pkg/scenario"
	"github.com/tbsim/tbsim/pkg/sweep"
)

// wireOpts holds the command-line flags for the wire command.
type wireOpts struct {
	length     int     // wire length in lattice constants
	width      int     // wire width in lattice constants
	lattice    string  // square or honeycomb
	hopping    float64 // hopping matrix element t
	emin, emax float64 // energy window
	samples    int     // sweep sample count
	plotSystem bool    // also render the geometry
	out        outputOpts
}

// newWireCmd creates the wire command: conductance of a straight conductor
// with a lead on each end, swept over carrier energy. The clean wire shows
// the conductance staircase - one quantum per open transverse mode.
func newWireCmd() *cobra.Command {
	opts := wireOpts{
		length:  30,
		width:   10,
		lattice: scenario.LatticeSquare,
		hopping: -1,
		emin:    0,
		emax:    2,
		samples: 200,
	}

	cmd := &cobra.Command{
		Use:   "wire",
		Short: "Conductance of a straight quantum wire versus energy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scn := &scenario.Scenario{
				Name: "wire",
				Geometry: &scenario.Geometry{
					Kind:    scenario.KindWire,
					Lattice: opts.lattice,
					Length:  opts.length,
					Width:   opts.width,
					Hopping: &opts.hopping,
				},
				Sweep: &scenario.SweepBlock{
					Quantity: sweep.QuantityEnergy,
					Min:      opts.emin,
					Max:      opts.emax,
					Samples:  opts.samples,
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

	cmd.Flags().IntVarP(&opts.length, "length", "l", opts.length, "wire length in lattice constants")
	cmd.Flags().IntVarP(&opts.width, "width", "w", opts.width, "wire width in lattice constants")
	cmd.Flags().StringVar(&opts.lattice, "lattice", opts.lattice, "lattice: square (default), honeycomb")
	cmd.Flags().Float64VarP(&opts.hopping, "hopping", "t", opts.hopping, "hopping matrix element")
	cmd.Flags().Float64Var(&opts.emin, "emin", opts.emin, "sweep start energy")
	cmd.Flags().Float64Var(&opts.emax, "emax", opts.emax, "sweep end energy")
	cmd.Flags().IntVarP(&opts.samples, "samples", "n", opts.samples, "number of sweep points")
	cmd.Flags().BoolVar(&opts.plotSystem, "plot-system", false, "also render the system geometry")
	opts.out.register(cmd)
	opts.out.registerCache(cmd)

	return cmd
}
