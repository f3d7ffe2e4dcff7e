package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/tbsim/tbsim/pkg/builder"
	"github.com/tbsim/tbsim/pkg/lattice"
	"github.com/tbsim/tbsim/pkg/plotter"
	"github.com/tbsim/tbsim/pkg/sweep"
	"github.com/tbsim/tbsim/pkg/system"
)

// bandsOpts holds the command-line flags for the bands command.
type bandsOpts struct {
	width   int     // lead width in lattice constants
	hopping float64 // hopping matrix element t
	momenta int     // momentum grid size
	out     outputOpts
}

// newBandsCmd creates the bands command: the Bloch band structure of a
// semi-infinite square-lattice lead, one subband per transverse mode.
func newBandsCmd() *cobra.Command {
	opts := bandsOpts{
		width:   10,
		hopping: -1,
		momenta: 201,
	}

	cmd := &cobra.Command{
		Use:   "bands",
		Short: "Band structure of a semi-infinite lead",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if opts.width <= 0 {
				return fmt.Errorf("lead width must be positive, got %d", opts.width)
			}

			lat := lattice.Square(1.0)
			f := lat.Families()[0]
			onsite := system.Real(4 * math.Abs(opts.hopping))
			hopping := system.Real(opts.hopping)

			lead := builder.NewLead(lattice.TranslationalSymmetry{Period: lattice.Tag{1, 0}})
			if _, err := lead.Fill(lat, builder.Rectangle(1, float64(opts.width)), f.Site(0, 0), onsite); err != nil {
				return err
			}
			if _, err := lead.ConnectNeighbors(lat, hopping); err != nil {
				return err
			}
			cell, err := lead.FinalizeLead()
			if err != nil {
				return err
			}

			c, err := openCache(opts.out.noCache)
			if err != nil {
				return err
			}
			defer c.Close()

			track := newProgress(logger)
			runner := sweep.NewRunner(c, logger)
			res, err := runner.Bands(ctx, cell, sweep.BandsOptions{
				Momenta: opts.momenta,
				Refresh: opts.out.refresh,
			})
			if err != nil {
				return err
			}
			track.done(fmt.Sprintf("Computed %d bands at %d momenta", opts.width, opts.momenta))

			cfg, err := plotter.LoadConfig(opts.out.figConfig)
			if err != nil {
				return err
			}
			fig, err := plotter.Bands(cfg, res.Momenta, res.Energies)
			if err != nil {
				return err
			}
			paths, err := fig.SaveAll(opts.out.dir, opts.out.formats())
			if err != nil {
				return err
			}

			printSuccess("Band structure for width-%d lead", opts.width)
			for _, path := range paths {
				printFile(path)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.width, "width", "w", opts.width, "lead width in lattice constants")
	cmd.Flags().Float64VarP(&opts.hopping, "hopping", "t", opts.hopping, "hopping matrix element")
	cmd.Flags().IntVarP(&opts.momenta, "momenta", "k", opts.momenta, "number of momentum grid points")
	opts.out.register(cmd)
	opts.out.registerCache(cmd)

	return cmd
}
