package cli

import (
	"github.com/spf13/cobra"

	"github.com/tbsim/tbsim/pkg/plotter"
	"github.com/tbsim/tbsim/pkg/scenario"
)

// newPlotCmd creates the plot command: render the geometry of a scenario's
// system without running the sweep. Useful for checking shapes and lead
// placement before a long calculation.
func newPlotCmd() *cobra.Command {
	var out outputOpts

	cmd := &cobra.Command{
		Use:   "plot [scenario.hcl]",
		Short: "Render the system geometry of a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scn, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			sys, err := scn.BuildSystem()
			if err != nil {
				return err
			}

			cfg, err := plotter.LoadConfig(out.figConfig)
			if err != nil {
				return err
			}
			fig, err := plotter.System(cfg, sys)
			if err != nil {
				return err
			}
			paths, err := fig.SaveAll(out.dir, out.formats())
			if err != nil {
				return err
			}

			printSuccess("Rendered %s geometry", scn.Name)
			printStats(sys.NumSites(), len(sys.Hoppings()), false)
			for _, path := range paths {
				printFile(path)
			}
			return nil
		},
	}

	out.register(cmd)
	return cmd
}
