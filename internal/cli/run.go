package cli

import (
	"github.com/spf13/cobra"

	"github.com/tbsim/tbsim/pkg/scenario"
)

// newRunCmd creates the run command: execute a declarative HCL scenario end
// to end - build, sweep, render.
func newRunCmd() *cobra.Command {
	var out outputOpts

	cmd := &cobra.Command{
		Use:   "run [scenario.hcl]",
		Short: "Execute a declarative scenario file",
		Long: `Run loads a scenario file describing a geometry, a sweep and the output
artifacts, then executes the complete calculation. Scenario expressions may
use the constant pi, e.g. "max = 2 * pi" for flux sweeps.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scn, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			// The scenario's own output block wins unless flags override it.
			if cmd.Flags().Changed("output") {
				scn.Output.Directory = out.dir
			}
			if cmd.Flags().Changed("format") {
				scn.Output.Formats = out.formats()
			}
			return runPipeline(cmd.Context(), scn, &out)
		},
	}

	out.register(cmd)
	out.registerCache(cmd)
	return cmd
}
