package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/Vincent-lau/dagbench/internal/configs"
	"github.com/Vincent-lau/dagbench/internal/randdag"
	"github.com/Vincent-lau/dagbench/internal/workload"
)

// RandomCmd generates a uniformly random task graph.
func RandomCmd(out io.Writer) *cobra.Command {
	o := &options{out: out}
	params := randdag.DefaultParams(0)

	cmd := &cobra.Command{
		Use:   "randgen <ntasks> [connectivity] [concurrency]",
		Short: "Generate a random task graph workload",
		Long: `Generates a random task graph and writes it as JSON to stdout.

connectivity: chance in percent of a task depending on each later task (default 10)
concurrency:  maximum concurrent tasks; accepted but not applied`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.RangeArgs(1, 3)(cmd, args); err != nil {
				return err
			}
			targets := []*int{&params.NTasks, &params.Connectivity, &params.Concurrency}
			names := []string{"ntasks", "connectivity", "concurrency"}
			for i, a := range args {
				v, err := parseArg(names[i], a)
				if err != nil {
					return err
				}
				*targets[i] = v
			}
			return params.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return o.run(randdag.Name, func(p *configs.Platform) (*workload.Document, error) {
				return randdag.Generate(params, p)
			})
		},
	}
	o.addFlags(cmd)
	cmd.Flags().Uint64Var(&params.Seed, "seed", randdag.DefaultSeed, "random seed")

	return cmd
}
