package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/Vincent-lau/dagbench/internal/configs"
	"github.com/Vincent-lau/dagbench/internal/lu"
	"github.com/Vincent-lau/dagbench/internal/workload"
)

// LUCmd generates the task graph of a blocked LU factorization.
func LUCmd(out io.Writer) *cobra.Command {
	o := &options{out: out}
	var blocks int

	cmd := &cobra.Command{
		Use:   "lugen <nblocks>",
		Short: "Generate a blocked LU factorization workload",
		Long: `Generates the task graph of a blocked LU factorization over an
nblocks x nblocks grid of blocks and writes it as JSON to stdout.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return err
			}
			v, err := parseArg("nblocks", args[0])
			if err != nil {
				return err
			}
			blocks = v
			_, err = lu.NewCodec(blocks)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return o.run(lu.Name, func(p *configs.Platform) (*workload.Document, error) {
				g, err := lu.New(blocks, p)
				if err != nil {
					return nil, err
				}
				return g.Generate()
			})
		},
	}
	o.addFlags(cmd)

	return cmd
}
