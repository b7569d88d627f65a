package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/hkwi/oflib"
)

var flowCmd = &cobra.Command{
	Use:   "flow <text>...",
	Short: "Pack flow stats written as flow text",
	Example: `  oflpack flow "table=1,priority=10,in_port=1,@apply,output=2"
  oflpack flow -o dump "eth_type=0x0800,ipv4_dst=10.0.0.0/8,@goto=2"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer reportMetrics()

		var records []oflib.Record
		for _, arg := range args {
			fs, err := oflib.ParseFlowStats(arg)
			if err != nil {
				return errors.Wrapf(err, "%q", arg)
			}
			logger.WithField("flow", fs.String()).Debug("parsed")
			records = append(records, fs)
		}
		data, err := newEncoder().MarshalAll(records...)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), cfg.Output.Format, data)
	},
}
