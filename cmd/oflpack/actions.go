package main

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hkwi/oflib/action"
)

var actionsCmd = &cobra.Command{
	Use:   "actions <text>",
	Short: "Pack an action list",
	Long: `actions packs an action list, as found in an apply_actions
instruction or a bucket, without the enclosing record.`,
	Example: `  oflpack actions "push_vlan=0x8100,set_vlan_vid=0x1005,output=2"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actions, err := action.ParseList(args[0])
		if err != nil {
			return errors.Wrapf(err, "%q", args[0])
		}
		logger.WithFields(logrus.Fields{
			"actions": len(actions),
			"length":  action.Len(actions),
		}).Debug("parsed")
		return writeOutput(cmd.OutOrStdout(), cfg.Output.Format, action.Marshal(actions))
	},
}
