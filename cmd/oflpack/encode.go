package main

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var recordsFile string

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Pack the records of a YAML file",
	Long: `encode reads a YAML record file and writes the records packed back
to back, as they appear in a multipart reply body. Use "-" or omit -f to
read stdin.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer reportMetrics()

		var in io.Reader = cmd.InOrStdin()
		if recordsFile != "" && recordsFile != "-" {
			f, err := os.Open(recordsFile)
			if err != nil {
				return errors.Wrap(err, "open records")
			}
			defer f.Close()
			in = f
		}
		records, err := ReadRecords(in)
		if err != nil {
			return err
		}
		logger.WithField("records", len(records)).Debug("records loaded")

		data, err := newEncoder().MarshalAll(records...)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), cfg.Output.Format, data)
	},
}

func init() {
	encodeCmd.Flags().StringVarP(&recordsFile, "file", "f", "", "YAML record file")
}
