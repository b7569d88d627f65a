package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hkwi/oflib"
)

var (
	configFile string
	logLevel   string
	format     string

	cfg      *Config
	logger   *logrus.Logger
	registry *prometheus.Registry
)

var rootCmd = &cobra.Command{
	Use:   "oflpack",
	Short: "OpenFlow 1.3 record packer",
	Long: `oflpack sizes and packs OpenFlow 1.3 multipart reply records
(flow stats, group stats and descriptions, queues, ports and counters)
and prints the resulting wire bytes.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := LoadConfig(configFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			c.Log.Level = logLevel
		}
		if cmd.Flags().Changed("format") {
			c.Output.Format = format
		}
		if err := c.Validate(); err != nil {
			return err
		}
		l, err := NewLogger(c.Log, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		cfg, logger = c, l

		registry = prometheus.NewRegistry()
		return oflib.RegisterMetrics(registry)
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitWithError(err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "o", "", "output format (hex, dump, raw)")

	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(flowCmd)
	rootCmd.AddCommand(actionsCmd)
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func newEncoder() *oflib.Encoder {
	return oflib.NewEncoder(oflib.WithLogger(logger.WithField("component", "oflib")))
}
