package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

func writeOutput(w io.Writer, format string, data []byte) error {
	var err error
	switch format {
	case "raw":
		_, err = w.Write(data)
	case "dump":
		_, err = io.WriteString(w, hex.Dump(data))
	default:
		_, err = fmt.Fprintln(w, hex.EncodeToString(data))
	}
	return err
}

// reportMetrics logs the encoder counters gathered so far.
func reportMetrics() {
	if !cfg.Metrics.Report {
		return
	}
	families, err := registry.Gather()
	if err != nil {
		logger.WithError(err).Warn("gather metrics")
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			fields := logrus.Fields{"metric": mf.GetName()}
			for _, lp := range m.GetLabel() {
				fields[lp.GetName()] = lp.GetValue()
			}
			logger.WithFields(fields).Info(m.GetCounter().GetValue())
		}
	}
}
